package model

import (
	"errors"
	"fmt"

	"github.com/necromuralist/neurotic/corpus"
)

var ErrLengthMismatch = errors.New("model: predictions and gold tags differ in length")

// Accuracy is the fraction of predicted tags matching the gold corpus.
// sentence boundaries are not scored.
func Accuracy(predicted []string, gold []corpus.TaggedWord) (float64, error) {
	if len(predicted) != len(gold) {
		return 0, fmt.Errorf("%w: %d predictions, %d gold tags",
			ErrLengthMismatch, len(predicted), len(gold))
	}

	scored, correct := 0, 0
	for i, tw := range gold {
		if tw.Boundary() {
			continue
		}
		scored += 1
		if predicted[i] == tw.Tag {
			correct += 1
		}
	}
	if scored == 0 {
		return 0, ErrEmptySequence
	}
	return float64(correct) / float64(scored), nil
}
