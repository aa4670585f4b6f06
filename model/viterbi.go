package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/matrix"
)

var (
	ErrSequencing    = errors.New("model: viterbi steps called out of order")
	ErrEmptySequence = errors.New("model: no words to tag")
	ErrNoStartTag    = errors.New("model: start tag is not a state of the model")
)

// Stage of a Viterbi decoder, every step moves it one stage forward
type Stage int

const (
	Uninitialized Stage = iota
	Initialized
	ForwardComplete
	BackwardComplete
)

func (s Stage) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case ForwardComplete:
		return "forward complete"
	case BackwardComplete:
		return "backward complete"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Viterbi decodes one sequence of normalized words. the working
// matrices belong to the decoder, so a decoder is used once and never
// shared. the Matrices it reads from can be shared freely.
type Viterbi struct {
	matrices *Matrices
	columns  []int // emission column of each word
	start    int   // row of the start tag
	stage    Stage

	// [tag, w]-th element is the log probability of the best path
	// ending in tag at word w
	bestProbabilities *matrix.Float64Matrix
	// [tag, w]-th element is the previous tag on that best path
	bestPaths   *matrix.IndexMatrix
	predictions []string
}

// NewViterbi checks the inputs up front: the sequence must not be empty
// and every word must already be in the vocabulary.
func NewViterbi(m *Matrices, words []string) (*Viterbi, error) {
	if len(words) == 0 {
		return nil, ErrEmptySequence
	}
	start, ok := m.tagIndex[corpus.StartTag]
	if !ok {
		return nil, ErrNoStartTag
	}

	columns := make([]int, len(words))
	for i, w := range words {
		c, err := m.vocab.Index(w)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		columns[i] = c
	}

	return &Viterbi{
		matrices: m,
		columns:  columns,
		start:    start,
	}, nil
}

func (v *Viterbi) Stage() Stage {
	return v.stage
}

func (v *Viterbi) expect(stage Stage, step string) error {
	if v.stage != stage {
		return fmt.Errorf("%w: %s needs the decoder %s, it is %s",
			ErrSequencing, step, stage, v.stage)
	}
	return nil
}

// Initialize allocates the working matrices and fills the first column
// from the start tag. A transition out of the start tag that is exactly
// zero makes the tag impossible for the first word, whatever its
// emission. Later columns use the logarithm as is.
func (v *Viterbi) Initialize() error {
	if err := v.expect(Uninitialized, "initialize"); err != nil {
		return err
	}

	tagNum := len(v.matrices.tags)
	wordNum := len(v.columns)
	v.bestProbabilities = matrix.NewFloat64Matrix(tagNum, wordNum)
	v.bestPaths = matrix.NewIndexMatrix(tagNum, wordNum)

	first := v.columns[0]
	for tag := 0; tag < tagNum; tag += 1 {
		if v.matrices.transition.At(v.start, tag) == 0 {
			v.bestProbabilities.Set(tag, 0, math.Inf(-1))
			continue
		}
		v.bestProbabilities.Set(tag, 0,
			v.matrices.logTransition.At(v.start, tag)+v.matrices.logEmission.At(tag, first))
	}

	v.stage = Initialized
	return nil
}

// Forward fills the remaining columns. for every tag the best previous
// tag is kept, the first one in sorted order wins a tie.
func (v *Viterbi) Forward() error {
	if err := v.expect(Initialized, "forward pass"); err != nil {
		return err
	}

	tagNum := len(v.matrices.tags)
	candidates := make([]float64, tagNum)
	for word := 1; word < len(v.columns); word += 1 {
		column := v.columns[word]
		for tag := 0; tag < tagNum; tag += 1 {
			emission := v.matrices.logEmission.At(tag, column)
			for prev := 0; prev < tagNum; prev += 1 {
				candidates[prev] = v.bestProbabilities.Get(prev, word-1) +
					v.matrices.logTransition.At(prev, tag) + emission
			}
			best, probability := matrix.ArgMax(candidates)
			v.bestProbabilities.Set(tag, word, probability)
			v.bestPaths.Set(tag, word, best)
		}
	}

	v.stage = ForwardComplete
	return nil
}

// Backward picks the most probable tag of the last word and follows
// the back pointers to the first one.
func (v *Viterbi) Backward() error {
	if err := v.expect(ForwardComplete, "backward pass"); err != nil {
		return err
	}

	last := len(v.columns) - 1
	predictions := make([]string, len(v.columns))

	z, _ := matrix.ArgMax(v.bestProbabilities.GetCol(last))
	predictions[last] = v.matrices.tags[z]
	for word := last; word > 0; word -= 1 {
		z = v.bestPaths.Get(z, word)
		predictions[word-1] = v.matrices.tags[z]
	}

	v.predictions = predictions
	v.stage = BackwardComplete
	return nil
}

// Predictions returns one tag per word once the backward pass is done
func (v *Viterbi) Predictions() ([]string, error) {
	if err := v.expect(BackwardComplete, "predictions"); err != nil {
		return nil, err
	}
	return append([]string(nil), v.predictions...), nil
}

// LogProbability returns the log probability of the predicted path
func (v *Viterbi) LogProbability() (float64, error) {
	if err := v.expect(BackwardComplete, "log probability"); err != nil {
		return 0, err
	}
	_, probability := matrix.ArgMax(v.bestProbabilities.GetCol(len(v.columns) - 1))
	return probability, nil
}

// Run executes the three steps in order
func (v *Viterbi) Run() ([]string, error) {
	if err := v.Initialize(); err != nil {
		return nil, err
	}
	if err := v.Forward(); err != nil {
		return nil, err
	}
	if err := v.Backward(); err != nil {
		return nil, err
	}
	return v.Predictions()
}

// Decode tags a sequence of normalized words in one call
func Decode(m *Matrices, words []string) ([]string, error) {
	v, err := NewViterbi(m, words)
	if err != nil {
		return nil, err
	}
	return v.Run()
}
