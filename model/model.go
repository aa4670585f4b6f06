package model

import (
	"errors"
	"fmt"

	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/vocab"
)

var ErrNotTrained = errors.New("model: model has not been trained or loaded")

var constructors = make(map[string]ModelCtor)

// the common interface taggers should follow
type Model interface {
	// estimate the model from a tagged corpus
	Train(tagged []corpus.TaggedWord) error
	// predict one tag per raw word
	Tag(words []string) ([]string, error)
	// serialize the trained model, files are named after prefix
	Save(prefix string) error
	// deserialize a model written by Save
	Load(prefix string) error
}

// new taggers should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(v *vocab.Vocabulary, alpha float64) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}
