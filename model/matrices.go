package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/table"
	"github.com/necromuralist/neurotic/util"
	"github.com/necromuralist/neurotic/vocab"
)

const DefaultAlpha = 0.001

var (
	ErrBadSmoothing = errors.New("model: smoothing constant must be positive")
	ErrNoTags       = errors.New("model: no tags to build matrices from")
	ErrNoWords      = errors.New("model: empty vocabulary")
	ErrUnknownTag   = errors.New("model: tag never seen in training")
	ErrBadShape     = errors.New("model: matrix shape does not match tags and vocabulary")
)

// Matrices are the smoothed transition (A) and emission (B) matrices of
// the hidden markov model. rows follow the sorted tags, emission columns
// follow the sorted vocabulary. nothing is mutated after construction.
type Matrices struct {
	tags     []string
	tagIndex map[string]int
	vocab    *vocab.Vocabulary
	alpha    float64

	transition *mat.Dense
	emission   *mat.Dense
	// natural logarithms of the above, the decoder only sums these
	logTransition *mat.Dense
	logEmission   *mat.Dense
}

// NewMatrices computes the add-alpha smoothed matrices
//
//	A[i][j] = (transitions(i, j) + alpha) / (count(i) + alpha * tags)
//	B[i][k] = (emissions(i, k) + alpha) / (count(i) + alpha * words)
//
// every tag must have been counted. the start tag is the one exception:
// when no word carries it, the transitions it seeded stand in for its
// count.
func NewMatrices(counts *table.Counts, tags []string, v *vocab.Vocabulary, alpha float64) (*Matrices, error) {
	if !(alpha > 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadSmoothing, alpha)
	}
	tags = util.SortedUnique(tags)
	if len(tags) == 0 {
		return nil, ErrNoTags
	}
	if v.Len() == 0 {
		return nil, ErrNoWords
	}

	rowCounts := make([]float64, len(tags))
	for i, tag := range tags {
		n, err := rowCount(counts, tag)
		if err != nil {
			return nil, err
		}
		rowCounts[i] = n
	}

	tagNum := len(tags)
	words := v.Words()
	wordNum := len(words)

	transition := mat.NewDense(tagNum, tagNum, nil)
	for r := 0; r < tagNum; r += 1 {
		for c := 0; c < tagNum; c += 1 {
			count := float64(counts.Transition(tags[r], tags[c]))
			transition.Set(r, c, (count+alpha)/(rowCounts[r]+alpha*float64(tagNum)))
		}
	}

	emission := mat.NewDense(tagNum, wordNum, nil)
	for r := 0; r < tagNum; r += 1 {
		for c := 0; c < wordNum; c += 1 {
			count := float64(counts.Emission(tags[r], words[c]))
			emission.Set(r, c, (count+alpha)/(rowCounts[r]+alpha*float64(wordNum)))
		}
	}

	m := newMatrices(tags, v, transition, emission)
	m.alpha = alpha
	return m, nil
}

func rowCount(counts *table.Counts, tag string) (float64, error) {
	if n, ok := counts.Tag(tag); ok {
		return float64(n), nil
	}
	if tag == corpus.StartTag {
		if n := counts.Outgoing(tag); n > 0 {
			return float64(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
}

// FromDense wraps precomputed matrices, e.g. ones read back from disk.
// tags must be in the order of the matrix rows.
func FromDense(tags []string, v *vocab.Vocabulary, transition, emission *mat.Dense) (*Matrices, error) {
	if len(tags) == 0 {
		return nil, ErrNoTags
	}
	if v.Len() == 0 {
		return nil, ErrNoWords
	}
	if len(util.SortedUnique(tags)) != len(tags) {
		return nil, fmt.Errorf("%w: duplicate tags", ErrBadShape)
	}
	if r, c := transition.Dims(); r != len(tags) || c != len(tags) {
		return nil, fmt.Errorf("%w: transition is %dx%d for %d tags", ErrBadShape, r, c, len(tags))
	}
	if r, c := emission.Dims(); r != len(tags) || c != v.Len() {
		return nil, fmt.Errorf("%w: emission is %dx%d for %d tags and %d words",
			ErrBadShape, r, c, len(tags), v.Len())
	}
	return newMatrices(append([]string(nil), tags...), v,
		mat.DenseCopyOf(transition), mat.DenseCopyOf(emission)), nil
}

func newMatrices(tags []string, v *vocab.Vocabulary, transition, emission *mat.Dense) *Matrices {
	tagIndex := make(map[string]int, len(tags))
	for i, tag := range tags {
		tagIndex[tag] = i
	}

	logOf := func(_, _ int, val float64) float64 { return math.Log(val) }
	var logTransition, logEmission mat.Dense
	logTransition.Apply(logOf, transition)
	logEmission.Apply(logOf, emission)

	return &Matrices{
		tags:          tags,
		tagIndex:      tagIndex,
		vocab:         v,
		transition:    transition,
		emission:      emission,
		logTransition: &logTransition,
		logEmission:   &logEmission,
	}
}

// copy of the transition matrix A
func (m *Matrices) Transition() *mat.Dense {
	return mat.DenseCopyOf(m.transition)
}

// copy of the emission matrix B
func (m *Matrices) Emission() *mat.Dense {
	return mat.DenseCopyOf(m.emission)
}

// sorted copy of the tags, in row order
func (m *Matrices) Tags() []string {
	return append([]string(nil), m.tags...)
}

func (m *Matrices) TagIndex(tag string) (int, error) {
	i, ok := m.tagIndex[tag]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return i, nil
}

func (m *Matrices) Vocabulary() *vocab.Vocabulary {
	return m.vocab
}

// smoothing constant, zero when the matrices were not built from counts
func (m *Matrices) Alpha() float64 {
	return m.alpha
}
