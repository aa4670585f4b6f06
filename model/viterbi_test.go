package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/table"
	"github.com/necromuralist/neurotic/vocab"
)

// toyMatrices is a hand made model with states [--s--, N, V] over the
// vocabulary [fish, sleep, they]. "fish" is emitted by N and V alike.
func toyMatrices(t *testing.T) *Matrices {
	t.Helper()
	transition := mat.NewDense(3, 3, []float64{
		0.01, 0.6, 0.39,
		0.01, 0.29, 0.7,
		0.01, 0.6, 0.39,
	})
	emission := mat.NewDense(3, 3, []float64{
		0.01, 0.01, 0.98,
		0.5, 0.1, 0.4,
		0.5, 0.45, 0.05,
	})
	m, err := FromDense([]string{corpus.StartTag, "N", "V"},
		vocab.New([]string{"fish", "sleep", "they"}), transition, emission)
	require.NoError(t, err)
	return m
}

// bruteForce scores every possible tag sequence
func bruteForce(m *Matrices, words []string) ([]string, float64) {
	tagNum := len(m.tags)
	columns := make([]int, len(words))
	for i, w := range words {
		columns[i], _ = m.vocab.Index(w)
	}
	start := m.tagIndex[corpus.StartTag]

	best, bestPath := math.Inf(-1), []int(nil)
	path := make([]int, len(words))
	var walk func(position int, score float64)
	walk = func(position int, score float64) {
		if position == len(words) {
			if score > best {
				best = score
				bestPath = append([]int(nil), path...)
			}
			return
		}
		prev := start
		if position > 0 {
			prev = path[position-1]
		}
		for tag := 0; tag < tagNum; tag += 1 {
			path[position] = tag
			walk(position+1, score+
				math.Log(m.transition.At(prev, tag))+
				math.Log(m.emission.At(tag, columns[position])))
		}
	}
	walk(0, 0)

	tags := make([]string, len(bestPath))
	for i, tag := range bestPath {
		tags[i] = m.tags[tag]
	}
	return tags, best
}

func TestViterbiSingleKnownWord(t *testing.T) {
	tagged := []corpus.TaggedWord{{"the", "DET"}, {"dog", "NOUN"}, {"barks", "VERB"}}
	m := buildMatrices(t, tagged, DefaultAlpha)

	tags, err := Decode(m, []string{"the"})
	require.NoError(t, err)
	assert.Equal(t, []string{"DET"}, tags)

	tags, err = Decode(m, []string{"the", "dog", "barks"})
	require.NoError(t, err)
	assert.Equal(t, []string{"DET", "NOUN", "VERB"}, tags)
}

func TestViterbiMatchesBruteForce(t *testing.T) {
	m := toyMatrices(t)

	testCases := []struct {
		words    []string
		expected []string
	}{
		{[]string{"they", "fish", "sleep"}, []string{"N", "V", "V"}},
		{[]string{"they", "sleep", "fish"}, []string{"N", "V", "N"}},
		{[]string{"fish"}, []string{"N"}},
		{[]string{"fish", "fish", "fish", "they", "sleep"}, nil},
	}

	for _, tc := range testCases {
		v, err := NewViterbi(m, tc.words)
		require.NoError(t, err)

		tags, err := v.Run()
		require.NoError(t, err)
		score, err := v.LogProbability()
		require.NoError(t, err)

		expected, best := bruteForce(m, tc.words)
		assert.Equal(t, expected, tags, "%v", tc.words)
		assert.InDelta(t, best, score, 1e-9, "%v", tc.words)
		if tc.expected != nil {
			assert.Equal(t, tc.expected, tags, "%v", tc.words)
		}
	}
}

func TestViterbiSequencing(t *testing.T) {
	m := toyMatrices(t)
	words := []string{"they", "fish"}

	v, err := NewViterbi(m, words)
	require.NoError(t, err)
	assert.Equal(t, Uninitialized, v.Stage())

	assert.True(t, errors.Is(v.Forward(), ErrSequencing))
	assert.True(t, errors.Is(v.Backward(), ErrSequencing))
	_, err = v.Predictions()
	assert.True(t, errors.Is(err, ErrSequencing))

	require.NoError(t, v.Initialize())
	assert.Equal(t, Initialized, v.Stage())
	assert.True(t, errors.Is(v.Initialize(), ErrSequencing))
	assert.True(t, errors.Is(v.Backward(), ErrSequencing))

	require.NoError(t, v.Forward())
	assert.Equal(t, ForwardComplete, v.Stage())
	assert.True(t, errors.Is(v.Forward(), ErrSequencing))
	_, err = v.LogProbability()
	assert.True(t, errors.Is(err, ErrSequencing))

	require.NoError(t, v.Backward())
	assert.Equal(t, BackwardComplete, v.Stage())
	assert.True(t, errors.Is(v.Backward(), ErrSequencing))

	tags, err := v.Predictions()
	require.NoError(t, err)
	assert.Equal(t, []string{"N", "V"}, tags)

	// a finished decoder cannot be run again
	_, err = v.Run()
	assert.True(t, errors.Is(err, ErrSequencing))
}

func TestViterbiStepsEqualRun(t *testing.T) {
	m := toyMatrices(t)
	words := []string{"they", "sleep", "fish", "fish"}

	v, err := NewViterbi(m, words)
	require.NoError(t, err)
	require.NoError(t, v.Initialize())
	require.NoError(t, v.Forward())
	require.NoError(t, v.Backward())
	stepped, err := v.Predictions()
	require.NoError(t, err)

	run, err := Decode(m, words)
	require.NoError(t, err)
	assert.Equal(t, run, stepped)
}

func TestViterbiSingleWordSequence(t *testing.T) {
	// no columns after the first one, the forward pass has nothing to
	// fill and the backward pass still has to accept it
	m := toyMatrices(t)
	v, err := NewViterbi(m, []string{"they"})
	require.NoError(t, err)

	tags, err := v.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"N"}, tags)
}

func TestViterbiRejectsBadInput(t *testing.T) {
	m := toyMatrices(t)

	_, err := NewViterbi(m, nil)
	assert.True(t, errors.Is(err, ErrEmptySequence))

	_, err = Decode(m, []string{})
	assert.True(t, errors.Is(err, ErrEmptySequence))

	_, err = NewViterbi(m, []string{"they", "swim"})
	assert.True(t, errors.Is(err, vocab.ErrUnknownWord))

	noStart, err := FromDense([]string{"N", "V"}, vocab.New([]string{"fish"}),
		mat.NewDense(2, 2, []float64{0.5, 0.5, 0.5, 0.5}),
		mat.NewDense(2, 1, []float64{1, 1}))
	require.NoError(t, err)
	_, err = NewViterbi(noStart, []string{"fish"})
	assert.True(t, errors.Is(err, ErrNoStartTag))
}

// The first word treats a start transition of exactly zero as
// impossible and skips its emission, later words take log(0) as is.
// Smoothed matrices never hold a zero, only hand made ones reach this.
func TestViterbiZeroStartTransitionQuirk(t *testing.T) {
	transition := mat.NewDense(3, 3, []float64{
		0.2, 0, 0.8,
		0.2, 0.4, 0.4,
		0.2, 0.4, 0.4,
	})
	emission := mat.NewDense(3, 2, []float64{
		0.5, 0.5,
		0.99, 0.01,
		0.01, 0.99,
	})
	m, err := FromDense([]string{corpus.StartTag, "N", "V"},
		vocab.New([]string{"dogs", "run"}), transition, emission)
	require.NoError(t, err)

	v, err := NewViterbi(m, []string{"dogs"})
	require.NoError(t, err)
	require.NoError(t, v.Initialize())

	n, _ := m.TagIndex("N")
	assert.True(t, math.IsInf(v.bestProbabilities.Get(n, 0), -1))
	assert.False(t, math.IsInf(v.bestProbabilities.Get(0, 0), -1))

	require.NoError(t, v.Forward())
	require.NoError(t, v.Backward())
	tags, err := v.Predictions()
	require.NoError(t, err)
	// N emits "dogs" almost surely but cannot start the sequence
	assert.Equal(t, []string{corpus.StartTag}, tags)
}

func TestViterbiAllImpossibleIsDeterministic(t *testing.T) {
	// nothing can follow the start tag, every score is -Inf and the
	// first tag in sorted order is chosen everywhere
	transition := mat.NewDense(2, 2, []float64{0, 0, 0.5, 0.5})
	emission := mat.NewDense(2, 1, []float64{1, 1})
	m, err := FromDense([]string{corpus.StartTag, "X"}, vocab.New([]string{"w"}), transition, emission)
	require.NoError(t, err)

	tags, err := Decode(m, []string{"w", "w", "w"})
	require.NoError(t, err)
	assert.Equal(t, []string{corpus.StartTag, corpus.StartTag, corpus.StartTag}, tags)
}

func TestViterbiTiesGoToFirstTag(t *testing.T) {
	// A and B are indistinguishable
	transition := mat.NewDense(3, 3, []float64{
		0.2, 0.4, 0.4,
		0.2, 0.4, 0.4,
		0.2, 0.4, 0.4,
	})
	emission := mat.NewDense(3, 1, []float64{0.1, 0.9, 0.9})
	m, err := FromDense([]string{corpus.StartTag, "A", "B"}, vocab.New([]string{"w"}), transition, emission)
	require.NoError(t, err)

	tags, err := Decode(m, []string{"w", "w", "w", "w"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A", "A", "A"}, tags)
}

func TestViterbiDeterministic(t *testing.T) {
	tagged, words := wsjSample(t)
	v := vocab.FromCorpus(tagged, 1)
	normalizer, err := vocab.NewNormalizer(v, vocab.DefaultRules())
	require.NoError(t, err)
	counts := table.Count(tagged)

	decode := func() []string {
		m, err := NewMatrices(counts, counts.States(), v, DefaultAlpha)
		require.NoError(t, err)
		tags, err := Decode(m, normalizer.NormalizeAll(words))
		require.NoError(t, err)
		return tags
	}

	first := decode()
	for i := 0; i < 5; i += 1 {
		assert.Equal(t, first, decode())
	}
}
