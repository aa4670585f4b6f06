package sstable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFloat64Serialization(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "model.transition")
	m := mat.NewDense(2, 3, []float64{
		0.1, 0, 1.0 / 3.0,
		2.5e-9, 0.999, 0,
	})

	require.NoError(t, Float64Serialize(m, fn))

	loaded, err := Float64Deserialize(fn)
	require.NoError(t, err)

	r, c := loaded.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	// values round trip exactly
	assert.True(t, mat.Equal(m, loaded))
}

func TestFloat64DeserializeCorrupted(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no shape", "1,2,3\n"},
		{"bad shape", "0,2\n"},
		{"out of range", "2,2\n2,0,0.5\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fn := filepath.Join(dir, tc.name)
			require.NoError(t, os.WriteFile(fn, []byte(tc.data), 0o644))

			_, err := Float64Deserialize(fn)
			assert.True(t, errors.Is(err, ErrCorrupted), "%v", err)
		})
	}
}

func TestFloat64DeserializeSkipsBadLines(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "model.emission")
	require.NoError(t, os.WriteFile(fn, []byte("1,2\n0,1,0.25\nnonsense\n0,0,0.75\n"), 0o644))

	loaded, err := Float64Deserialize(fn)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.75, 0.25}, loaded.RawRowView(0))
}

func TestWordsSerialization(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "model.tags")
	words := []string{"--s--", "DT", "NN"}

	require.NoError(t, WordsSerialize(words, fn))

	loaded, err := WordsDeserialize(fn)
	require.NoError(t, err)
	assert.Equal(t, words, loaded)

	_, err = WordsDeserialize(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
