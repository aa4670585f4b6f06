package vocab

import (
	"errors"
	"fmt"

	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/util"
)

var (
	ErrUnknownWord  = errors.New("vocab: word not in vocabulary")
	ErrMissingLabel = errors.New("vocab: label missing from vocabulary")
)

// Vocabulary maps every known word to its column in the emission matrix.
// words are kept sorted so the indices are stable across runs.
type Vocabulary struct {
	words []string
	index map[string]int
}

// New builds a vocabulary from words as given. duplicates and empty
// strings are dropped, Normalize never yields an empty word.
func New(words []string) *Vocabulary {
	var nonEmpty []string
	for _, w := range words {
		if w != "" {
			nonEmpty = append(nonEmpty, w)
		}
	}
	sorted := util.SortedUnique(nonEmpty)
	index := make(map[string]int, len(sorted))
	for i, w := range sorted {
		index[w] = i
	}
	return &Vocabulary{words: sorted, index: index}
}

// Build is New plus every unknown-word label and the empty-line token,
// the way a training vocabulary has to be constructed.
func Build(words []string) *Vocabulary {
	all := make([]string, 0, len(words)+len(Labels)+1)
	all = append(all, words...)
	all = append(all, Labels...)
	all = append(all, corpus.EmptyToken)
	return New(all)
}

// FromCorpus builds the training vocabulary from the words seen at
// least minCount times. boundary pairs are left to Build.
func FromCorpus(tagged []corpus.TaggedWord, minCount int) *Vocabulary {
	freq := make(map[string]int)
	for _, tw := range tagged {
		if tw.Boundary() {
			continue
		}
		freq[tw.Word] += 1
	}

	var words []string
	for _, w := range util.SortedKeys(freq) {
		if freq[w] >= minCount {
			words = append(words, w)
		}
	}
	return Build(words)
}

func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.index[word]
	return ok
}

// Index returns the column of word, an unknown word is an error and
// never a silent zero
func (v *Vocabulary) Index(word string) (int, error) {
	i, ok := v.index[word]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return i, nil
}

// sorted copy of the words
func (v *Vocabulary) Words() []string {
	words := make([]string, len(v.words))
	copy(words, v.words)
	return words
}

func (v *Vocabulary) Len() int {
	return len(v.words)
}
