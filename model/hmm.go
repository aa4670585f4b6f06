package model

import (
	log "github.com/golang/glog"

	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/sstable"
	"github.com/necromuralist/neurotic/table"
	"github.com/necromuralist/neurotic/vocab"
)

func init() {
	Register("hmm", NewHMM)
}

// HMM is a bigram hidden markov model tagger decoded with Viterbi
type HMM struct {
	alpha      float64
	normalizer *vocab.Normalizer

	counts   *table.Counts
	matrices *Matrices
}

// NewHMM creates an untrained HMM over the vocabulary, which must hold
// every unknown-word label (see vocab.Build)
func NewHMM(v *vocab.Vocabulary, alpha float64) (Model, error) {
	normalizer, err := vocab.NewNormalizer(v, vocab.DefaultRules())
	if err != nil {
		return nil, err
	}
	return &HMM{
		alpha:      alpha,
		normalizer: normalizer,
	}, nil
}

// Train counts the corpus and builds the smoothed matrices. training
// words outside the vocabulary are replaced by their labels first so
// the labels are emitted by the tags that produced unknown words.
func (this *HMM) Train(tagged []corpus.TaggedWord) error {
	counts := table.Count(this.normalizer.NormalizeCorpus(tagged))
	matrices, err := NewMatrices(counts, counts.States(), this.normalizer.Vocabulary(), this.alpha)
	if err != nil {
		return err
	}

	this.counts = counts
	this.matrices = matrices
	log.Infof("trained on %d words, %d states, vocabulary size %d",
		counts.Len(), len(matrices.tags), matrices.vocab.Len())
	return nil
}

// Tag normalizes the raw words and decodes them as one sequence
func (this *HMM) Tag(words []string) ([]string, error) {
	if this.matrices == nil {
		return nil, ErrNotTrained
	}
	return Decode(this.matrices, this.normalizer.NormalizeAll(words))
}

// counts of the last training run, nil after Load
func (this *HMM) Counts() *table.Counts {
	return this.counts
}

func (this *HMM) Matrices() *Matrices {
	return this.matrices
}

// serialize tags, vocabulary and both matrices
func (this *HMM) Save(prefix string) error {
	if this.matrices == nil {
		return ErrNotTrained
	}
	if err := sstable.WordsSerialize(this.matrices.tags, prefix+".tags"); err != nil {
		return err
	}
	if err := sstable.WordsSerialize(this.matrices.vocab.Words(), prefix+".vocab"); err != nil {
		return err
	}
	if err := sstable.Float64Serialize(this.matrices.transition, prefix+".transition"); err != nil {
		return err
	}
	if err := sstable.Float64Serialize(this.matrices.emission, prefix+".emission"); err != nil {
		return err
	}
	return nil
}

// deserialize a model written by Save, the saved vocabulary replaces
// the one the HMM was created with
func (this *HMM) Load(prefix string) error {
	tags, err := sstable.WordsDeserialize(prefix + ".tags")
	if err != nil {
		return err
	}
	words, err := sstable.WordsDeserialize(prefix + ".vocab")
	if err != nil {
		return err
	}
	transition, err := sstable.Float64Deserialize(prefix + ".transition")
	if err != nil {
		return err
	}
	emission, err := sstable.Float64Deserialize(prefix + ".emission")
	if err != nil {
		return err
	}

	normalizer, err := vocab.NewNormalizer(vocab.New(words), vocab.DefaultRules())
	if err != nil {
		return err
	}
	matrices, err := FromDense(tags, normalizer.Vocabulary(), transition, emission)
	if err != nil {
		return err
	}

	this.normalizer = normalizer
	this.matrices = matrices
	this.counts = nil
	log.Infof("loaded model %s: %d states, vocabulary size %d",
		prefix, len(tags), normalizer.Vocabulary().Len())
	return nil
}
