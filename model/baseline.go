package model

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/sstable"
	"github.com/necromuralist/neurotic/table"
	"github.com/necromuralist/neurotic/util"
	"github.com/necromuralist/neurotic/vocab"
)

func init() {
	Register("baseline", NewBaseline)
}

// Baseline tags every word with the tag it carried most often in
// training, ignoring its neighbours. words never seen get the most
// frequent tag of the corpus.
type Baseline struct {
	normalizer *vocab.Normalizer
	best       map[string]string
	fallback   string
}

// NewBaseline creates an untrained Baseline, alpha is unused
func NewBaseline(v *vocab.Vocabulary, alpha float64) (Model, error) {
	normalizer, err := vocab.NewNormalizer(v, vocab.DefaultRules())
	if err != nil {
		return nil, err
	}
	return &Baseline{normalizer: normalizer}, nil
}

func (this *Baseline) Train(tagged []corpus.TaggedWord) error {
	counts := table.Count(this.normalizer.NormalizeCorpus(tagged))
	tags := counts.Tags()
	if len(tags) == 0 {
		return ErrNoTags
	}

	// iterating tags in sorted order with a strict comparison keeps
	// the first tag on a tie
	fallback, fallbackCount := "", uint32(0)
	for _, tag := range tags {
		if n, _ := counts.Tag(tag); n > fallbackCount {
			fallback, fallbackCount = tag, n
		}
	}

	best := make(map[string]string)
	for _, word := range this.normalizer.Vocabulary().Words() {
		bestCount := uint32(0)
		for _, tag := range tags {
			if n := counts.Emission(tag, word); n > bestCount {
				best[word], bestCount = tag, n
			}
		}
	}

	this.best = best
	this.fallback = fallback
	log.Infof("baseline trained on %d words, fallback tag %s", counts.Len(), fallback)
	return nil
}

func (this *Baseline) Tag(words []string) ([]string, error) {
	if this.best == nil {
		return nil, ErrNotTrained
	}
	if len(words) == 0 {
		return nil, ErrEmptySequence
	}

	tags := make([]string, len(words))
	for i, w := range this.normalizer.NormalizeAll(words) {
		if tag, ok := this.best[w]; ok {
			tags[i] = tag
		} else {
			tags[i] = this.fallback
		}
	}
	return tags, nil
}

// serialize the word to tag table, the fallback tag is the first line
// of the tags file
func (this *Baseline) Save(prefix string) error {
	if this.best == nil {
		return ErrNotTrained
	}
	words := util.SortedKeys(this.best)
	tags := make([]string, 0, len(words)+1)
	tags = append(tags, this.fallback)
	for _, w := range words {
		tags = append(tags, this.best[w])
	}

	if err := sstable.WordsSerialize(this.normalizer.Vocabulary().Words(), prefix+".vocab"); err != nil {
		return err
	}
	if err := sstable.WordsSerialize(words, prefix+".words"); err != nil {
		return err
	}
	return sstable.WordsSerialize(tags, prefix+".tags")
}

func (this *Baseline) Load(prefix string) error {
	vocabulary, err := sstable.WordsDeserialize(prefix + ".vocab")
	if err != nil {
		return err
	}
	words, err := sstable.WordsDeserialize(prefix + ".words")
	if err != nil {
		return err
	}
	tags, err := sstable.WordsDeserialize(prefix + ".tags")
	if err != nil {
		return err
	}
	if len(tags) != len(words)+1 {
		return fmt.Errorf("%w: %d words but %d tags", sstable.ErrCorrupted, len(words), len(tags))
	}

	normalizer, err := vocab.NewNormalizer(vocab.New(vocabulary), vocab.DefaultRules())
	if err != nil {
		return err
	}
	best := make(map[string]string, len(words))
	for i, w := range words {
		best[w] = tags[i+1]
	}

	this.normalizer = normalizer
	this.best = best
	this.fallback = tags[0]
	return nil
}
