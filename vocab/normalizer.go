package vocab

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"

	"github.com/necromuralist/neurotic/corpus"
)

// labels given to words missing from the vocabulary
const (
	LabelDigit       = "--unknown-digit--"
	LabelPunctuation = "--unknown-punctuation--"
	LabelUppercase   = "--unknown-uppercase--"
	LabelNoun        = "--unknown-noun--"
	LabelVerb        = "--unknown-verb--"
	LabelAdjective   = "--unknown-adjective--"
	LabelAdverb      = "--unknown-adverb--"
	LabelUnknown     = "--unknown--"
)

// Labels lists every label Classify can return
var Labels = []string{
	LabelDigit,
	LabelPunctuation,
	LabelUppercase,
	LabelNoun,
	LabelVerb,
	LabelAdjective,
	LabelAdverb,
	LabelUnknown,
}

// Rules are the closed lists used to classify unknown words
type Rules struct {
	Punctuation string
	Noun        []string
	Verb        []string
	Adjective   []string
	Adverb      []string
}

// DefaultRules returns the english suffix lists used for unknown words
func DefaultRules() Rules {
	return Rules{
		Punctuation: "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~",
		Noun: []string{"action", "age", "ance", "cy", "dom", "ee", "ence", "er", "hood",
			"ion", "ism", "ist", "ity", "ling", "ment", "ness", "or", "ry",
			"scape", "ship", "ty"},
		Verb: []string{"ate", "ify", "ise", "ize"},
		Adjective: []string{"able", "ese", "ful", "i", "ian", "ible", "ic", "ish", "ive",
			"less", "ly", "ous"},
		Adverb: []string{"ward", "wards", "wise"},
	}
}

// Classify picks the label of an unknown word, the first matching
// rule wins
func (r Rules) Classify(word string) string {
	switch {
	case strings.IndexFunc(word, unicode.IsDigit) >= 0:
		return LabelDigit
	case strings.ContainsAny(word, r.Punctuation):
		return LabelPunctuation
	case strings.IndexFunc(word, isUpper) >= 0:
		return LabelUppercase
	case hasSuffix(word, r.Noun):
		return LabelNoun
	case hasSuffix(word, r.Verb):
		return LabelVerb
	case hasSuffix(word, r.Adjective):
		return LabelAdjective
	case hasSuffix(word, r.Adverb):
		return LabelAdverb
	}
	return LabelUnknown
}

func isUpper(r rune) bool {
	return 'A' <= r && r <= 'Z'
}

func hasSuffix(word string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

// Normalizer maps raw tokens onto vocabulary words
type Normalizer struct {
	vocab *Vocabulary
	rules Rules
}

// NewNormalizer checks that every output of Normalize has a column in
// the vocabulary. all missing labels are reported together.
func NewNormalizer(v *Vocabulary, rules Rules) (*Normalizer, error) {
	required := make([]string, 0, len(Labels)+1)
	required = append(required, Labels...)
	required = append(required, corpus.EmptyToken)

	var result error
	for _, label := range required {
		if !v.Contains(label) {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrMissingLabel, label))
		}
	}
	if result != nil {
		return nil, result
	}
	return &Normalizer{vocab: v, rules: rules}, nil
}

func (n *Normalizer) Vocabulary() *Vocabulary {
	return n.vocab
}

// Normalize returns the trimmed token if it is known, EmptyToken for a
// blank token, and the label of the token otherwise
func (n *Normalizer) Normalize(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return corpus.EmptyToken
	}
	if n.vocab.Contains(word) {
		return word
	}
	return n.rules.Classify(word)
}

func (n *Normalizer) NormalizeAll(words []string) []string {
	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = n.Normalize(w)
	}
	return normalized
}

// NormalizeCorpus replaces unknown training words by their labels so the
// labels get emission counts of their own. tags are left untouched.
func (n *Normalizer) NormalizeCorpus(tagged []corpus.TaggedWord) []corpus.TaggedWord {
	normalized := make([]corpus.TaggedWord, len(tagged))
	for i, tw := range tagged {
		normalized[i] = corpus.TaggedWord{Word: n.Normalize(tw.Word), Tag: tw.Tag}
	}
	return normalized
}
