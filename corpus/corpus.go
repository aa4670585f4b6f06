package corpus

import (
	"bufio"
	"io"
	"os"
	"strings"

	log "github.com/golang/glog"
	"golang.org/x/text/unicode/norm"
)

const (
	// tag seeding the first transition of a sequence, also the tag
	// given to sentence boundaries
	StartTag = "--s--"
	// token standing in for a blank line
	EmptyToken = "--n--"
)

type TaggedWord struct {
	Word string
	Tag  string
}

// boundary reports whether the pair marks a blank line between sentences
func (tw TaggedWord) Boundary() bool {
	return tw.Word == EmptyToken && tw.Tag == StartTag
}

// Load reads a tagged corpus from file, see Parse for the format.
func Load(fn string) ([]TaggedWord, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := Parse(f)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d tagged words from %s", len(words), fn)
	return words, nil
}

// Parse reads training data, the lines should be like:
// [word\ttag]
// a blank line separates two sentences and is kept as the pair
// (EmptyToken, StartTag). lines that do not split into exactly two
// fields are skipped.
func Parse(r io.Reader) ([]TaggedWord, error) {
	var words []TaggedWord

	lineIdx := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineIdx += 1
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			words = append(words, TaggedWord{Word: EmptyToken, Tag: StartTag})
			continue
		}

		vals := strings.Fields(line)
		if len(vals) != 2 {
			log.Warningf("bad tagged word, line %d: %q", lineIdx, line)
			continue
		}
		words = append(words, TaggedWord{
			Word: norm.NFC.String(vals[0]),
			Tag:  vals[1],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadWords reads one token per line from file
func LoadWords(fn string) ([]string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := ParseWords(f)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d words from %s", len(words), fn)
	return words, nil
}

// ParseWords reads one token per line. blank lines are kept as empty
// strings so the caller can map them to EmptyToken.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, norm.NFC.String(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Words returns the word column of a tagged corpus
func Words(tagged []TaggedWord) []string {
	words := make([]string, len(tagged))
	for i, tw := range tagged {
		words[i] = tw.Word
	}
	return words
}

// Tags returns the tag column of a tagged corpus
func Tags(tagged []TaggedWord) []string {
	tags := make([]string, len(tagged))
	for i, tw := range tagged {
		tags[i] = tw.Tag
	}
	return tags
}
