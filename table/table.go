package table

import (
	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/util"
)

// key of the transition table
type TagPair struct {
	Prev string
	Curr string
}

// key of the emission table
type TagWord struct {
	Tag  string
	Word string
}

// Counts holds the frequency tables of a tagged corpus
type Counts struct {
	// [prev, curr]-th element counts how many times
	// tag curr directly followed tag prev
	Transitions map[TagPair]uint32
	// [tag, word]-th element counts how many times
	// word has been labeled with tag
	Emissions map[TagWord]uint32
	// [tag]-th element counts how many times tag occurred
	TagCounts map[string]uint32
	// [tag]-th element counts the transitions leaving tag
	outgoing map[string]uint32
}

func NewCounts() *Counts {
	return &Counts{
		Transitions: make(map[TagPair]uint32),
		Emissions:   make(map[TagWord]uint32),
		TagCounts:   make(map[string]uint32),
		outgoing:    make(map[string]uint32),
	}
}

// Count scans the tagged corpus once. sentence boundaries are not
// special, the previous tag simply carries over and is seeded with
// corpus.StartTag before the first pair.
func Count(words []corpus.TaggedWord) *Counts {
	counts := NewCounts()
	prev := corpus.StartTag
	for _, tw := range words {
		counts.Add(prev, tw)
		prev = tw.Tag
	}
	return counts
}

// Add records a single tagged word following tag prev
func (c *Counts) Add(prev string, tw corpus.TaggedWord) {
	c.TagCounts[tw.Tag] += 1
	c.Emissions[TagWord{Tag: tw.Tag, Word: tw.Word}] += 1
	c.Transitions[TagPair{Prev: prev, Curr: tw.Tag}] += 1
	c.outgoing[prev] += 1
}

func (c *Counts) Transition(prev, curr string) uint32 {
	return c.Transitions[TagPair{Prev: prev, Curr: curr}]
}

func (c *Counts) Emission(tag, word string) uint32 {
	return c.Emissions[TagWord{Tag: tag, Word: word}]
}

// Tag returns the occurrences of tag and whether it was seen at all
func (c *Counts) Tag(tag string) (uint32, bool) {
	n, ok := c.TagCounts[tag]
	return n, ok
}

// Outgoing returns the number of transitions leaving tag
func (c *Counts) Outgoing(tag string) uint32 {
	return c.outgoing[tag]
}

// sorted list of the observed tags
func (c *Counts) Tags() []string {
	return util.SortedKeys(c.TagCounts)
}

// States returns the sorted hidden states of the model: the observed
// tags plus the start tag, which is a state as soon as it seeded a
// transition even when no word carries it.
func (c *Counts) States() []string {
	states := make(map[string]struct{}, len(c.TagCounts)+1)
	for tag := range c.TagCounts {
		states[tag] = struct{}{}
	}
	if c.outgoing[corpus.StartTag] > 0 {
		states[corpus.StartTag] = struct{}{}
	}
	return util.SortedKeys(states)
}

// number of tagged words counted
func (c *Counts) Len() uint32 {
	total := uint32(0)
	for _, n := range c.TagCounts {
		total += n
	}
	return total
}
