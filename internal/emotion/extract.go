package emotion

import "strings"

// Smoothing is added to the total keyword count before normalizing, so text
// without any keyword hits still produces a defined (all-zero) vector.
const Smoothing = 0.001

// CountPolicy controls how repeated keywords contribute to a category score.
type CountPolicy int

const (
	// CountOccurrences counts every substring occurrence of every keyword.
	// Repetition raises the score: it measures lexical density.
	CountOccurrences CountPolicy = iota
	// CountDistinct counts each keyword at most once per text.
	CountDistinct
)

// ParseCountPolicy maps a config value to a CountPolicy.
// Unknown values select CountOccurrences.
func ParseCountPolicy(s string) CountPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distinct":
		return CountDistinct
	default:
		return CountOccurrences
	}
}

// String returns the config name of the policy.
func (p CountPolicy) String() string {
	if p == CountDistinct {
		return "distinct"
	}
	return "occurrences"
}

// Extractor converts text into emotion vectors using a keyword lexicon.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	lexicon *Lexicon
	policy  CountPolicy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCountPolicy sets how repeated keywords are counted.
func WithCountPolicy(p CountPolicy) Option {
	return func(e *Extractor) {
		e.policy = p
	}
}

// NewExtractor creates an extractor over the given lexicon.
// A nil lexicon selects DefaultLexicon.
func NewExtractor(lexicon *Lexicon, opts ...Option) *Extractor {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	e := &Extractor{
		lexicon: lexicon,
		policy:  CountOccurrences,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Counts returns the raw keyword score for each dimension.
// Matching is case-insensitive and by substring, so "tears" counts for "tear".
// Overlapping matches each count: "lala" occurs twice in "lalala".
func (e *Extractor) Counts(text string) [Dimensions]int {
	text = strings.ToLower(text)

	var counts [Dimensions]int
	for d, words := range e.lexicon.words {
		for _, w := range words {
			n := countOverlapping(text, w)
			if e.policy == CountDistinct && n > 1 {
				n = 1
			}
			counts[d] += n
		}
	}
	return counts
}

// Extract returns the normalized emotion vector for text.
func (e *Extractor) Extract(text string) Vector {
	counts := e.Counts(text)

	total := Smoothing
	for _, c := range counts {
		total += float64(c)
	}

	var v Vector
	for i, c := range counts {
		v[i] = float64(c) / total
	}
	return v
}

func countOverlapping(text, word string) int {
	n := 0
	for i := 0; ; {
		j := strings.Index(text[i:], word)
		if j < 0 {
			return n
		}
		n++
		i += j + 1
	}
}
