package emotion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyWord is returned when a lexicon word list contains a blank entry.
var ErrEmptyWord = errors.New("lexicon word is empty")

// Lexicon holds the keyword lists for each emotion dimension.
// A Lexicon is immutable once built and safe for concurrent use.
type Lexicon struct {
	words [Dimensions][]string
}

// Default keyword lists.
var (
	defaultHappyWords = []string{"happy", "joy", "love", "smile", "fun", "party", "dance", "celebrate"}
	defaultAngryWords = []string{"angry", "hate", "fight", "rage", "mad", "furious", "storm"}
	defaultSadWords   = []string{"sad", "cry", "tear", "hurt", "pain", "alone", "miss", "goodbye"}
	defaultCalmWords  = []string{"calm", "peace", "quiet", "rest", "sleep", "dream", "night", "soft"}
)

var defaultLexicon = mustLexicon(defaultHappyWords, defaultAngryWords, defaultSadWords, defaultCalmWords)

// DefaultLexicon returns the built-in English keyword lexicon.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

// NewLexicon builds a lexicon from per-dimension word lists.
// Words are lowercased and trimmed; blank words are rejected.
func NewLexicon(happy, angry, sad, calm []string) (*Lexicon, error) {
	lists := [Dimensions][]string{happy, angry, sad, calm}

	var l Lexicon
	for i, list := range lists {
		words := make([]string, 0, len(list))
		for _, w := range list {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				return nil, fmt.Errorf("%s: %w", Dimension(i), ErrEmptyWord)
			}
			words = append(words, w)
		}
		l.words[i] = words
	}
	return &l, nil
}

func mustLexicon(happy, angry, sad, calm []string) *Lexicon {
	l, err := NewLexicon(happy, angry, sad, calm)
	if err != nil {
		panic(err)
	}
	return l
}

// Words returns a copy of the keyword list for a dimension.
func (l *Lexicon) Words(d Dimension) []string {
	out := make([]string, len(l.words[d]))
	copy(out, l.words[d])
	return out
}

// Size returns the total number of keywords across all dimensions.
func (l *Lexicon) Size() int {
	n := 0
	for _, list := range l.words {
		n += len(list)
	}
	return n
}
