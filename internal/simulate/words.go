package simulate

import (
	_ "embed"
	"strings"
)

// WordSource produces random filler words.
type WordSource interface {
	Words(n int) []string
}

//go:embed words.txt
var defaultWordsText string

// DefaultWords returns the built-in filler vocabulary.
func DefaultWords() []string {
	return strings.Fields(defaultWordsText)
}

// WordList draws words uniformly from a fixed vocabulary.
type WordList struct {
	words []string
	rand  Rand
}

// NewWordList builds a word source over words, or over DefaultWords when words is empty.
func NewWordList(rng Rand, words []string) *WordList {
	vocabulary := make([]string, 0, len(words))
	for _, word := range words {
		if word = strings.TrimSpace(word); word != "" {
			vocabulary = append(vocabulary, word)
		}
	}
	if len(vocabulary) == 0 {
		vocabulary = DefaultWords()
	}
	return &WordList{words: vocabulary, rand: rng}
}

// Words returns n words drawn with replacement.
func (list *WordList) Words(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.words[list.rand.IntN(len(list.words))])
	}
	return out
}
