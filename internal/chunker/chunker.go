// ABOUTME: Chunker splits raw text into bounded-size segments for embedding
// ABOUTME: Sentences are accumulated into chunks of roughly maxSize characters
package chunker

import (
	"regexp"
	"strings"
)

// sentence boundaries are any run of terminal punctuation
var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Chunk splits text into ordered segments of at most roughly maxSize
// characters. Text is split into sentences on runs of ".", "!" or "?";
// each sentence is re-terminated with ". " regardless of its original
// punctuation. A sentence that would push the current chunk past maxSize
// starts a new chunk instead, so a single sentence longer than maxSize
// becomes its own oversized chunk. No emitted chunk is empty and sentence
// order is preserved.
func Chunk(text string, maxSize int) []string {
	sentences := sentenceBoundary.Split(text, -1)

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if current.Len()+len(sentence) > maxSize && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}

		current.WriteString(sentence)
		current.WriteString(". ")
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}
