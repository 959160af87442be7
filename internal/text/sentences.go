package text

import "strings"

// SplitSentences splits text at sentence-ending ASCII punctuation (. ! ?)
// followed by ASCII whitespace, and at paragraph breaks (two or more
// consecutive newlines). Returns trimmed, non-empty fragments; a terminal
// fragment without trailing punctuation is retained as the final element.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	n := len(text)
	i := 0

	for i < n {
		if text[i] == '\n' && i+1 < n && text[i+1] == '\n' {
			if chunk := strings.TrimSpace(text[start:i]); chunk != "" {
				sentences = append(sentences, chunk)
			}
			for i < n && text[i] == '\n' {
				i++
			}
			start = i
			continue
		}

		if isSentenceEnd(text[i]) && i+1 < n && isASCIISpace(text[i+1]) {
			if chunk := strings.TrimSpace(text[start : i+1]); chunk != "" {
				sentences = append(sentences, chunk)
			}
			i++
			for i < n && isASCIISpace(text[i]) && text[i] != '\n' {
				i++
			}
			start = i
			continue
		}

		i++
	}

	if start < n {
		if chunk := strings.TrimSpace(text[start:]); chunk != "" {
			sentences = append(sentences, chunk)
		}
	}

	return sentences
}

func isSentenceEnd(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}
