package text

import "strings"

// SplitChunks splits text longer than maxLen bytes into pieces, preferring a
// sentence boundary, then a word boundary, then a hard split. Behaviour is
// defined on byte boundaries per the pipeline's chunking contract; callers
// passing multibyte text get correct ASCII boundaries and may see slightly
// larger chunks around non-ASCII runs.
func SplitChunks(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var result []string
	remaining := text

	for len(remaining) > maxLen {
		window := remaining[:maxLen]

		splitAt := wordBoundaryOrHard(window, maxLen)
		if pos := strings.LastIndex(window, ". "); pos >= 0 && pos >= maxLen/2 {
			splitAt = pos + 1 // include the period
		}

		chunk := strings.TrimRight(remaining[:splitAt], " \t\r\n\v\f")
		if chunk != "" {
			result = append(result, chunk)
		}
		remaining = strings.TrimLeft(remaining[splitAt:], " \t\r\n\v\f")
	}

	if len(remaining) >= 2 {
		result = append(result, remaining)
	}

	return result
}

// wordBoundaryOrHard finds the last space in window at or past maxLen/3;
// otherwise hard-splits at maxLen.
func wordBoundaryOrHard(window string, maxLen int) int {
	if pos := strings.LastIndexByte(window, ' '); pos >= 0 && pos >= maxLen/3 {
		return pos
	}
	return maxLen
}
