// Package text implements the markdown-cleaning and segmentation rules that
// turn arbitrary prose into speakable chunks.
package text

import (
	"regexp"
	"strings"
)

// DefaultMaxChunkLen is the default upper bound (in bytes) for a single
// synthesis request.
const DefaultMaxChunkLen = 200

var (
	reTable      = regexp.MustCompile(`(?m)(?:^|\n)(\|[^\n]+\|(?:\n\|[^\n]+\|)*)`)
	reFencedCode = regexp.MustCompile(`(?s)` + "```" + `.*?` + "```")
	reInlineCode = regexp.MustCompile("`[^`]+`")
	reHR         = regexp.MustCompile(`(?m)^\s*[-*_]{3,}\s*$`)
	reBold       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reHeading    = regexp.MustCompile(`#{1,6}\s*`)
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	reBullet     = regexp.MustCompile(`(?m)^\s*[-*]\s+`)
	reNumbered   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	reLeadingDot = regexp.MustCompile(`^\.\s*`)
	reDoubleDot  = regexp.MustCompile(`\.\s*\.`)
	reMultiSpace = regexp.MustCompile(`\s{2,}`)
)

// HasAlphanumeric reports whether s contains at least one ASCII letter or
// digit, used to reject punctuation-only fragments before they're dispatched.
func HasAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') {
			return true
		}
	}
	return false
}

// CleanForSpeech strips markdown formatting that would read badly aloud,
// applying each rule in turn since later rules assume earlier ones have run.
func CleanForSpeech(s string) string {
	s = reTable.ReplaceAllString(s, "\nSee the table in our conversation.")
	s = reFencedCode.ReplaceAllString(s, " See the code in our conversation. ")
	s = reInlineCode.ReplaceAllString(s, "")
	s = reHR.ReplaceAllString(s, "")
	s = reBold.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reHeading.ReplaceAllString(s, "")
	s = reLink.ReplaceAllString(s, "$1")
	s = reBullet.ReplaceAllString(s, ". ")
	s = reNumbered.ReplaceAllString(s, ". ")
	s = reLeadingDot.ReplaceAllString(s, "")
	s = reDoubleDot.ReplaceAllString(s, ".")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
