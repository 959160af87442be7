package text

import "testing"

func TestCleanForSpeechStripsFencedCode(t *testing.T) {
	got := CleanForSpeech("before ```go\nfmt.Println(1)\n``` after")
	want := "before See the code in our conversation. after"
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}

func TestCleanForSpeechStripsInlineCode(t *testing.T) {
	got := CleanForSpeech("run `go build` now")
	want := "run now"
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}

func TestCleanForSpeechStripsTable(t *testing.T) {
	got := CleanForSpeech("intro\n| a | b |\n| 1 | 2 |\nend")
	want := "intro\nSee the table in our conversation.\nend"
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}

func TestCleanForSpeechStripsHeadingsBoldItalicLinks(t *testing.T) {
	got := CleanForSpeech("## Heading This is **bold** and *italic* with a [link](http://example.com).")
	want := "Heading This is bold and italic with a link."
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}

func TestCleanForSpeechConvertsListsToSentences(t *testing.T) {
	got := CleanForSpeech("- first\n- second\n1. third")
	want := "first\n. second\n. third"
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}

func TestCleanForSpeechCollapsesDoubleDotsAndSpaces(t *testing.T) {
	got := CleanForSpeech("done.. now   then")
	want := "done. now then"
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}

func TestCleanForSpeechStripsHorizontalRule(t *testing.T) {
	got := CleanForSpeech("above\n---\nbelow")
	want := "above below"
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}

func TestCleanForSpeechTrimsLeadingDot(t *testing.T) {
	got := CleanForSpeech(". leading")
	want := "leading"
	if got != want {
		t.Errorf("CleanForSpeech() = %q, want %q", got, want)
	}
}
