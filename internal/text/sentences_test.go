package text

import (
	"reflect"
	"testing"
)

func TestSplitSentencesBasic(t *testing.T) {
	got := SplitSentences("Hello there. How are you? I am fine!")
	want := []string{"Hello there.", "How are you?", "I am fine!"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences() = %#v, want %#v", got, want)
	}
}

func TestSplitSentencesNoTrailingPunctuation(t *testing.T) {
	got := SplitSentences("First sentence. trailing fragment without a period")
	want := []string{"First sentence.", "trailing fragment without a period"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences() = %#v, want %#v", got, want)
	}
}

func TestSplitSentencesParagraphBreak(t *testing.T) {
	got := SplitSentences("Paragraph one\n\nParagraph two")
	want := []string{"Paragraph one", "Paragraph two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences() = %#v, want %#v", got, want)
	}
}

func TestSplitSentencesDoesNotSplitOnDecimal(t *testing.T) {
	got := SplitSentences("Pi is 3.14 and that is all.")
	want := []string{"Pi is 3.14 and that is all."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences() = %#v, want %#v", got, want)
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	got := SplitSentences("")
	if len(got) != 0 {
		t.Errorf("SplitSentences(%q) = %#v, want empty", "", got)
	}
}
