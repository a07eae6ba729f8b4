package parser

import (
	"strings"
	"testing"
)

func TestSentenceGarbageConsonantRun(t *testing.T) {
	if !IsSentenceGarbage(strings.Repeat("b", 20)) {
		t.Fatal("20 repeated consonants should be garbage")
	}
	if IsSentenceGarbage("This is a perfectly normal English sentence.") {
		t.Fatal("normal sentence flagged as garbage")
	}
}

func TestSentenceGarbageTooShort(t *testing.T) {
	if !IsSentenceGarbage("abc.") {
		t.Fatal("sub-5-char sentence should be garbage")
	}
}

func TestSentenceGarbageLowAlphaRatio(t *testing.T) {
	if !IsSentenceGarbage("12 34 56 78 90 ++ --") {
		t.Fatal("mostly non-alphabetic sentence should be garbage")
	}
}

func TestSentenceGarbageFewDistinctChars(t *testing.T) {
	if !IsSentenceGarbage("ababab ababab") {
		t.Fatal("two distinct characters over 10+ chars should be garbage")
	}
}

func TestSentenceGarbageNoVowels(t *testing.T) {
	if !IsSentenceGarbage("pqr stv xz") {
		t.Fatal("vowel-free alphabetic sentence should be garbage")
	}
}

func TestPageGarbageShortTextNeverFlagged(t *testing.T) {
	if IsPageGarbage(strings.Repeat("z", 20)) {
		t.Fatal("pages under 50 chars are never flagged")
	}
}

func TestPageGarbageConsonantRuns(t *testing.T) {
	run := strings.Repeat("bcdfghjklm", 2)
	page := run + " hello there " + run + " hello again out there"
	if !IsPageGarbage(page) {
		t.Fatal("two long consonant runs should flag the page")
	}
	single := run + " but the rest of this page is entirely ordinary prose text"
	if IsPageGarbage(single) {
		t.Fatal("a single run is not enough to flag a page")
	}
}

func TestPageGarbageLowAlphaRatio(t *testing.T) {
	if !IsPageGarbage(strings.Repeat("12345!@#$%", 15)) {
		t.Fatal("symbol-heavy page should be flagged")
	}
}

func TestPageGarbageNoVowels(t *testing.T) {
	if !IsPageGarbage(strings.Repeat("bcdfg ", 30)) {
		t.Fatal("vowel-free page should be flagged")
	}
}

func TestPageGarbageNormalProse(t *testing.T) {
	page := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 5)
	if IsPageGarbage(page) {
		t.Fatal("normal prose flagged as garbage")
	}
}
