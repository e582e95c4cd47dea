// Package readability scores how easy a text is to read.
//
// Three published indices are computed over the text (Flesch Reading
// Ease, Gunning Fog, and SMOG), then normalized onto a shared 0-100
// "ease" axis (higher = easier), averaged, and mapped to a qualitative
// label. Scoring is a pure function with no I/O and no state.
package readability

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

// MinWords is the hard floor on input size. Below roughly 30 words the
// underlying indices are statistically unreliable, so scoring refuses
// rather than returning a meaningless number.
const MinWords = 30

// ErrInsufficientText is returned when the input has fewer than MinWords
// whitespace-separated words. It is a usable negative outcome; callers
// should present it as "not enough text", not as a generic failure.
var ErrInsufficientText = errors.New("readability: not enough text to score reliably")

// easeScale converts a grade-level index (Gunning Fog, SMOG) into an ease
// penalty, mapping the typical 0–20 grade range onto 0-100.
const easeScale = 5.0

// Label thresholds on the combined score, inclusive at the lower bound of
// each bracket.
const (
	beginnerThreshold     = 70.0
	intermediateThreshold = 50.0
)

const (
	LabelBeginner     = "beginner-friendly"
	LabelIntermediate = "intermediate"
	LabelAdvanced     = "advanced"
)

// Result holds the raw indices, their normalized ease values, the combined
// score, and the qualitative label.
//
// Raw indices keep their native ranges: Flesch is nominally 0-100 (higher
// = easier) but can exceed both bounds on pathological input; Gunning Fog
// and SMOG are unbounded grade levels (higher = harder). Every ease value
// and Combined are clamped to [0,100].
type Result struct {
	Flesch  float64 `json:"flesch"`
	Gunning float64 `json:"gunning"`
	SMOG    float64 `json:"smog"`

	FleschEase  float64 `json:"flesch_ease"`
	GunningEase float64 `json:"gunning_ease"`
	SMOGEase    float64 `json:"smog_ease"`

	Combined float64 `json:"combined_score"`
	Label    string  `json:"label"`
}

// Score computes the readability of text.
// Returns ErrInsufficientText when the text has fewer than MinWords words.
func Score(text string) (*Result, error) {
	words := strings.Fields(text)
	if len(words) < MinWords {
		return nil, ErrInsufficientText
	}

	st := analyze(words, text)

	r := &Result{
		Flesch:  fleschReadingEase(st),
		Gunning: gunningFog(st),
		SMOG:    smogIndex(st),
	}

	r.FleschEase = clamp(r.Flesch, 0, 100)
	r.GunningEase = clamp(100-r.Gunning*easeScale, 0, 100)
	r.SMOGEase = clamp(100-r.SMOG*easeScale, 0, 100)

	r.Combined = (r.FleschEase + r.GunningEase + r.SMOGEase) / 3.0
	r.Label = labelFor(r.Combined)

	return r, nil
}

// WordCount returns the whitespace-split token count of text. Exposed so
// callers can report "N words, need at least 30" without re-tokenizing.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// stats are the text measurements all three formulas are built from.
type stats struct {
	words         int
	sentences     int
	syllables     int
	polysyllables int // words with 3+ syllables
}

func analyze(words []string, text string) stats {
	st := stats{
		words:     len(words),
		sentences: countSentences(text),
	}

	for _, w := range words {
		s := countSyllables(w)
		st.syllables += s
		if s >= 3 {
			st.polysyllables++
		}
	}

	return st
}

// Flesch Reading Ease: 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Higher = easier.
func fleschReadingEase(st stats) float64 {
	return 206.835 -
		1.015*(float64(st.words)/float64(st.sentences)) -
		84.6*(float64(st.syllables)/float64(st.words))
}

// Gunning Fog: 0.4*[(words/sentences) + 100*(complex/words)], where a
// complex word has 3+ syllables. Approximates the US grade level needed.
func gunningFog(st stats) float64 {
	return 0.4 * (float64(st.words)/float64(st.sentences) +
		100*float64(st.polysyllables)/float64(st.words))
}

// SMOG: 1.0430*sqrt(polysyllables * 30/sentences) + 3.1291.
func smogIndex(st stats) float64 {
	return 1.0430*math.Sqrt(float64(st.polysyllables)*30/float64(st.sentences)) + 3.1291
}

func labelFor(combined float64) string {
	switch {
	case combined >= beginnerThreshold:
		return LabelBeginner
	case combined >= intermediateThreshold:
		return LabelIntermediate
	default:
		return LabelAdvanced
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// countSentences counts sentence terminators. A run of '.', '!' or '?'
// ends one sentence ("Wait..." is one, not three). Text with no terminator
// at all still counts as one sentence.
func countSentences(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inTerminator {
				count++
				inTerminator = true
			}
		default:
			inTerminator = false
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}

// countSyllables estimates the syllables in a single word by counting
// vowel groups, with a silent-e adjustment. Every word counts as at least
// one syllable. This is the standard heuristic readability tools use; it
// is not a dictionary lookup and will be off by one on some words, which
// the formulas tolerate.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Trailing silent e: "make" has one spoken syllable, not two. Words
	// ending in "le" keep it ("table"), and single-syllable words like
	// "the" are left alone.
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}

	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
