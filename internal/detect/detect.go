// Package detect identifies the language of user input among English, Hindi and
// Telugu, including their romanized forms ("Hinglish" and "Tinglish").
package detect

import (
	"math"
	"regexp"
	"strings"

	lingua "github.com/pemistahl/lingua-go"

	"bhasharag/internal/lang"
)

// Romanized forms are detected separately so the caller can normalize them to
// native script before translation.
const (
	Hinglish = "hinglish"
	Tinglish = "tinglish"
)

var (
	reDevanagari = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
	reTelugu     = regexp.MustCompile(`[\x{0C00}-\x{0C7F}]`)
	reLatinToken = regexp.MustCompile(`[a-zA-Z]+`)
)

var hinglishClues = clueSet("aap tum kya kaise kahan kab kyu mera ghar khana bhai dost school office thik")

var tinglishClues = clueSet("nuvvu meeru thinnava tinava anna chelli cheppa bagunnava emiti enduku evaru pani baga chala")

type Detector struct {
	lingua lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Hindi, lingua.Telugu).
		Build()

	return &Detector{lingua: detector}
}

// Detect returns one of "en", "hi", "te", "hinglish" or "tinglish".
func (d *Detector) Detect(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return lang.English
	}
	if reDevanagari.MatchString(t) {
		return lang.Hindi
	}
	if reTelugu.MatchString(t) {
		return lang.Telugu
	}

	tokens := reLatinToken.FindAllString(strings.ToLower(t), -1)
	if len(tokens) > 0 {
		// A romanized form wins when clue words make up at least a quarter of
		// the tokens, with an absolute floor of two hits.
		needed := max(2, int(math.Ceil(float64(len(tokens))*0.25)))
		if countHits(tokens, hinglishClues) >= needed {
			return Hinglish
		}
		if countHits(tokens, tinglishClues) >= needed {
			return Tinglish
		}
	}

	if detected, ok := d.lingua.DetectLanguageOf(t); ok {
		code := strings.ToLower(detected.IsoCode639_1().String())
		if lang.IsSupported(code) {
			return code
		}
	}
	return lang.English
}

func clueSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

func countHits(tokens []string, clues map[string]struct{}) int {
	hits := 0
	for _, tok := range tokens {
		if _, ok := clues[tok]; ok {
			hits++
		}
	}
	return hits
}
