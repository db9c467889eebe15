// Package normalize rewrites romanized Hindi and Telugu tokens into native
// script so downstream translation sees well-formed input.
package normalize

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

func mustRule(pattern, replacement string) rule {
	return rule{pattern: regexp.MustCompile(`(?i)` + pattern), replacement: replacement}
}

// Longer, more specific patterns come first so e.g. "hai na" is rewritten
// before the bare "hai".
var hinglishRules = []rule{
	mustRule(`\bnamaste\b`, "नमस्ते"),
	mustRule(`\bkya\b`, "क्या"),
	mustRule(`\bkaise\b`, "कैसे"),
	mustRule(`\bha(i)?\s+na\b`, "है ना"),
	mustRule(`\bha(i|ee)\b`, "भाई"),
	mustRule(`\bmera\b`, "मेरा"),
	mustRule(`\bnaam\b`, "नाम"),
	mustRule(`\bghar\b`, "घर"),
	mustRule(`\bkhana\b`, "खाना"),
	mustRule(`\bthik\b`, "ठीक"),
	mustRule(`\bdost\b`, "दोस्त"),
	mustRule(`\bpadhai\b`, "पढ़ाई"),
	mustRule(`\bschool\b`, "स्कूल"),
	mustRule(`\boffice\b`, "ऑफिस"),
	mustRule(`\bkyu\b`, "क्यों"),
	mustRule(`\bkahan\b`, "कहाँ"),
	mustRule(`\bkab\b`, "कब"),
	mustRule(`\bha\b`, "है"),
	mustRule(`\bhoon\b`, "हूँ"),
	mustRule(`\braha\b`, "रहा"),
	mustRule(`\brahe\b`, "रहे"),
}

var tinglishRules = []rule{
	mustRule(`\bnuvvu\b`, "నువ్వు"),
	mustRule(`\bmeeru\b`, "మీరు"),
	mustRule(`\bthinnava\b`, "తిన్నావా"),
	mustRule(`\btinava\b`, "తిన్నావా"),
	mustRule(`\banna\b`, "అన్నా"),
	mustRule(`\bcheppa\b`, "చెప్ప"),
	mustRule(`\bchelli\b`, "చెల్లి"),
	mustRule(`\bbagunna(va|ra)\b`, "బాగున్నావా"),
	mustRule(`\bemiti\b`, "ఏమిటీ"),
	mustRule(`\benduku\b`, "ఎందుకు"),
	mustRule(`\bevaru\b`, "ఎవరు"),
	mustRule(`\bpani\b`, "పని"),
	mustRule(`\bbaga\b`, "బాగా"),
	mustRule(`\bchala\b`, "చాలా"),
}

func apply(rules []rule, text string) string {
	out := text
	for _, r := range rules {
		out = r.pattern.ReplaceAllString(out, r.replacement)
	}
	return out
}

// Hinglish rewrites romanized Hindi tokens to Devanagari.
func Hinglish(text string) string {
	return apply(hinglishRules, text)
}

// Tinglish rewrites romanized Telugu tokens to Telugu script.
func Tinglish(text string) string {
	return apply(tinglishRules, text)
}
