// Package lang holds the supported language set shared by the pipeline and the UI.
package lang

const (
	English = "en"
	Hindi   = "hi"
	Telugu  = "te"
)

var names = map[string]string{
	English: "English",
	Hindi:   "Hindi",
	Telugu:  "Telugu",
}

// Codes returns the supported language codes in display order.
func Codes() []string {
	return []string{English, Hindi, Telugu}
}

func IsSupported(code string) bool {
	_, ok := names[code]
	return ok
}

// Name returns the display name for a supported code, defaulting to English.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return names[English]
}
