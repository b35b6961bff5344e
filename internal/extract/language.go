package extract

import (
	"sort"
	"strings"
)

// languageKeywords maps text variants to canonical language names.
var languageKeywords = map[string]string{
	"english":                "English",
	"spanish":                "Spanish",
	"espanol":                "Spanish",
	"español":                "Spanish",
	"mandarin":               "Mandarin",
	"chinese":                "Mandarin",
	"korean":                 "Korean",
	"vietnamese":             "Vietnamese",
	"french":                 "French",
	"arabic":                 "Arabic",
	"amharic":                "Amharic",
	"asl":                    "ASL",
	"american sign language": "ASL",
	"sign language":          "ASL",
	"portuguese":             "Portuguese",
	"hindi":                  "Hindi",
	"urdu":                   "Urdu",
	"tagalog":                "Tagalog",
	"farsi":                  "Farsi",
	"persian":                "Farsi",
	"russian":                "Russian",
	"japanese":               "Japanese",
	"german":                 "German",
	"italian":                "Italian",
	"haitian creole":         "Haitian Creole",
	"creole":                 "Haitian Creole",
}

// Languages returns the sorted set of canonical languages mentioned in text.
func Languages(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	found := make(map[string]bool)
	for keyword, canonical := range languageKeywords {
		if strings.Contains(lower, keyword) {
			found[canonical] = true
		}
	}
	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for lang := range found {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
