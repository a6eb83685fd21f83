package interpret

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitPattern = regexp.MustCompile(`(\d+)`)
	wordPattern  = regexp.MustCompile(`(?i)\b(zero|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty)\b`)
	urlPattern   = regexp.MustCompile(`https?://[^\s]+`)
)

var wordNumbers = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
}

// ExtractNumber pulls the first quantity out of free text. A digit sequence
// wins over a spelled-out number when both are present. The word lexicon stops
// at twenty; larger spelled-out numbers extract nothing.
func ExtractNumber(text string) (int, bool) {
	if match := digitPattern.FindString(text); match != "" {
		n, err := strconv.Atoi(match)
		if err == nil {
			return n, true
		}
	}

	if match := wordPattern.FindString(text); match != "" {
		if n, ok := wordNumbers[strings.ToLower(match)]; ok {
			return n, true
		}
	}

	return 0, false
}

// ExtractURLs returns every scheme-qualified URL in the text, in first
// occurrence order. Duplicates stay; deduplication is not this layer's job.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
