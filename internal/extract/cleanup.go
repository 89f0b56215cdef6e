package extract

import (
	"regexp"
	"strings"
)

const minLineLength = 3

// headers and footers common in financial reports
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page \d+ of \d+$`),
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`(?i)^copyright`),
	regexp.MustCompile(`(?i)^confidential`),
	regexp.MustCompile(`(?i)proprietary`),
}

func isNoiseLine(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < minLineLength {
		return true
	}
	for _, pattern := range noisePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// CleanText drops page furniture line by line and keeps everything else as is.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !isNoiseLine(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
