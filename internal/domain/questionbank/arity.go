package questionbank

import "regexp"

type arityPattern struct {
	re    *regexp.Regexp
	count int
}

// Checked in order; the first match wins.
var arityPatterns = []arityPattern{
	{regexp.MustCompile(`(?i)\bname\s+(one|1)\b`), 1},
	{regexp.MustCompile(`(?i)\bname\s+(two|2)\b`), 2},
	{regexp.MustCompile(`(?i)\bname\s+(three|3)\b`), 3},
	{regexp.MustCompile(`(?i)\bname\s+(four|4)\b`), 4},
	{regexp.MustCompile(`(?i)\bname\s+(five|5)\b`), 5},
	{regexp.MustCompile(`(?i)\bname\s+(six|6)\b`), 6},
	{regexp.MustCompile(`(?i)\bwhat\s+is\s+(one|1)\b`), 1},
	{regexp.MustCompile(`(?i)\bwhat\s+are\s+(two|2)\b`), 2},
	{regexp.MustCompile(`(?i)\bwhat\s+are\s+(three|3)\b`), 3},
	{regexp.MustCompile(`(?i)\bwhat\s+are\s+(four|4)\b`), 4},
	{regexp.MustCompile(`(?i)\bwhat\s+are\s+(five|5)\b`), 5},
	{regexp.MustCompile(`(?i)\bwhat\s+are\s+(six|6)\b`), 6},
}

// RequiredAnswerCount returns how many distinct answers a prompt asks for,
// e.g. 2 for "Name two national U.S. holidays." It defaults to 1.
func RequiredAnswerCount(prompt string) int {
	for _, p := range arityPatterns {
		if p.re.MatchString(prompt) {
			return p.count
		}
	}
	return 1
}
