package issueref

import (
	"regexp"
	"sort"
	"strconv"
)

// closingKeywordRegex matches GitHub's auto-closing keyword grammar:
// "fixes #12", "Closes #7", "resolved #100" and so on.
var closingKeywordRegex = regexp.MustCompile(`(?i)(?:fix(?:es)?|close[sd]?|resolve[sd]?)\s+#(\d+)`)

// Extract parses linked issue numbers from a pull request body.
// References are deduplicated and returned in ascending order.
// An empty or keyword-free body yields an empty slice.
func Extract(body string) []int {
	if body == "" {
		return nil
	}

	seen := make(map[int]bool) // Track seen issue numbers to avoid duplicates
	var numbers []int

	matches := closingKeywordRegex.FindAllStringSubmatch(body, -1)
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil {
			// Regex guarantees digits; overflow is the only way here
			continue
		}
		if seen[number] {
			continue
		}
		seen[number] = true
		numbers = append(numbers, number)
	}

	sort.Ints(numbers)
	return numbers
}
