package rules

import (
	"fmt"
	"strings"

	"mercator-hq/saturn/pkg/retention"
)

// suggestCategory proposes a fix for an unknown category name. It
// uses Levenshtein distance to find the closest valid name.
func suggestCategory(unknown string) string {
	valid := retention.Categories()

	minDistance := 1000
	var bestMatch retention.Category
	for _, c := range valid {
		dist := levenshteinDistance(unknown, string(c))
		if dist < minDistance {
			minDistance = dist
			bestMatch = c
		}
	}

	// Only suggest a single name if the distance is reasonable.
	if minDistance < 5 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	names := make([]string, len(valid))
	for i, c := range valid {
		names[i] = string(c)
	}
	return fmt.Sprintf("Valid categories: %s", strings.Join(names, ", "))
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
