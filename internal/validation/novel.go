package validation

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxTagLen  = 40
	maxTags    = 25
	minRating  = 0
	maxRating  = 5
	minYear    = 1800
	maxNameLen = 300
)

// NormalizeTags case-folds, trims and de-duplicates tag and genre names,
// preserving first-seen order. Empty and over-long entries are dropped.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || len(t) > maxTagLen {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ValidateNovelName checks catalog/submission titles.
func ValidateNovelName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name must not exceed %d characters", maxNameLen)
	}
	return nil
}

// ValidateYear checks the publication year when one is provided.
func ValidateYear(year int) error {
	if year == 0 {
		return nil
	}
	if year < minYear || year > time.Now().Year()+1 {
		return fmt.Errorf("year must be between %d and %d", minYear, time.Now().Year()+1)
	}
	return nil
}

// ValidateRating checks a single category rating is within the 0-5 scale.
func ValidateRating(field string, value float64) error {
	if value < minRating || value > maxRating {
		return fmt.Errorf("%s rating must be between %d and %d", field, minRating, maxRating)
	}
	return nil
}
