package validate

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sidharrth2002/rss-scraper/pkg/domain"
)

// Thresholds control the per-feed sanity checks. They come from external
// configuration, not hard-coded constants.
type Thresholds struct {
	// MinMedianWords is the minimum median title length in words. Short
	// titles are not individually disqualifying, but a feed whose median is
	// too short signals systematic truncation.
	MinMedianWords int

	// DuplicateSimilarity is the token-overlap (Jaccard) similarity at or
	// above which two titles count as near-duplicates.
	DuplicateSimilarity float64
}

// DefaultThresholds returns the thresholds used when none are configured.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinMedianWords:      2,
		DuplicateSimilarity: 0.8,
	}
}

// Validator applies per-feed sanity checks to cleaned titles.
type Validator struct {
	thresholds Thresholds
}

// NewValidator creates a validator with the given thresholds. Zero-valued
// thresholds fall back to the defaults.
func NewValidator(t Thresholds) *Validator {
	defaults := DefaultThresholds()
	if t.MinMedianWords <= 0 {
		t.MinMedianWords = defaults.MinMedianWords
	}
	if t.DuplicateSimilarity <= 0 {
		t.DuplicateSimilarity = defaults.DuplicateSimilarity
	}
	return &Validator{thresholds: t}
}

// Validate classifies a feed's cleaned titles. Checks run in order and the
// first failure wins: no titles at all makes the feed Invalid; a too-short
// median or too many near-duplicates make it Suspect.
func (v *Validator) Validate(titles []domain.CleanTitle) (domain.Validity, string) {
	if len(titles) == 0 {
		return domain.ValidityInvalid, domain.ReasonNoTitles
	}
	if medianWordCount(titles) < v.thresholds.MinMedianWords {
		return domain.ValiditySuspect, domain.ReasonTooShort
	}
	if v.tooManyNearDuplicates(titles) {
		return domain.ValiditySuspect, domain.ReasonDuplicates
	}
	return domain.ValidityValid, ""
}

// medianWordCount returns the median number of words across titles, rounding
// down for even-length feeds.
func medianWordCount(titles []domain.CleanTitle) int {
	counts := make([]int, len(titles))
	for i, t := range titles {
		counts[i] = len(strings.Fields(t.Text))
	}
	sort.Ints(counts)

	n := len(counts)
	if n%2 == 1 {
		return counts[n/2]
	}
	return (counts[n/2-1] + counts[n/2]) / 2
}

// tooManyNearDuplicates reports whether more than half the titles are
// near-identical to at least one other title.
func (v *Validator) tooManyNearDuplicates(titles []domain.CleanTitle) bool {
	if len(titles) < 2 {
		return false
	}

	sets := make([]map[string]struct{}, len(titles))
	for i, t := range titles {
		sets[i] = tokenSet(t.Text)
	}

	duplicated := make([]bool, len(titles))
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if jaccard(sets[i], sets[j]) >= v.thresholds.DuplicateSimilarity {
				duplicated[i] = true
				duplicated[j] = true
			}
		}
	}

	count := 0
	for _, d := range duplicated {
		if d {
			count++
		}
	}
	return count*2 > len(titles)
}

// tokenSet lowercases a title and splits it into its alphanumeric tokens,
// discarding punctuation so superficial variants compare equal.
func tokenSet(s string) map[string]struct{} {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// jaccard computes |a∩b| / |a∪b|. Two empty sets count as identical: titles
// reduced to pure punctuation carry no distinguishing content.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
