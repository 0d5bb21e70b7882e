// Package routine builds morning and evening skincare routines from a skin
// profile using a fixed template table and a small set of insertion rules.
package routine

import (
	"slices"
	"strings"

	"skincare-bot/internal/domain"
)

// Modifier steps are always inserted at this index, after cleanse and the
// first treatment step. Later insertions push earlier ones down.
const modifierIndex = 2

const (
	stepAntioxidant  = "2.5. Vitamin C serum (antioxidant)"
	stepRetinolStart = "2.5. Retinol serum (start slowly)"
	stepAcne         = "2.5. Benzoyl peroxide or salicylic acid treatment"
	stepVitaminC     = "2.5. Vitamin C serum"
	stepBrightening  = "2.5. Kojic acid or arbutin serum"
	stepAntiAging    = "2.5. Retinol or peptide serum"
	stepExfoliant    = "2.5. AHA/Glycolic acid (1-2x per week)"
)

var antiAgingBrackets = map[domain.AgeBracket]bool{
	domain.AgeThirties:    true,
	domain.AgeForties:     true,
	domain.AgeFiftiesPlus: true,
}

type issueRule struct {
	keywords []string
	morning  string
	evening  string
}

// issueRules are checked in order and every match fires.
var issueRules = []issueRule{
	{keywords: []string{"acne"}, evening: stepAcne},
	{keywords: []string{"dark spots", "hyperpigmentation"}, morning: stepVitaminC, evening: stepBrightening},
	{keywords: []string{"wrinkles", "fine lines"}, evening: stepAntiAging},
	{keywords: []string{"dull"}, evening: stepExfoliant},
}

// Generate returns the routine for the given raw profile values. It never
// fails: an unknown skin type uses the normal template and empty age or
// issues skip their rules.
func Generate(skinType, ageBracket, issues string) domain.Routine {
	return GenerateFor(domain.NewSkinProfile(skinType, ageBracket, issues))
}

// GenerateFor is Generate for an already built profile.
func GenerateFor(p domain.SkinProfile) domain.Routine {
	base, ok := baseTemplates[p.SkinType]
	if !ok {
		base = baseTemplates[domain.SkinNormal]
	}
	morning := slices.Clone(base.morning)
	evening := slices.Clone(base.evening)

	if antiAgingBrackets[p.AgeBracket] {
		if !strings.Contains(strings.Join(morning, "\n"), "Vitamin C serum") {
			morning = slices.Insert(morning, modifierIndex, stepAntioxidant)
		}
		if !strings.Contains(strings.Join(evening, "\n"), "Retinol") {
			evening = slices.Insert(evening, modifierIndex, stepRetinolStart)
		}
	}

	if p.Issues != "" {
		issues := strings.ToLower(p.Issues)
		for _, rule := range issueRules {
			if !containsAny(issues, rule.keywords) {
				continue
			}
			if rule.morning != "" {
				morning = slices.Insert(morning, modifierIndex, rule.morning)
			}
			if rule.evening != "" {
				evening = slices.Insert(evening, modifierIndex, rule.evening)
			}
		}
	}

	return domain.Routine{Morning: morning, Evening: evening}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
