package domain

import "strings"

// SkinType is one of the coarse categories that selects a base routine.
type SkinType string

const (
	SkinOily        SkinType = "oily"
	SkinDry         SkinType = "dry"
	SkinCombination SkinType = "combination"
	SkinSensitive   SkinType = "sensitive"
	SkinNormal      SkinType = "normal"
)

// AgeBracket is the coarse age range collected by the dialogue service.
type AgeBracket string

const (
	AgeTeens       AgeBracket = "teens"
	AgeTwenties    AgeBracket = "twenties"
	AgeThirties    AgeBracket = "thirties"
	AgeForties     AgeBracket = "forties"
	AgeFiftiesPlus AgeBracket = "fifties_plus"
)

// SkinProfile is the immutable input to routine generation. NewSkinProfile
// trims and lower-cases the skin type and age keys, so "Oily" selects the oily
// template. Unknown values are not an error.
type SkinProfile struct {
	SkinType   SkinType
	AgeBracket AgeBracket
	Issues     string
}

// NewSkinProfile normalizes raw slot values into a profile.
func NewSkinProfile(skinType, ageBracket, issues string) SkinProfile {
	return SkinProfile{
		SkinType:   SkinType(normalizeKey(skinType)),
		AgeBracket: AgeBracket(normalizeKey(ageBracket)),
		Issues:     strings.TrimSpace(issues),
	}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Routine is a generated pair of ordered step lists.
type Routine struct {
	Morning []string
	Evening []string
}

func (r Routine) MorningText() string {
	return strings.Join(r.Morning, "\n")
}

func (r Routine) EveningText() string {
	return strings.Join(r.Evening, "\n")
}
