package routine

import "skincare-bot/internal/domain"

type template struct {
	morning []string
	evening []string
}

// baseTemplates is read-only after init. Generate clones before inserting.
var baseTemplates = map[domain.SkinType]template{
	domain.SkinOily: {
		morning: []string{
			"1. Gentle foaming cleanser",
			"2. Niacinamide serum (oil control)",
			"3. Lightweight, oil-free moisturizer",
			"4. Broad-spectrum SPF 30+ sunscreen",
		},
		evening: []string{
			"1. Double cleanse (oil cleanser + foaming cleanser)",
			"2. BHA/Salicylic acid (2-3x per week)",
			"3. Hyaluronic acid serum",
			"4. Gel-based night moisturizer",
		},
	},
	domain.SkinDry: {
		morning: []string{
			"1. Gentle, creamy cleanser",
			"2. Hyaluronic acid serum",
			"3. Rich, hydrating moisturizer",
			"4. Broad-spectrum SPF 30+ sunscreen",
		},
		evening: []string{
			"1. Gentle, creamy cleanser",
			"2. Hydrating toner/essence",
			"3. Face oil or serum",
			"4. Rich night cream",
		},
	},
	domain.SkinCombination: {
		morning: []string{
			"1. Gentle gel cleanser",
			"2. Niacinamide serum (T-zone) + Hyaluronic acid (cheeks)",
			"3. Lightweight moisturizer",
			"4. Broad-spectrum SPF 30+ sunscreen",
		},
		evening: []string{
			"1. Double cleanse",
			"2. BHA on T-zone (2x per week)",
			"3. Hydrating serum on dry areas",
			"4. Balanced moisturizer",
		},
	},
	domain.SkinSensitive: {
		morning: []string{
			"1. Gentle, fragrance-free cleanser",
			"2. Soothing serum (centella or ceramides)",
			"3. Gentle, fragrance-free moisturizer",
			"4. Mineral SPF 30+ sunscreen",
		},
		evening: []string{
			"1. Gentle, fragrance-free cleanser",
			"2. Calming toner",
			"3. Barrier repair serum",
			"4. Rich, soothing night cream",
		},
	},
	domain.SkinNormal: {
		morning: []string{
			"1. Gentle cleanser",
			"2. Vitamin C serum",
			"3. Lightweight moisturizer",
			"4. Broad-spectrum SPF 30+ sunscreen",
		},
		evening: []string{
			"1. Gentle cleanser",
			"2. Retinol (start 1x per week)",
			"3. Hyaluronic acid serum",
			"4. Night moisturizer",
		},
	},
}

// SkinTypes lists the skin types with a dedicated template.
func SkinTypes() []domain.SkinType {
	return []domain.SkinType{
		domain.SkinOily,
		domain.SkinDry,
		domain.SkinCombination,
		domain.SkinSensitive,
		domain.SkinNormal,
	}
}

// AgeBrackets lists the age brackets the dialogue service collects.
func AgeBrackets() []domain.AgeBracket {
	return []domain.AgeBracket{
		domain.AgeTeens,
		domain.AgeTwenties,
		domain.AgeThirties,
		domain.AgeForties,
		domain.AgeFiftiesPlus,
	}
}
