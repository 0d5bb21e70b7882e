package routine

import (
	"strings"

	"skincare-bot/internal/domain"
)

var tips = []string{
	"- Always patch test new products",
	"- Introduce new products gradually",
	"- Use sunscreen daily (SPF 30+)",
	"- Be consistent for best results",
}

// FormatMessage renders the single chat message sent back for a generated
// routine.
func FormatMessage(p domain.SkinProfile, r domain.Routine) string {
	var b strings.Builder
	b.WriteString("**Your Personalized Skincare Routine**\n")
	b.WriteString("Based on your ")
	b.WriteString(orUnspecified(string(p.SkinType)))
	b.WriteString(" skin type, ")
	b.WriteString(orUnspecified(string(p.AgeBracket)))
	b.WriteString(" age range, and concerns about ")
	b.WriteString(orUnspecified(p.Issues))
	b.WriteString(", here's your customized routine:\n\n")

	b.WriteString("🌅 **MORNING ROUTINE:**\n")
	b.WriteString(r.MorningText())
	b.WriteString("\n\n🌙 **EVENING ROUTINE:**\n")
	b.WriteString(r.EveningText())

	b.WriteString("\n\n**Important Tips:**\n")
	b.WriteString(strings.Join(tips, "\n"))
	return b.String()
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unspecified"
	}
	return s
}
