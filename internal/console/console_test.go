package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/require"

	"skincare-bot/internal/domain"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "hello there", width: 20, want: []string{"hello there"}},
		{name: "breaks between words", text: "one two three four", width: 9, want: []string{"one two", "three", "four"}},
		{name: "keeps line breaks", text: "a\n\nb", width: 10, want: []string{"a", "", "b"}},
		{name: "splits long word", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "wide glyphs at odd width", text: "🌅🌅🌅🌅🌅 ok", width: 3, want: []string{"🌅", "🌅", "🌅", "🌅", "🌅", "ok"}},
		{name: "wide word then short word", text: "皮肤护理建议皮肤护理建议皮肤 next", width: 15, want: []string{"皮肤护理建议皮", "肤护理建议皮肤", "next"}},
		{name: "split tail shares line", text: "abcdef gh", width: 5, want: []string{"abcde", "f gh"}},
		{name: "no wrapping", text: "one two", width: 0, want: []string{"one two"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Wrap(tc.text, tc.width))
		})
	}
}

func TestWrap_WideGraphemesStayWhole(t *testing.T) {
	lines := Wrap("🌅🌅🌅🌅🌅", 4)
	for _, line := range lines {
		require.LessOrEqual(t, uniseg.StringWidth(line), 4)
	}
	require.Equal(t, "🌅🌅🌅🌅🌅", strings.Join(lines, ""))
}

func TestWrap_LinesNeverExceedWidth(t *testing.T) {
	text := "皮肤护理建议皮肤护理建议皮肤 next 🌅🌅🌅 morning routine"
	for width := 2; width <= 16; width++ {
		for _, line := range Wrap(text, width) {
			require.LessOrEqual(t, uniseg.StringWidth(line), width, "width %d line %q", width, line)
		}
	}
}

func TestPrinter_Turn(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 24)

	p.Turn(domain.ConversationTurn{UserText: "hi", BotText: "Hello! What is your skin type?"})

	require.Equal(t, "You> hi\nBot> Hello! What is your\n     skin type?\n", buf.String())
}

func TestPrinter_EmptyTranscript(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 80).Transcript(nil)
	require.Contains(t, buf.String(), "no messages yet")
}

func TestPrinter_MinimumWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 0)
	p.Separator()
	require.Equal(t, strings.Repeat("─", minWidth)+"\n", buf.String())
}
