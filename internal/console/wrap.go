// Package console renders the chat transcript for a terminal.
package console

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Wrap breaks text into lines at most width cells wide. Existing line breaks
// are kept and words wider than a line are split between graphemes, so emoji
// and wide characters are never cut in half. width <= 0 disables wrapping.
func Wrap(text string, width int) []string {
	lines := strings.Split(text, "\n")
	if width <= 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		out   []string
		cur   strings.Builder
		cells int
	)
	flush := func() {
		out = append(out, cur.String())
		cur.Reset()
		cells = 0
	}

	for _, word := range words {
		w := uniseg.StringWidth(word)
		if w > width {
			if cells > 0 {
				flush()
			}
			for i, piece := range splitWide(word, width) {
				if i > 0 {
					flush()
				}
				cur.WriteString(piece)
				cells = uniseg.StringWidth(piece)
			}
			continue
		}
		if cells > 0 && cells+1+w > width {
			flush()
		}
		if cells > 0 {
			cur.WriteByte(' ')
			cells++
		}
		cur.WriteString(word)
		cells += w
	}
	if cells > 0 {
		flush()
	}
	return out
}

// splitWide cuts word into pieces of at most width cells.
func splitWide(word string, width int) []string {
	var (
		pieces []string
		cur    strings.Builder
		cells  int
	)
	gr := uniseg.NewGraphemes(word)
	for gr.Next() {
		w := gr.Width()
		if cells > 0 && cells+w > width {
			pieces = append(pieces, cur.String())
			cur.Reset()
			cells = 0
		}
		cur.WriteString(gr.Str())
		cells += w
	}
	if cur.Len() > 0 {
		pieces = append(pieces, cur.String())
	}
	return pieces
}
