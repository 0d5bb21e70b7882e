package console

import (
	"fmt"
	"io"
	"strings"

	"skincare-bot/internal/domain"
)

const (
	userPrefix = "You> "
	botPrefix  = "Bot> "
	minWidth   = 20
)

// Printer writes transcript entries to a terminal of a fixed width.
type Printer struct {
	out   io.Writer
	width int
}

func NewPrinter(out io.Writer, width int) *Printer {
	if width < minWidth {
		width = minWidth
	}
	return &Printer{out: out, width: width}
}

// Bot prints a reply with continuation lines aligned under the first.
func (p *Printer) Bot(text string) {
	p.prefixed(botPrefix, text)
}

// Turn prints both sides of an exchange.
func (p *Printer) Turn(turn domain.ConversationTurn) {
	p.prefixed(userPrefix, turn.UserText)
	p.Bot(turn.BotText)
}

func (p *Printer) Transcript(turns []domain.ConversationTurn) {
	if len(turns) == 0 {
		fmt.Fprintln(p.out, "(no messages yet)")
		return
	}
	for _, t := range turns {
		p.Turn(t)
	}
}

func (p *Printer) Separator() {
	fmt.Fprintln(p.out, strings.Repeat("─", p.width))
}

func (p *Printer) Help() {
	fmt.Fprintln(p.out, "Commands:")
	fmt.Fprintln(p.out, "  /start    ask for skincare advice")
	fmt.Fprintln(p.out, "  /reset    clear the conversation")
	fmt.Fprintln(p.out, "  /history  show the conversation so far")
	fmt.Fprintln(p.out, "  /help     show this help")
	fmt.Fprintln(p.out, "  exit      quit")
}

func (p *Printer) prefixed(prefix, text string) {
	indent := strings.Repeat(" ", len(prefix))
	for i, line := range Wrap(text, p.width-len(prefix)) {
		if i == 0 {
			fmt.Fprintln(p.out, prefix+line)
			continue
		}
		if line == "" {
			fmt.Fprintln(p.out)
			continue
		}
		fmt.Fprintln(p.out, indent+line)
	}
}
