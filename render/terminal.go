package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/ratel-online/assistant/consts"
)

type palette struct {
	title   *color.Color
	message *color.Color
	accent  *color.Color
	muted   *color.Color
}

// Terminal prints render models as text screens.
type Terminal struct {
	out     io.Writer
	palette palette
}

func NewTerminal(out io.Writer, colored bool) *Terminal {
	if out == nil {
		out = color.Output
	}
	p := palette{
		title:   color.New(color.FgHiCyan, color.Bold),
		message: color.New(color.FgHiYellow),
		accent:  color.New(color.FgHiGreen),
		muted:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.title, p.message, p.accent, p.muted} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Terminal{out: out, palette: p}
}

func (t *Terminal) Render(m Model) error {
	if m.Screen == consts.StateGame {
		return t.Game(m)
	}
	return t.Setup(m)
}

func (t *Terminal) Setup(m Model) error {
	buf := bytes.Buffer{}
	buf.WriteString(t.palette.title.Sprint("Landlord assistant") + "\n")
	buf.WriteString("start [role]   roles: landlord, landlord_down, landlord_up\n")
	buf.WriteString("start <role> | <hand> | <landlord-cards>\n")
	buf.WriteString(fmt.Sprintf("mode text|click (current: %s)\n", m.Mode))
	t.message(&buf, m)
	return t.write(buf.Bytes())
}

func (t *Terminal) Game(m Model) error {
	buf := bytes.Buffer{}
	buf.WriteString(t.palette.title.Sprintf("Game %s", m.GameID) + "\n")
	buf.WriteString(fmt.Sprintf("%-14s%-14s%-8s\n", "Acting", "You", "Bombs"))
	buf.WriteString(fmt.Sprintf("%-14s%-14s%-8d\n", m.ActingRole, m.UserRole, m.BombNum))
	buf.WriteString(fmt.Sprintf("Hand     : %s\n", m.MyHand))
	buf.WriteString(fmt.Sprintf("Bottom   : %s\n", m.LandlordCards))
	buf.WriteString("Left     : ")
	for _, rc := range m.CardsLeft {
		buf.WriteString(fmt.Sprintf("%s=%d  ", rc.Role, rc.Cards))
	}
	buf.WriteString("\n")
	rec := m.Recommendation
	if m.UseRecommendation {
		rec = t.palette.accent.Sprint(rec) + "  (recommend)"
	}
	buf.WriteString(fmt.Sprintf("Suggest  : %s\n", rec))
	buf.WriteString("History  :\n")
	for _, line := range m.History {
		buf.WriteString("  " + line + "\n")
	}
	if m.TextPanel {
		buf.WriteString(fmt.Sprintf("Text     : %s\n", m.Text))
	} else {
		t.tally(&buf, m)
	}
	t.message(&buf, m)
	return t.write(buf.Bytes())
}

func (t *Terminal) tally(buf *bytes.Buffer, m Model) {
	buf.WriteString("Ranks    : ")
	for _, label := range consts.Ranks {
		buf.WriteString(fmt.Sprintf("%-3s", label))
	}
	buf.WriteString("\nClicks   : ")
	for _, count := range m.Tally {
		cell := fmt.Sprintf("%-3s", strconv.Itoa(count))
		if count == 0 {
			cell = t.palette.muted.Sprint(cell)
		}
		buf.WriteString(cell)
	}
	buf.WriteString(fmt.Sprintf("\nPreview  : %s\n", m.Preview))
}

func (t *Terminal) message(buf *bytes.Buffer, m Model) {
	if m.Message != "" {
		buf.WriteString(t.palette.message.Sprint(m.Message) + "\n")
	}
}

// Line prints a single formatted notice.
func (t *Terminal) Line(msg string) error {
	return t.write([]byte(t.palette.message.Sprint(msg) + "\n"))
}

func (t *Terminal) write(b []byte) error {
	_, err := t.out.Write(b)
	return err
}
