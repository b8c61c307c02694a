package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bunbaker/bunbakery/internal/customer"
	"github.com/bunbaker/bunbakery/internal/engine"
	"github.com/bunbaker/bunbakery/internal/station"
)

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString(RenderBanner())
	b.WriteByte('\n')
	b.WriteString(titleStyle.Render("  Bun Bakery"))
	b.WriteString(secondaryStyle.Render("  — a burger kitchen"))
	b.WriteString("\n\n")
	b.WriteString(primaryStyle.Render(fmt.Sprintf("  High score: %d", m.eng.HighScore())))
	b.WriteString("\n")
	b.WriteString(moneyStyle.Render(fmt.Sprintf("  Bank: $%d", m.eng.Money())))
	b.WriteString("\n\n")

	for _, line := range []string{
		"- Build burgers from the shelf ingredients",
		"- Use the grill and cutting board to prepare them",
		"- Follow customer orders carefully",
		"- Earn money for upgrades and new ingredients!",
	} {
		b.WriteString(secondaryStyle.Render("  " + line))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(goodStyle.Render("  [p] play   [s] shop   [q] quit"))
	return b.String()
}

func (m model) viewTutorial() string {
	step, index, total := m.eng.Tutorial()

	var b strings.Builder
	b.WriteString(titleStyle.Render(step.Title))
	b.WriteString("\n\n")
	for _, line := range strings.Split(step.Body, "\n") {
		b.WriteString(primaryStyle.Render(line))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("step %d of %d — enter to continue", index+1, total)))

	return "\n" + cardStyle.Render(b.String()) + "\n"
}

func (m model) viewKitchen() string {
	now := m.clk.Now()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	left := m.renderOrderCard(now)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStation("Grill", station.Thermal, now),
		m.renderStation("Cutting board", station.Cutting, now),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	b.WriteString("\n\n")

	b.WriteString(m.renderShelf())
	b.WriteString("\n")
	b.WriteString(m.renderStack())
	b.WriteString("\n")

	for _, bonus := range m.eng.Bonuses() {
		b.WriteString(goodStyle.Render("  " + bonus.Text))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(secondaryStyle.Render("  [1-9] shelf  [g/t] grill put/take  [c/v] board put/take  [enter] stack  [x] discard  [q] quit"))
	return b.String()
}

func (m model) renderHeader() string {
	line := fmt.Sprintf(" Score %d   Level %d   $%d ", m.eng.Score(), m.eng.Level(), m.eng.Money())
	header := headerStyle.Render(line)

	if msg := m.eng.Message(); msg != nil {
		style := primaryStyle
		switch msg.Tone {
		case engine.ToneGood:
			style = goodStyle
		case engine.ToneBad:
			style = badStyle
		}
		header += "  " + style.Render(msg.Text)
	}
	return header
}

func (m model) renderOrderCard(now time.Time) string {
	cust := m.eng.Customer()
	if cust == nil {
		return cardStyle.Render(secondaryStyle.Render("waiting for a customer"))
	}

	var b strings.Builder
	o := cust.Order()

	b.WriteString(titleStyle.Render("Order"))
	b.WriteByte('\n')
	for i := len(o.Items) - 1; i >= 0; i-- {
		b.WriteString(primaryStyle.Render("  " + pretty(o.Items[i].Name())))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString(secondaryStyle.Render(fmt.Sprintf("time %s  ", fmtSeconds(o.Remaining(now).Seconds()))))
	b.WriteString(m.orderBar.ViewAs(o.Fraction(now)))
	b.WriteByte('\n')

	mood := primaryStyle
	switch cust.Mood() {
	case customer.MoodHappy:
		mood = goodStyle
	case customer.MoodAngry:
		mood = badStyle
	}
	b.WriteString(secondaryStyle.Render("customer "))
	b.WriteString(mood.Render(cust.Mood().String()))
	b.WriteString("  ")
	patienceLeft := 1 - cust.Waiting()/cust.Patience()
	if patienceLeft < 0 {
		patienceLeft = 0
	}
	b.WriteString(m.moodBar.ViewAs(patienceLeft))

	return cardStyle.Render(b.String())
}

func (m model) renderStation(label string, k station.Kind, now time.Time) string {
	st := m.eng.Grill()
	if k == station.Cutting {
		st = m.eng.Board()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(label))
	b.WriteByte('\n')

	switch {
	case m.eng.Ready(k) != nil:
		b.WriteString(goodStyle.Render("ready: " + pretty(m.eng.Ready(k).ID.Name())))
	case st.Occupied():
		prog := st.Progress(now)
		b.WriteString(primaryStyle.Render(pretty(st.Occupant().ID.Name())))
		b.WriteString("  ")
		shown := prog
		if shown > 1 {
			shown = 1
		}
		b.WriteString(m.stationBar.ViewAs(shown))
		if k == station.Thermal && prog > 1.0 {
			b.WriteString("  " + overdoneStyle.Render("OVERCOOKING!"))
		}
	default:
		b.WriteString(secondaryStyle.Render("empty"))
	}
	return cardStyle.Render(b.String())
}

func (m model) renderShelf() string {
	var parts []string
	for i, c := range m.eng.Shelf() {
		parts = append(parts, secondaryStyle.Render(fmt.Sprintf("[%d]", i+1))+primaryStyle.Render(" "+pretty(c.String())))
	}

	line := "  Shelf: " + strings.Join(parts, "   ")
	if held := m.eng.Held(); held != nil {
		line += "\n  " + moneyStyle.Render("In hand: "+pretty(held.ID.Name()))
	}
	return line
}

func (m model) renderStack() string {
	stack := m.eng.Stack()
	if len(stack) == 0 {
		return secondaryStyle.Render("  Stack: (empty)")
	}

	var b strings.Builder
	b.WriteString(primaryStyle.Render("  Stack:"))
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte('\n')
		b.WriteString(primaryStyle.Render("    " + pretty(stack[i].ID.Name())))
	}
	return b.String()
}

func (m model) viewShop() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  Shop"))
	b.WriteString("\n\n")
	b.WriteString(moneyStyle.Render(fmt.Sprintf("  Money: $%d", m.eng.Money())))
	b.WriteString("\n\n")

	for i, item := range m.eng.ShopItems() {
		style := primaryStyle
		if item.Price > m.eng.Money() {
			style = secondaryStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("  [%d] %-28s $%d", i+1, item.Name, item.Price)))
		b.WriteByte('\n')
		b.WriteString(secondaryStyle.Render("      " + item.Description))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(goodStyle.Render("  [1-9] buy   [b] back   [q] quit"))
	return b.String()
}

func (m model) viewGameOver() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(badStyle.Render("  GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(primaryStyle.Render(fmt.Sprintf("  Final score: %d", m.eng.Score())))
	b.WriteByte('\n')
	b.WriteString(primaryStyle.Render(fmt.Sprintf("  High score:  %d", m.eng.HighScore())))
	b.WriteByte('\n')
	b.WriteString(moneyStyle.Render(fmt.Sprintf("  Bank: $%d", m.eng.Money())))
	b.WriteString("\n\n")
	b.WriteString(goodStyle.Render("  [r] retry   [s] shop   [q] quit"))
	return b.String()
}

// pretty turns an ingredient key like "patty_overcooked" into
// "patty (overcooked)".
func pretty(name string) string {
	base, suffix, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	// Bun names keep their position word; only a trailing state reads
	// as a qualifier.
	switch name {
	case "bun_top", "bun_bottom":
		return strings.ReplaceAll(name, "_", " ")
	}
	if strings.HasPrefix(name, "bun_") {
		rest := strings.TrimPrefix(name, "bun_")
		pos, state, ok := strings.Cut(rest, "_")
		if ok {
			return "bun " + pos + " (" + state + ")"
		}
	}
	return base + " (" + suffix + ")"
}

func fmtSeconds(s float64) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d", int(s)/60, int(s)%60)
}
