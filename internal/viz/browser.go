package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
)

// Item is one dataset entry as shown by the Browser. Orbit is optional;
// entries ingested from files usually have none.
type Item struct {
	Name  string
	Grid  grid.Grid
	Label int
	Orbit dynamo.Trajectory
}

const (
	viewGrid = iota
	viewOrbit
)

// Browser pages through a dataset one entry at a time.
type Browser struct {
	title         string
	items         []Item
	cursor        int
	view          int
	width, height int
	color         bool
}

func NewBrowser(title string, items []Item) Browser {
	return Browser{title: title, items: items, width: 80, height: 24, color: true}
}

// WithColor toggles lipgloss colouring of the heatmap.
func (b Browser) WithColor(on bool) Browser {
	b.color = on
	return b
}

func (b Browser) Cursor() int { return b.cursor }

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return b, tea.Quit
	case "left", "h", "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "right", "l", "down", "j":
		if b.cursor < len(b.items)-1 {
			b.cursor++
		}
	case "g", "home":
		b.cursor = 0
	case "G", "end":
		b.cursor = max(0, len(b.items)-1)
	case "tab":
		if b.view == viewGrid && b.current().Orbit != nil {
			b.view = viewOrbit
		} else {
			b.view = viewGrid
		}
	}
	return b, nil
}

func (b Browser) current() Item {
	if len(b.items) == 0 {
		return Item{}
	}
	return b.items[b.cursor]
}

func (b Browser) View() string {
	var s strings.Builder
	s.WriteString(Title.Render(b.title) + "\n")

	if len(b.items) == 0 {
		s.WriteString(Subtle.Render("empty dataset") + "\n")
		s.WriteString(KeyHint.Render("q quit") + "\n")
		return s.String()
	}

	it := b.current()
	s.WriteString(fmt.Sprintf("%s %s  %s %s  %s\n",
		MetricLabel.Render("entry"), MetricValue.Render(fmt.Sprintf("%d/%d", b.cursor+1, len(b.items))),
		MetricLabel.Render("label"), LabelBadge(it.Label),
		Subtle.Render(it.Name)))

	var body string
	if b.view == viewOrbit && it.Orbit != nil {
		body = PhasePortrait(it.Orbit, max(10, b.width/2), max(5, b.height-8))
	} else {
		body = Heatmap(it.Grid, b.color)
	}
	s.WriteString(Panel.Render(strings.TrimRight(body, "\n")) + "\n")

	lo, hi := it.Grid.Range()
	s.WriteString(MetricLabel.Render("range ") + MetricValue.Render(fmt.Sprintf("[%.3f, %.3f]", lo, hi)) + "\n")
	s.WriteString(KeyHint.Render("←/→ move  tab orbit/grid  q quit") + "\n")
	return s.String()
}
