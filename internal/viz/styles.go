package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitgrid/internal/dynamo"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	OrderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	ChaosStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4466"))
)

// Grid cells run from -1 to 1; the colour ramp goes cold → neutral → hot.
const (
	coldColor    = "#2255ff"
	neutralColor = "#1a1a22"
	hotColor     = "#ff5522"
)

// LabelBadge renders a label in its regime colour.
func LabelBadge(label int) string {
	name := dynamo.LabelName(label)
	switch label {
	case dynamo.LabelOrder:
		return OrderStyle.Render(name)
	case dynamo.LabelChaos:
		return ChaosStyle.Render(name)
	default:
		return Subtle.Render(name)
	}
}

// CellColor maps v in [-1, 1] onto the ramp.
func CellColor(v float64) lipgloss.Color {
	v = max(-1, min(1, v))
	from, to := neutralColor, hotColor
	if v < 0 {
		to, v = coldColor, -v
	}
	return lipgloss.Color(lerpHex(from, to, v))
}

func Separator(width int) string {
	if width < 1 {
		return ""
	}
	return Subtle.Render(strings.Repeat("─", width))
}

func lerpHex(from, to string, t float64) string {
	sr, sg, sb := parseHex(from)
	er, eg, eb := parseHex(to)
	r := int(float64(sr) + t*float64(er-sr))
	g := int(float64(sg) + t*float64(eg-sg))
	b := int(float64(sb) + t*float64(eb-sb))
	return hexColor(r, g, b)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(255, v))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
