package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/waypoint/pkg/grid"
	"github.com/matzehuels/waypoint/pkg/search"
)

var (
	tuiHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	tuiStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	tuiFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

const (
	minDelay = 10 * time.Millisecond
	maxDelay = 2 * time.Second
)

// =============================================================================
// ExploreModel - Step through a path search on a grid
// =============================================================================

// ExploreModel is the bubbletea model that replays the expansion order of a
// grid path search one tile at a time.
type ExploreModel struct {
	Map   *grid.Map
	Trace []*grid.Tile
	Path  search.Path[*grid.Tile]

	Step    int // tiles of Trace shown, 0 to len(Trace)
	Playing bool
	Delay   time.Duration
	Plain   bool // no colors
}

// NewExploreModel creates a model for path, which must have been found with
// search.WithTrace.
func NewExploreModel(m *grid.Map, path search.Path[*grid.Tile], delay time.Duration) ExploreModel {
	return ExploreModel{
		Map:     m,
		Trace:   path.Trace,
		Path:    path,
		Playing: true,
		Delay:   max(delay, minDelay),
	}
}

type tickMsg time.Time

func (m ExploreModel) tick() tea.Cmd {
	return tea.Tick(m.Delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ExploreModel) Init() tea.Cmd {
	if m.Playing {
		return m.tick()
	}
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			m.Playing = false
			m.Step = min(m.Step+1, len(m.Trace))
		case "left", "h", "p":
			m.Playing = false
			m.Step = max(m.Step-1, 0)
		case "home", "g":
			m.Playing = false
			m.Step = 0
		case "end", "G":
			m.Playing = false
			m.Step = len(m.Trace)
		case "+", "=":
			m.Delay = max(m.Delay/2, minDelay)
		case "-":
			m.Delay = min(m.Delay*2, maxDelay)
		case " ", "space":
			m.Playing = !m.Playing
			if m.Playing {
				if m.Step == len(m.Trace) {
					m.Step = 0
				}
				return m, m.tick()
			}
		}
	case tickMsg:
		if !m.Playing {
			return m, nil
		}
		m.Step++
		if m.Step >= len(m.Trace) {
			m.Step = len(m.Trace)
			m.Playing = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

// Done reports whether the whole trace is shown.
func (m ExploreModel) Done() bool { return m.Step >= len(m.Trace) }

// Frame draws the map at the current step without help or status lines.
func (m ExploreModel) Frame() string {
	layers := []grid.Layer{{Tiles: m.Trace[:max(m.Step-1, 0)], Mark: markVisited}}
	if m.Done() && m.Path.Outcome == search.Found {
		layers = append(layers, grid.Layer{Tiles: m.Path.Nodes, Mark: markPath})
	} else if m.Step > 0 {
		layers = append(layers, grid.Layer{Tiles: m.Trace[m.Step-1 : m.Step], Mark: markActive})
	}
	drawn := m.Map.Draw(layers...)
	if m.Plain {
		return drawn
	}
	return styleMap(drawn)
}

func (m ExploreModel) status() string {
	switch {
	case m.Step == 0:
		return fmt.Sprintf("step 0/%d", len(m.Trace))
	case m.Done():
		s := fmt.Sprintf("step %d/%d · %s", m.Step, len(m.Trace), m.Path.Outcome)
		if m.Path.Outcome == search.Found {
			s += " · cost " + ftoa(m.Path.Cost)
		}
		return s
	default:
		return fmt.Sprintf("step %d/%d · expanding %s", m.Step, len(m.Trace), m.Trace[m.Step-1])
	}
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Map.Name))
	b.WriteString("\n")
	b.WriteString(tuiHelpStyle.Render("←/→ step  space play/pause  +/- speed  g/G first/last  q quit"))
	b.WriteString("\n\n")
	b.WriteString(tuiFrameStyle.Render(m.Frame()))
	b.WriteString("\n")

	playing := "paused"
	if m.Playing {
		playing = "playing " + m.Delay.String()
	}
	b.WriteString(tuiStatusStyle.Render(m.status() + " · " + playing))
	b.WriteString("\n")
	return b.String()
}
