package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/heatsim/internal/heat"
)

const (
	frameInterval = time.Second / 30
	maxSpeed      = 64
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Player replays a solved field one layer per frame.
type Player struct {
	title   string
	grid    heat.Grid
	rows    [][]float64
	lo, hi  float64
	step    int
	speed   int
	playing bool
	width   int
	height  int
}

func NewPlayer(title string, f *heat.Field, g heat.Grid) Player {
	rows := f.Rows()
	lo, hi := Range(rows)
	return Player{
		title:   title,
		grid:    g,
		rows:    rows,
		lo:      lo,
		hi:      hi,
		speed:   1,
		playing: true,
		width:   80,
		height:  24,
	}
}

func (p Player) Step() int     { return p.step }
func (p Player) Playing() bool { return p.playing }
func (p Player) Speed() int    { return p.speed }

func (p Player) Init() tea.Cmd { return tick() }

func (p Player) last() int { return len(p.rows) - 1 }

func (p *Player) seek(n int) { p.step = min(max(n, 0), p.last()) }

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ", "p":
			if !p.playing && p.step == p.last() {
				p.step = 0
			}
			p.playing = !p.playing
		case "right", "l":
			p.playing = false
			p.seek(p.step + 1)
		case "left", "h":
			p.playing = false
			p.seek(p.step - 1)
		case "+", "=":
			p.speed = min(p.speed*2, maxSpeed)
		case "-", "_":
			p.speed = max(p.speed/2, 1)
		case "g", "home":
			p.seek(0)
		case "G", "end":
			p.seek(p.last())
		}
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	case TickMsg:
		if p.playing {
			p.seek(p.step + p.speed)
			if p.step == p.last() {
				p.playing = false
			}
		}
		return p, tick()
	}
	return p, nil
}

func (p Player) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(p.title))
	b.WriteString("\n")

	status := StatusPaused.Render("PAUSED")
	if p.playing {
		status = StatusRunning.Render("PLAYING")
	}
	fmt.Fprintf(&b, "%s  %s  %s  %s  %s\n",
		status,
		Metric("layer", fmt.Sprintf("%d/%d", p.step, p.last())),
		Metric("t", fmt.Sprintf("%.5g", p.grid.TimeAt(p.step))),
		Metric("r", fmt.Sprintf("%.4g", p.grid.R())),
		Metric("speed", fmt.Sprintf("%dx", p.speed)),
	)

	w := max(p.width-4, 10)
	h := max(p.height-10, 4)
	row := p.rows[p.step]

	c := NewCanvas(w, h)
	c.Profile(row, p.lo, p.hi)
	b.WriteString(Panel.Render(strings.TrimRight(c.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(" " + HeatStrip(row, p.lo, p.hi, w))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s  %s  %s\n",
		Metric("min", fmt.Sprintf("%.4g", p.lo)),
		Metric("max", fmt.Sprintf("%.4g", heat.Layer(row).Max())),
		Metric("range max", fmt.Sprintf("%.4g", p.hi)),
	)
	b.WriteString(KeyHint.Render("space play/pause · ←/→ step · +/- speed · g/G first/last · q quit"))
	return b.String()
}
