package cli

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dodalovic/mandelbrot/pkg/escape"
	"github.com/dodalovic/mandelbrot/pkg/view"
)

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Pan and zoom an ASCII preview of the set in your terminal",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			vp, err := a.cfg.Viewport()
			if err != nil {
				return err
			}
			m := exploreModel{
				home: vp,
				vp:   vp,
				iter: escape.NewIterator(exploreIterations, escape.DefaultBailout),
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

const (
	exploreIterations = 256

	// panStep is the fraction of the viewport moved per keypress.
	panStep = 0.1
)

// ramp orders glyphs by escape speed; interior points get the densest.
const ramp = " .,:;ox%#"

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("62")).
	Padding(0, 1)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("243"))

type exploreModel struct {
	home view.Viewport
	vp   view.Viewport
	iter escape.Iterator

	cols int
	rows int
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		// Two lines reserved for status and help.
		m.rows = msg.Height - 2

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.vp = m.vp.Pan(0, panStep)
		case "down", "j":
			m.vp = m.vp.Pan(0, -panStep)
		case "left", "h":
			m.vp = m.vp.Pan(-panStep, 0)
		case "right", "l":
			m.vp = m.vp.Pan(panStep, 0)
		case "+", "=":
			m.vp = m.vp.Zoom(0.75)
		case "-", "_":
			m.vp = m.vp.Zoom(2)
		case "r":
			m.vp = m.home
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	if m.cols < 4 || m.rows < 2 {
		return "terminal too small"
	}

	var b strings.Builder
	b.Grow((m.cols + 1) * (m.rows + 2))

	// A terminal cell is roughly twice as tall as it is wide, so fit the
	// viewport as if each cell were a 1×2 pixel block.
	fitted := m.vp.FitAspect(m.cols, 2*m.rows)
	s := view.NewSampler(fitted, m.cols, m.rows)

	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			res := m.iter.Iterate(s.At(x, y))
			b.WriteByte(glyph(res, m.iter.Limit))
		}
		b.WriteByte('\n')
	}

	b.WriteString(statusStyle.Render(m.status(fitted)))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("arrows pan · +/- zoom · r reset · q quit"))
	return b.String()
}

// glyph picks a density character for one sample.
func glyph(res escape.Result, limit int) byte {
	if !res.Escaped {
		return ramp[len(ramp)-1]
	}
	i := int(res.Smooth / float64(limit) * float64(len(ramp)-1) * 4)
	if i >= len(ramp)-1 {
		i = len(ramp) - 2
	}
	return ramp[i]
}

// status shows the fitted region and the equivalent server query.
func (m exploreModel) status(vp view.Viewport) string {
	q := url.Values{}
	q.Set("top", fmt.Sprintf("%g", vp.Top))
	q.Set("left", fmt.Sprintf("%g", vp.Left))
	q.Set("bottom", fmt.Sprintf("%g", vp.Bottom))
	q.Set("right", fmt.Sprintf("%g", vp.Right))
	return fmt.Sprintf("%s · /mandelbrot?%s", vp.String(), q.Encode())
}
