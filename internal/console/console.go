// Package console renders engine messages on a terminal. It implements the
// Recipient and Broadcaster contracts of the pack package for hosts that
// have no other audience than the operator.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/MKhiriev/go-pack-sync/models"
)

// Console writes one styled line per message to out.
type Console struct {
	mu  sync.Mutex
	out io.Writer

	styles    map[models.Tone]lipgloss.Style
	plain     lipgloss.Style
	scopeMark lipgloss.Style
}

// New returns a Console writing to out. Colors are used only when out is a
// terminal that supports them and NO_COLOR is unset.
func New(out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	if !colorful(out) {
		r.SetColorProfile(termenv.Ascii)
	}
	return newConsole(out, r)
}

// NewWithProfile returns a Console rendering with the given color profile
// regardless of what out is.
func NewWithProfile(out io.Writer, profile termenv.Profile) *Console {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(profile)
	return newConsole(out, r)
}

func newConsole(out io.Writer, r *lipgloss.Renderer) *Console {
	return &Console{
		out:       out,
		styles:    newStyles(r),
		plain:     r.NewStyle(),
		scopeMark: r.NewStyle().Faint(true),
	}
}

// Send writes msg to the console.
func (c *Console) Send(msg models.Message) {
	c.println(c.style(msg.Tone).Render(msg.Text))
}

// Broadcast writes msg prefixed with the scope it was addressed to.
func (c *Console) Broadcast(scope string, msg models.Message) {
	label := scope
	if label == "" {
		label = "all"
	}
	c.println(c.scopeMark.Render("["+label+"]") + " " + c.style(msg.Tone).Render(msg.Text))
}

// colorful reports whether out is a color-capable terminal.
func colorful(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) style(tone models.Tone) lipgloss.Style {
	if s, ok := c.styles[tone]; ok {
		return s
	}
	return c.plain
}

func (c *Console) println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintln(c.out, line)
}
