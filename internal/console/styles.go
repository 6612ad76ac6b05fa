package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-pack-sync/models"
)

func newStyles(r *lipgloss.Renderer) map[models.Tone]lipgloss.Style {
	return map[models.Tone]lipgloss.Style{
		models.Notice:   r.NewStyle().Foreground(lipgloss.Color("6")),
		models.Progress: r.NewStyle().Faint(true),
		models.Success:  r.NewStyle().Foreground(lipgloss.Color("2")),
		models.Warning:  r.NewStyle().Foreground(lipgloss.Color("3")),
		models.Failure:  r.NewStyle().Foreground(lipgloss.Color("1")),
		models.Fatal:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}
