// Package masterlist renders the authorized master identities for the
// terminal.
package masterlist

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/confbot/internal/domain"
)

type RenderOptions struct {
	// Path of the master list file shown in the header.
	Path string
}

func Render(ids []domain.Identity, opts RenderOptions) string {
	return renderView(ids, opts, newStyles())
}

func renderView(ids []domain.Identity, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Authorized masters"),
		s.header.Render(fmt.Sprintf("source: %s · entries: %d", opts.Path, len(ids))),
	}

	if len(ids) == 0 {
		lines = append(lines, s.empty.Render("No master identities registered."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, id := range ids {
		lines = append(lines, s.entry.Render(fmt.Sprintf("%3d  %s", i+1, id)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
