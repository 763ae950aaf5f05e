// shared/layout.go
package shared

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gas/fancy-shuffle/shared/block"
)

// RenderDashboard compone la vista de todos los bloques en un solo string.
// Los bloques "left" y "right" consecutivos forman dos columnas; el resto
// ocupa todo el ancho.
func RenderDashboard(
	width int,
	blocks []block.Block,
	focusIndex int,
	normalStyle, focusStyle lipgloss.Style,
) string {
	if width == 0 {
		return "Initializing..."
	}

	var finalLayout []string
	var leftColumnViews []string
	var rightColumnViews []string

	processPendingColumns := func() {
		if len(leftColumnViews) > 0 || len(rightColumnViews) > 0 {
			leftColumn := lipgloss.JoinVertical(lipgloss.Left, leftColumnViews...)
			rightColumn := lipgloss.JoinVertical(lipgloss.Left, rightColumnViews...)
			finalLayout = append(finalLayout, lipgloss.JoinHorizontal(lipgloss.Top, leftColumn, rightColumn))

			// Limpia los slices para la siguiente sección de columnas
			leftColumnViews = nil
			rightColumnViews = nil
		}
	}

	for i, b := range blocks {
		borderStyle := normalStyle
		if i == focusIndex {
			borderStyle = focusStyle
		}

		switch position := b.Position(); position {
		case "left", "right":
			// Mitad de pantalla, menos bordes y padding.
			renderedBlock := borderStyle.Width((width / 2) - 4).Render(b.View())
			if position == "left" {
				leftColumnViews = append(leftColumnViews, renderedBlock)
			} else {
				rightColumnViews = append(rightColumnViews, renderedBlock)
			}
		default:
			processPendingColumns()
			finalLayout = append(finalLayout, borderStyle.Width(width-2).Render(b.View()))
		}
	}

	processPendingColumns()
	return lipgloss.JoinVertical(lipgloss.Left, finalLayout...)
}
