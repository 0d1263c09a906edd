package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗   ██╗██╗███████╗███╗   ███╗ █████╗ ███████╗████████╗███████╗██████╗
██╔═══██╗██║   ██║██║╚══███╔╝████╗ ████║██╔══██╗██╔════╝╚══██╔══╝██╔════╝██╔══██╗
██║   ██║██║   ██║██║  ███╔╝ ██╔████╔██║███████║███████╗   ██║   █████╗  ██████╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝  ██║╚██╔╝██║██╔══██║╚════██║   ██║   ██╔══╝  ██╔══██╗
╚██████╔╝╚██████╔╝██║███████╗██║ ╚═╝ ██║██║  ██║███████║   ██║   ███████╗██║  ██║
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝`

const bannerCompact = "Q U I Z M A S T E R"

// RenderBanner returns the QUIZMASTER banner styled in the primary color.
// Terminals narrower than the art get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
