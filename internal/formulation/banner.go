package formulation

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Version of the problem layout written by this package.
const Version = "1.4"

var (
	bannerStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("86")).Padding(0, 2)
	bannerTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	bannerDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Banner writes the program banner to w. It is never printed implicitly.
func Banner(w io.Writer) error {
	title := bannerTitle.Render("gaitnlp - trajectory optimization for walking robots")
	sub := bannerDim.Render("problem layout v" + Version)
	_, err := fmt.Fprintln(w, bannerStyle.Render(title+"\n"+sub))
	return err
}
