package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"certview/src/internal/citation"
	"certview/src/internal/panel"
)

const minWrap = 20

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	pageStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 2)
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("190")).Padding(0, 1)
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helperStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CODECHECK certificate " + m.config.Title))
	b.WriteString("\n\n")
	b.WriteString(m.pageView())
	b.WriteString("\n")
	if s := m.citationView(); s != "" {
		b.WriteString("\n")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m *model) wrap() int {
	if m.width-4 < minWrap {
		return minWrap
	}
	return m.width - 4
}

func (m *model) pageView() string {
	if m.viewer == nil {
		return pageStyle.Render(m.page.src)
	}
	auto := "auto-advance on"
	if !m.viewer.AutoAdvance() {
		auto = "auto-advance off"
	}
	body := fmt.Sprintf("Page %d/%d  %s", m.page.index+1, m.viewer.Len(), m.page.src)
	lines := []string{
		pageStyle.Render(body),
		helperStyle.Render("← " + m.page.prev),
		helperStyle.Render("→ " + m.page.next),
		helperStyle.Render(auto),
	}
	return strings.Join(lines, "\n")
}

func (m *model) citationView() string {
	snap := m.pview.snapshot()
	state := m.panel.State()
	if state == panel.Hidden || snap.hidden {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Cite this certificate"))
	b.WriteString("\n")
	switch {
	case m.loading || state == panel.Loading || state == panel.Idle:
		b.WriteString(fmt.Sprintf("%s Loading citation…", m.spinner.View()))
	case state == panel.Error:
		b.WriteString(errorStyle.Render(wordwrap.String(snap.previewErr, m.wrap())))
	default:
		b.WriteString(m.styleTabs())
		b.WriteString("\n\n")
		b.WriteString(wordwrap.String(snap.preview, m.wrap()))
		if snap.formatErr != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(snap.formatErr))
		}
		if snap.copied {
			b.WriteString("\n")
			b.WriteString(successStyle.Render("Copied!"))
		}
		if snap.copyPrompt != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(snap.copyPrompt))
		}
	}
	return b.String()
}

func (m *model) styleTabs() string {
	current := m.panel.Style()
	var tabs []string
	for i, s := range citation.Styles() {
		label := fmt.Sprintf("%d %s", i+1, s.Label())
		if s == current {
			tabs = append(tabs, activeStyle.Render(label))
			continue
		}
		tabs = append(tabs, inactiveStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *model) helpView() string {
	var parts []string
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helperStyle.Render(wordwrap.String(strings.Join(parts, " • "), m.wrap()))
}
