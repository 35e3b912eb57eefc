package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/adfmd/internal/adf"
	"github.com/gubarz/adfmd/internal/config"
	"github.com/gubarz/adfmd/internal/render"
)

// ============================================================================
// Viewer Model
// ============================================================================

type pane int

const (
	paneMarkdown pane = iota
	paneOutline
)

// RenderFunc turns Markdown into display text for a given width.
type RenderFunc func(markdown string, width int) (string, error)

// Clipboard receives the Markdown when the user copies it.
type Clipboard interface {
	Copy(text string) error
}

// chromeLines is the header and status line around the panes.
const chromeLines = 2

// borderSize is the space a rounded border takes on each axis.
const borderSize = 2

type viewerModel struct {
	title    string
	markdown string
	outline  string

	render    RenderFunc
	clipboard Clipboard

	left  viewport.Model
	right viewport.Model
	focus pane
	raw   bool

	width  int
	height int
	status string
	ready  bool
}

func newViewerModel(title, markdown string, doc *adf.Document, renderFn RenderFunc, clip Clipboard) viewerModel {
	return viewerModel{
		title:     title,
		markdown:  markdown,
		outline:   Outline(doc),
		render:    renderFn,
		clipboard: clip,
		status:    "tab switch pane • r raw • y copy • q quit",
	}
}

// Init implements tea.Model
func (m viewerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "tab", "shift+tab":
			if m.focus == paneMarkdown {
				m.focus = paneOutline
			} else {
				m.focus = paneMarkdown
			}
			return m, nil
		case "r":
			m.raw = !m.raw
			m.refreshMarkdown()
			return m, nil
		case "y":
			m.copyMarkdown()
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == paneMarkdown {
		m.left, cmd = m.left.Update(msg)
	} else {
		m.right, cmd = m.right.Update(msg)
	}
	return m, cmd
}

// layout sizes both viewports for the current window.
func (m *viewerModel) layout() {
	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth
	height := max(m.height-chromeLines-borderSize, 1)

	if !m.ready {
		m.left = viewport.New(max(leftWidth-borderSize, 1), height)
		m.right = viewport.New(max(rightWidth-borderSize, 1), height)
		m.ready = true
	} else {
		m.left.Width = max(leftWidth-borderSize, 1)
		m.left.Height = height
		m.right.Width = max(rightWidth-borderSize, 1)
		m.right.Height = height
	}

	m.refreshMarkdown()
	m.right.SetContent(m.outline)
}

func (m *viewerModel) refreshMarkdown() {
	if !m.ready {
		return
	}
	if m.raw || m.render == nil {
		m.left.SetContent(m.markdown)
		return
	}

	out, err := m.render(m.markdown, m.left.Width)
	if err != nil {
		m.status = "render failed: " + err.Error()
		m.left.SetContent(m.markdown)
		return
	}
	m.left.SetContent(out)
}

func (m *viewerModel) copyMarkdown() {
	if m.clipboard == nil {
		m.status = "clipboard unavailable"
		return
	}
	if err := m.clipboard.Copy(m.markdown); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("copied %d bytes", len(m.markdown))
}

// View implements tea.Model
func (m viewerModel) View() string {
	if !m.ready {
		return "loading…"
	}

	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(styles.Title.Render(m.title))
	b.WriteByte('\n')
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.PaneStyle(m.focus == paneMarkdown).Render(m.left.View()),
		styles.PaneStyle(m.focus == paneOutline).Render(m.right.View()),
	))
	b.WriteByte('\n')
	b.WriteString(styles.Status.Render(fmt.Sprintf("%3.f%% • %s", m.left.ScrollPercent()*100, m.status)))

	return b.String()
}

// ============================================================================
// Entry Point
// ============================================================================

// Run opens the viewer for a document and its Markdown form.
func Run(title, markdown string, doc *adf.Document, clip Clipboard) error {
	RefreshStyles()

	style := config.GetGlamourStyle()
	wrap := config.GetWrap()
	renderFn := func(md string, width int) (string, error) {
		if wrap > 0 && wrap < width {
			width = wrap
		}
		return render.Terminal(md, style, width)
	}

	m := newViewerModel(title, markdown, doc, renderFn, clip)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
