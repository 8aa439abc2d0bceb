package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ormasoftchile/figmatest/pkg/render"
	"github.com/ormasoftchile/figmatest/pkg/service"
	"github.com/ormasoftchile/figmatest/pkg/steps"
)

// Backend generates the content shown in the browser.
type Backend interface {
	Generate(ctx context.Context, req service.Request) (*service.Response, error)
}

type pane int

const (
	paneElements pane = iota
	paneSteps
)

// resultMsg delivers a finished generation.
type resultMsg struct {
	resp *service.Response
	err  error
}

// Model is the Bubble Tea model for figmatest browse.
type Model struct {
	ctx     context.Context
	backend Backend
	req     service.Request

	table   table.Model
	steps   viewport.Model
	spinner spinner.Model
	help    help.Model

	resp    *service.Response
	err     error
	loading bool
	focus   pane

	width  int
	height int
}

// NewModel creates a browser that generates req through backend.
func NewModel(ctx context.Context, backend Backend, req service.Request) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	t := table.New(
		table.WithColumns(elementColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return Model{
		ctx:     ctx,
		backend: backend,
		req:     req,
		table:   t,
		steps:   viewport.New(80, 10),
		spinner: sp,
		help:    help.New(),
		loading: true,
	}
}

// Run starts the browser on the alternate screen and blocks until it exits.
func Run(ctx context.Context, backend Backend, req service.Request) error {
	p := tea.NewProgram(NewModel(ctx, backend, req), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init starts the spinner and the first generation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.generate())
}

func (m Model) generate() tea.Cmd {
	ctx, backend, req := m.ctx, m.backend, m.req
	return func() tea.Msg {
		resp, err := backend.Generate(ctx, req)
		return resultMsg{resp: resp, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Focus):
			m.toggleFocus()
			return m, nil
		case key.Matches(msg, keys.Regenerate):
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.generate())
		}
		var cmd tea.Cmd
		if m.focus == paneElements {
			m.table, cmd = m.table.Update(msg)
		} else {
			m.steps, cmd = m.steps.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.loading = false
		m.resp, m.err = msg.resp, msg.err
		if msg.err == nil && msg.resp != nil {
			m.table.SetRows(elementRows(msg.resp))
			m.steps.SetContent(stepsContent(msg.resp.TestCases))
			m.steps.GotoTop()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == paneElements {
		m.focus = paneSteps
		m.table.Blur()
	} else {
		m.focus = paneElements
		m.table.Focus()
	}
}

// layout splits the screen between the element table and the steps pane.
func (m *Model) layout() {
	contentW := m.width - 4 // border padding
	if contentW < 20 {
		contentW = 20
	}
	// header, help, two panel titles and four border rows
	avail := m.height - 8
	if avail < 4 {
		avail = 4
	}
	tableH := avail / 2
	stepsH := avail - tableH

	m.table.SetColumns(elementColumns(contentW))
	m.table.SetHeight(tableH)
	m.steps.Width = contentW
	m.steps.Height = stepsH
}

func elementColumns(width int) []table.Column {
	fixed := 10 + 9 + 8 // type, coords, interactive
	rest := width - fixed - 8
	if rest < 20 {
		rest = 20
	}
	return []table.Column{
		{Title: "Name", Width: rest * 3 / 5},
		{Title: "Type", Width: 10},
		{Title: "Screen", Width: rest * 2 / 5},
		{Title: "Coords", Width: 9},
		{Title: "Tap", Width: 8},
	}
}

func elementRows(resp *service.Response) []table.Row {
	rows := make([]table.Row, 0, len(resp.Elements))
	for _, e := range resp.Elements {
		tap := ""
		if e.HasInteraction {
			tap = "✓"
		}
		rows = append(rows, table.Row{e.Name, e.Type, e.Screen, e.Coordinates.String(), tap})
	}
	return rows
}

func stepsContent(text string) string {
	lines := steps.Lines(text)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%2d. %s", i+1, render.StepLine(l))
	}
	return strings.Join(out, "\n")
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "figmatest"
	if m.resp != nil {
		title += " · " + m.resp.FileName
	}
	mode := m.req.Mode
	if mode == "" {
		mode = "fixed"
	}
	b.WriteString(headerStyle.Render(title) + " " + modeBadgeStyle.Render(mode) + "\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("\n %s generating test steps for %s…\n", m.spinner.View(), m.req.FileKey))
	case m.err != nil:
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	default:
		total := 0
		if m.resp != nil {
			total = m.resp.TotalElements
		}
		b.WriteString(m.panel(fmt.Sprintf("Elements (%d)", total), m.table.View(), m.focus == paneElements) + "\n")
		b.WriteString(m.panel("Test steps", m.steps.View(), m.focus == paneSteps) + "\n")
	}

	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) panel(title, content string, focused bool) string {
	style := panelBorder
	if focused {
		style = panelBorderFocused
	}
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(panelTitle.Render(title) + "\n" + content)
}
