package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var statsMetrics = []domain.Metric{domain.MetricWorkHours, domain.MetricDistanceKm}

type statsKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultStatsKeys() statsKeyMap {
	return statsKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next metric"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("←", "previous metric"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k statsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Refresh, k.Quit}
}

func (k statsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type statsLoadedMsg struct {
	metric domain.Metric
	avgs   []stats.WeekdayAverage
	window stats.Window
	err    error
}

// statsModel browses the weekday averages one metric at a time.
type statsModel struct {
	ctx   context.Context
	app   *App
	owner string

	idx     int
	avgs    []stats.WeekdayAverage
	window  stats.Window
	err     error
	loading bool

	keys statsKeyMap
	help help.Model
}

func newStatsModel(ctx context.Context, app *App, owner string, metric domain.Metric) statsModel {
	idx := 0
	for i, m := range statsMetrics {
		if m == metric {
			idx = i
		}
	}
	return statsModel{
		ctx:     ctx,
		app:     app,
		owner:   owner,
		idx:     idx,
		loading: true,
		keys:    defaultStatsKeys(),
		help:    help.New(),
	}
}

func (m statsModel) metric() domain.Metric {
	return statsMetrics[m.idx]
}

func (m statsModel) load() tea.Cmd {
	ctx, a, owner, metric := m.ctx, m.app, m.owner, m.metric()
	return func() tea.Msg {
		req := a.statsRequest(owner)
		avgs, err := a.Stats.WeekdayAverages(ctx, req, metric)
		return statsLoadedMsg{
			metric: metric,
			avgs:   avgs,
			window: stats.TrailingMonths(req.Now.In(a.loc()), a.WindowMonths),
			err:    err,
		}
	}
}

func (m statsModel) Init() tea.Cmd {
	return m.load()
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case statsLoadedMsg:
		// A reply for a metric that is no longer shown is dropped.
		if msg.metric != m.metric() {
			return m, nil
		}
		m.loading = false
		m.avgs, m.window, m.err = msg.avgs, msg.window, msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.idx = (m.idx + 1) % len(statsMetrics)
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Prev):
			m.idx = (m.idx + len(statsMetrics) - 1) % len(statsMetrics)
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m statsModel) View() string {
	var b strings.Builder

	tabs := make([]string, len(statsMetrics))
	for i, metric := range statsMetrics {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(formatter.ColorDim)
		if i == m.idx {
			style = style.Foreground(formatter.ColorHeader).Bold(true).Underline(true)
		}
		tabs[i] = style.Render(formatter.MetricTitle(metric))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading..."))
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	default:
		b.WriteString(formatter.FormatWeekdayStats(m.metric(), m.avgs, m.window))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
