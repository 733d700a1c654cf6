// Package tui implements the interactive transaction browser: a tabbed
// terminal view over daily and monthly spending.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finchley/penny/internal/aggregate"
	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/model"
)

// Tab is one of the browser's top-level views.
type Tab int

const (
	// TabDays shows one row per calendar day.
	TabDays Tab = iota
	// TabMonths shows one row per calendar month.
	TabMonths

	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabDays:
		return "Days"
	case TabMonths:
		return "Months"
	default:
		return "?"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor).
			Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(cli.SubtleColor).
				Padding(0, 2)
	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(cli.PrimaryColor)
)

// Model holds the browser state. All data is loaded before the program
// starts, so Update stays a pure function over it.
type Model struct {
	keymap   KeyMap
	help     help.Model
	loc      *time.Location
	days     []aggregate.DayBucket
	months   []aggregate.MonthSummary
	byDay    map[int64][]model.Transaction
	tab      Tab
	cursor   int
	width    int
	height   int
	quitting bool
}

// NewModel builds a browser over the given transactions.
func NewModel(txns []model.Transaction, loc *time.Location) Model {
	byDay := make(map[int64][]model.Transaction)
	for i := range txns {
		key := aggregate.DayStart(txns[i].Date.UnixMilli(), loc)
		byDay[key] = append(byDay[key], txns[i])
	}

	return Model{
		keymap: DefaultKeyMap(),
		help:   help.New(),
		loc:    loc,
		days:   aggregate.BuildDailyBuckets(txns, loc),
		months: monthSummaries(txns, loc),
		byDay:  byDay,
	}
}

// monthSummaries builds one summary per distinct month, newest first.
func monthSummaries(txns []model.Transaction, loc *time.Location) []aggregate.MonthSummary {
	type ym struct {
		year  int
		month time.Month
	}
	seen := make(map[ym]bool)
	var order []ym
	for i := range txns {
		local := txns[i].Date.In(loc)
		k := ym{local.Year(), local.Month()}
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}

	summaries := make([]aggregate.MonthSummary, 0, len(order))
	for _, k := range order {
		summaries = append(summaries, aggregate.BuildMonthSummary(txns, k.year, k.month, loc))
	}
	// Newest first.
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year > summaries[j].Year
		}
		return summaries[i].Month > summaries[j].Month
	})
	return summaries
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keymap.Down):
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keymap.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.cursor = 0
		case key.Matches(msg, m.keymap.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.cursor = 0
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) rowCount() int {
	if m.tab == TabMonths {
		return len(m.months)
	}
	return len(m.days)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("penny"))
	b.WriteString("\n")
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	if m.tab == TabMonths {
		b.WriteString(m.monthRows())
	} else {
		b.WriteString(m.dayRows())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) tabBar() string {
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		style := inactiveTabStyle
		if t == m.tab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) dayRows() string {
	if len(m.days) == 0 {
		return cli.SubtleStyle.Render("No transactions recorded yet.")
	}

	var b strings.Builder
	for i, day := range m.days {
		date := time.UnixMilli(day.DayStartMillis).In(m.loc)
		row := fmt.Sprintf("%s  %2d txns  out %s  in %s",
			date.Format("Mon 2006-01-02"),
			day.Count,
			day.Expense.StringFixed(2),
			day.Income.StringFixed(2))

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("> " + row))
			b.WriteString("\n")
			b.WriteString(m.transactionsFor(day.DayStartMillis))
		} else {
			b.WriteString("  " + row)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// transactionsFor renders the expanded transaction list of the selected day.
func (m Model) transactionsFor(dayKey int64) string {
	var b strings.Builder
	for _, txn := range m.byDay[dayKey] {
		note := txn.Note
		if note == "" {
			note = cli.SubtleStyle.Render("(no note)")
		}
		b.WriteString(fmt.Sprintf("    %s  %-12s %s  %s\n",
			txn.Date.In(m.loc).Format("15:04"),
			txn.Category,
			cli.FormatAmount(txn.Amount),
			note))
	}
	return b.String()
}

func (m Model) monthRows() string {
	if len(m.months) == 0 {
		return cli.SubtleStyle.Render("No transactions recorded yet.")
	}

	var b strings.Builder
	for i, month := range m.months {
		row := fmt.Sprintf("%d-%02d  %3d txns on %2d days  out %s  in %s  net %s",
			month.Year, int(month.Month),
			month.Count, month.Days,
			month.Expense.StringFixed(2),
			month.Income.StringFixed(2),
			month.Net().StringFixed(2))

		prefix := "  "
		if i == m.cursor {
			row = selectedRowStyle.Render(row)
			prefix = "> "
		}
		b.WriteString(prefix + row + "\n")
	}
	return b.String()
}
