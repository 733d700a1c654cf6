package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/model"
)

func testTransactions() []model.Transaction {
	day1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 18, 30, 0, 0, time.UTC)
	march := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	return []model.Transaction{
		{ID: "t1", Date: day1, Category: "food", Note: "Lunch", Amount: decimal.RequireFromString("-12.50")},
		{ID: "t2", Date: day2, Category: "salary", Amount: decimal.RequireFromString("3000")},
		{ID: "t3", Date: march, Category: "transport", Amount: decimal.RequireFromString("-2.50")},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_GroupsDaysAndMonths(t *testing.T) {
	m := NewModel(testTransactions(), time.UTC)

	if len(m.days) != 3 {
		t.Errorf("got %d day rows, want 3", len(m.days))
	}
	if len(m.months) != 2 {
		t.Errorf("got %d month rows, want 2", len(m.months))
	}
	// Newest month first.
	if m.months[0].Month != time.May {
		t.Errorf("first month = %s, want May", m.months[0].Month)
	}
}

func TestNewModel_MonthsSortedNewestFirst(t *testing.T) {
	// First appearance order is Jan, Mar, Feb; the view must still sort.
	txns := []model.Transaction{
		{ID: "t1", Date: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), Category: "food", Amount: decimal.RequireFromString("-10")},
		{ID: "t2", Date: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), Category: "food", Amount: decimal.RequireFromString("-20")},
		{ID: "t3", Date: time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC), Category: "food", Amount: decimal.RequireFromString("-30")},
		{ID: "t4", Date: time.Date(2023, 12, 5, 9, 0, 0, 0, time.UTC), Category: "food", Amount: decimal.RequireFromString("-40")},
	}

	m := NewModel(txns, time.UTC)

	want := []struct {
		year  int
		month time.Month
	}{
		{2024, time.March},
		{2024, time.February},
		{2024, time.January},
		{2023, time.December},
	}
	if len(m.months) != len(want) {
		t.Fatalf("got %d month rows, want %d", len(m.months), len(want))
	}
	for i, w := range want {
		if m.months[i].Year != w.year || m.months[i].Month != w.month {
			t.Errorf("months[%d] = %d %s, want %d %s",
				i, m.months[i].Year, m.months[i].Month, w.year, w.month)
		}
	}
}

func TestUpdate_Navigation(t *testing.T) {
	m := NewModel(testTransactions(), time.UTC)

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", m.cursor)
	}

	// Cursor clamps at the top.
	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, should clamp at 0", m.cursor)
	}
}

func TestUpdate_TabSwitchResetsCursor(t *testing.T) {
	m := NewModel(testTransactions(), time.UTC)

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("l"))
	m = next.(Model)

	if m.tab != TabMonths {
		t.Errorf("tab = %v after l, want Months", m.tab)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d after tab switch, want 0", m.cursor)
	}

	next, _ = m.Update(keyMsg("h"))
	m = next.(Model)
	if m.tab != TabDays {
		t.Errorf("tab = %v after h, want Days", m.tab)
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := NewModel(testTransactions(), time.UTC)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if !m.quitting {
		t.Error("q should set quitting")
	}
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestView_ShowsSelectedDayDetail(t *testing.T) {
	m := NewModel(testTransactions(), time.UTC)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	// Newest day (salary) is selected first.
	view := m.View()
	if !strings.Contains(view, "salary") {
		t.Error("view should contain the selected day's transactions")
	}

	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	view = m.View()
	if !strings.Contains(view, "Lunch") {
		t.Error("view should expand the newly selected day")
	}
}
