package aggregate

import (
	"testing"
	"time"

	"github.com/finchley/penny/internal/model"
)

func TestBuildHeatmap(t *testing.T) {
	loc := mustZone(t, "UTC")

	txns := []model.Transaction{
		txn("t1", "food", "-100", time.Date(2024, 2, 1, 10, 0, 0, 0, loc)),
		txn("t2", "food", "-25", time.Date(2024, 2, 14, 10, 0, 0, 0, loc)),
		txn("t3", "salary", "2000", time.Date(2024, 2, 14, 11, 0, 0, 0, loc)),
		txn("t4", "food", "-50", time.Date(2024, 2, 29, 10, 0, 0, 0, loc)), // leap day
		txn("t5", "food", "-10", time.Date(2024, 3, 1, 10, 0, 0, 0, loc)),  // outside month
	}

	hm := BuildHeatmap(txns, 2024, time.February, loc)
	if len(hm.Cells) != 29 {
		t.Fatalf("February 2024 should have 29 cells, got %d", len(hm.Cells))
	}

	if hm.Cells[0].Level != HeatmapLevels-1 {
		t.Errorf("heaviest day should carry the top level, got %d", hm.Cells[0].Level)
	}
	if hm.Cells[13].Count != 2 {
		t.Errorf("Feb 14 count = %d, want 2", hm.Cells[13].Count)
	}
	if got := hm.Cells[13].Expense.String(); got != "25" {
		t.Errorf("Feb 14 expense = %s, want 25 (income excluded)", got)
	}
	if hm.Cells[13].Level < 1 || hm.Cells[13].Level >= HeatmapLevels {
		t.Errorf("Feb 14 level = %d, want within 1..%d", hm.Cells[13].Level, HeatmapLevels-1)
	}
	if hm.Cells[1].Level != 0 || hm.Cells[1].Count != 0 {
		t.Error("days without transactions should stay at level 0")
	}
	if hm.Cells[28].Count != 1 {
		t.Error("leap day transaction should land in the Feb 29 cell")
	}
}

func TestBuildHeatmap_NoSpending(t *testing.T) {
	loc := mustZone(t, "UTC")
	txns := []model.Transaction{
		txn("t1", "salary", "2000", time.Date(2024, 2, 14, 11, 0, 0, 0, loc)),
	}

	hm := BuildHeatmap(txns, 2024, time.February, loc)
	for _, cell := range hm.Cells {
		if cell.Level != 0 {
			t.Fatalf("income-only month should stay at level 0, day %d has %d", cell.Day, cell.Level)
		}
	}
}

func TestBuildMonthSummary(t *testing.T) {
	loc := mustZone(t, "UTC")

	txns := []model.Transaction{
		txn("t1", "food", "-100.50", time.Date(2024, 2, 1, 10, 0, 0, 0, loc)),
		txn("t2", "food", "-25", time.Date(2024, 2, 14, 10, 0, 0, 0, loc)),
		txn("t3", "salary", "2000", time.Date(2024, 2, 14, 11, 0, 0, 0, loc)),
		txn("t4", "food", "-10", time.Date(2024, 3, 1, 10, 0, 0, 0, loc)),
	}

	summary := BuildMonthSummary(txns, 2024, time.February, loc)
	if got := summary.Expense.String(); got != "125.5" {
		t.Errorf("expense = %s, want 125.5", got)
	}
	if got := summary.Income.String(); got != "2000" {
		t.Errorf("income = %s, want 2000", got)
	}
	if got := summary.Net().String(); got != "1874.5" {
		t.Errorf("net = %s, want 1874.5", got)
	}
	if summary.Days != 2 || summary.Count != 3 {
		t.Errorf("days/count = %d/%d, want 2/3", summary.Days, summary.Count)
	}
}
