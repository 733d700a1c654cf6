package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/finchley/penny/internal/model"
)

// Run starts the transaction browser over the given transactions and blocks
// until the user quits.
func Run(ctx context.Context, txns []model.Transaction, loc *time.Location) error {
	program := tea.NewProgram(
		NewModel(txns, loc),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
