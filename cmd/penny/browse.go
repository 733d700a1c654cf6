package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/applock"
	"github.com/finchley/penny/internal/prefs"
	"github.com/finchley/penny/internal/service"
	"github.com/finchley/penny/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions interactively",
		Long: `Open a full-screen browser with a Days tab (daily buckets, expandable to
individual transactions) and a Months tab (monthly totals).`,
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	prefStore, err := openPrefs()
	if err != nil {
		return err
	}

	lock := applock.New(prefStore.GetBool(prefs.KeyAppLock))
	if err := unlock(lock); err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	return tui.Run(ctx, txns, time.Local)
}

// unlock walks the app-lock machine through its foreground prompt. The
// confirmation stands in for platform authentication, which penny does not
// integrate with.
func unlock(lock *applock.Machine) error {
	if lock.Foreground() != applock.StatePrompting {
		return nil
	}

	fmt.Print("App lock is enabled. Type 'unlock' to continue: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		lock.AuthFailed()
		return fmt.Errorf("failed to read unlock confirmation: %w", err)
	}

	if strings.TrimSpace(line) != "unlock" {
		lock.AuthFailed()
		return fmt.Errorf("app is locked")
	}

	lock.AuthSucceeded()
	return nil
}
