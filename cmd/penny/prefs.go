package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/prefs"
)

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and change preferences",
		RunE:  runPrefsList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference value",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrefsGet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference value",
		Example: `  penny prefs set default_currency EUR
  penny prefs set app_lock true`,
		Args: cobra.ExactArgs(2),
		RunE: runPrefsSet,
	})

	return cmd
}

func runPrefsList(_ *cobra.Command, _ []string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}

	all := store.All()
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%-18s %v\n", key, all[key])
	}
	return nil
}

func runPrefsGet(_ *cobra.Command, args []string) error {
	if !prefs.IsKnown(args[0]) {
		return unknownPrefError(args[0])
	}

	store, err := openPrefs()
	if err != nil {
		return err
	}

	fmt.Println(store.All()[args[0]])
	return nil
}

func runPrefsSet(_ *cobra.Command, args []string) error {
	key, raw := args[0], args[1]
	if !prefs.IsKnown(key) {
		return unknownPrefError(key)
	}

	store, err := openPrefs()
	if err != nil {
		return err
	}

	// Booleans keys take boolean values, everything else is a string.
	var value any = raw
	switch key {
	case prefs.KeyDynamicColor, prefs.KeyAppLock:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean value %q for %s", raw, key)
		}
		value = parsed
	}

	if err := store.Set(key, value); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Set %s = %v", key, value)))
	return nil
}

func unknownPrefError(key string) error {
	return fmt.Errorf("unknown preference %q (known: %s)", key, strings.Join(prefs.Keys(), ", "))
}
