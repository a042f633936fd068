package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "morphtree",
		Short: "Gesture-driven particle morph between a tree and a sphere",
		Long: `morphtree drives the particle scene without a window or camera.
Scenes are configured with a YAML file (see "morphtree config") and can be
driven by JSON gesture scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), level))
			return nil
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringP("config", "c", "", "YAML scene configuration (defaults when empty)")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	root.AddCommand(newSimulateCmd(), newDumpCmd(), newConfigCmd())
	return root
}

// newLogger returns a text logger writing to w at the named level.
// Unknown names fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
