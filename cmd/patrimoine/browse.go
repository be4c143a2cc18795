package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/patrimoine/internal/tui"
	"github.com/rgehrsitz/patrimoine/pkg/logging"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [input-file]",
		Short: "Browse scenarios, projections and successions in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := args[0]
			if !fileExists(configPath) {
				return fmt.Errorf("config file not found: %s", configPath)
			}
			regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
			if regulatoryFile == "" && fileExists("regulatory.yaml") {
				regulatoryFile = "regulatory.yaml"
			}

			model := tui.NewModel(configPath, regulatoryFile)

			// The terminal belongs to the UI, so debug logs go to a file.
			if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				model.SetLogger(logging.NewPrintf(logging.New(f, slog.LevelDebug)))
			}

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("log-file", "", "Write calculation logs to this file")
	return cmd
}
