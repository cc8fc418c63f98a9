// Package historycmder provides the history command for inspecting past
// asks recorded in the local SQLite database.
package historycmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cliui"
	"github.com/inkwellhq/inkwell/pkg/config"
	"github.com/inkwellhq/inkwell/pkg/dotdir"
	"github.com/inkwellhq/inkwell/pkg/history"
	"github.com/inkwellhq/inkwell/pkg/utils"
)

const historyLongDesc string = `Show past questions and answers.

Asks made with "inkwell ask" and through the web UI are recorded in a local
SQLite database (history.db in the .inkwell/ directory by default).

Use subcommands to manage the history:
  inkwell history            Show recent asks
  inkwell history clear      Delete all recorded asks

Example:
  inkwell history
  inkwell history --limit 50`

const historyShortDesc string = "Show past asks"

type historyCommander struct {
	sqlitePath string
	limit      int
}

func NewHistoryCmd() *cobra.Command {
	cmder := &historyCommander{}

	cmd := &cobra.Command{
		Use:     "history",
		Short:   historyShortDesc,
		Long:    historyLongDesc,
		Args:    cobra.NoArgs,
		PreRunE: cmder.resolvePath,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.runList()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagSQLite, &cmder.sqlitePath)
	cmd.Flags().IntVarP(&cmder.limit, "limit", "n", 20, "Number of asks to show")

	clearCmd := &cobra.Command{
		Use:     "clear",
		Short:   "Delete all recorded asks",
		Args:    cobra.NoArgs,
		PreRunE: cmder.resolvePath,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.runClear()
		},
	}
	config.AddStringFlag(clearCmd, config.Flags, config.FlagSQLite, &cmder.sqlitePath)
	cmd.AddCommand(clearCmd)

	return cmd
}

func (c *historyCommander) resolvePath(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("sqlite") {
		return nil
	}

	configDir, _ := cmd.Flags().GetString("config-dir")
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}
	if target == "" {
		return fmt.Errorf("no .inkwell/ directory found; run 'inkwell init' or pass --sqlite")
	}
	c.sqlitePath = cfg.HistoryPath(target)

	return nil
}

func (c *historyCommander) runList() error {
	store, err := history.Open(c.sqlitePath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), c.limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No asks recorded yet.")
		return nil
	}

	fmt.Println()
	for _, e := range entries {
		marker := cliui.SuccessMark
		if e.Outcome == history.OutcomeError {
			marker = cliui.FailMark
		}

		fmt.Printf("  %s %s  %s\n",
			marker,
			cliui.Title(utils.Truncate(e.Question, 70)),
			cliui.DimStyle.Render(e.AskedAt.Local().Format("2006-01-02 15:04")),
		)

		detail := e.Provider
		if e.Model != "" {
			detail += " | " + e.Model
		}
		if e.Outcome == history.OutcomeTruncated {
			detail += " | truncated"
		}
		fmt.Printf("    %s\n", cliui.Faint(detail))

		if e.Answer != "" {
			preview := strings.ReplaceAll(e.Answer, "\n", " ")
			fmt.Printf("    %s\n", cliui.DimStyle.Render(utils.Truncate(preview, 100)))
		}
		fmt.Println()
	}

	return nil
}

func (c *historyCommander) runClear() error {
	store, err := history.Open(c.sqlitePath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	n, err := store.Clear(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d recorded asks.\n", n)
	return nil
}
