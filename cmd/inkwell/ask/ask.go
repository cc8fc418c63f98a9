// Package askcmder provides the ask command for asking the AI assistant a
// question grounded in the indexed articles.
package askcmder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/client"
	"github.com/inkwellhq/inkwell/pkg/cliui"
	"github.com/inkwellhq/inkwell/pkg/config"
	"github.com/inkwellhq/inkwell/pkg/dotdir"
	"github.com/inkwellhq/inkwell/pkg/history"
	"github.com/inkwellhq/inkwell/pkg/logger"
	"github.com/inkwellhq/inkwell/pkg/models"
	"github.com/inkwellhq/inkwell/pkg/query"
	"github.com/inkwellhq/inkwell/pkg/stream"
)

type askCommander struct {
	question   string
	feedName   string
	feedAuthor string
	limit      int
	provider   string
	model      string
	streaming  bool
	noHistory  bool
	raw        bool

	target     string
	sqlitePath string

	debug bool
}

const askLongDesc string = `Ask the AI assistant a question about the indexed articles.

The backend searches the articles for context and answers with an LLM from
the chosen provider. By default the answer streams to the terminal as it is
generated; --stream=false waits for the complete answer and renders it as
markdown.

An empty model means the backend picks one automatically (model routing).

Example:
  inkwell ask "what changed in attention mechanisms this year?"
  inkwell ask "summarize the MoE debate" --provider openrouter --model openai/gpt-4o-mini
  inkwell ask "compare RAG approaches" --stream=false`

const askShortDesc string = "Ask the AI assistant a question"

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("backend-target") {
				cmder.target = cfg.Backend.Target
			}
			if !cmd.Flags().Changed("provider") {
				cmder.provider = cfg.Ask.Provider
			}
			if !cmd.Flags().Changed("model") {
				cmder.model = cfg.Ask.Model
			}
			if !cmd.Flags().Changed("limit") {
				cmder.limit = cfg.Ask.Limit
			}
			if !cmd.Flags().Changed("stream") {
				cmder.streaming = cfg.Ask.Stream
			}
			if !cmd.Flags().Changed("sqlite") {
				ddm := dotdir.NewManager()
				target, terr := ddm.Target(configDir)
				if terr == nil && target != "" {
					cmder.sqlitePath = cfg.HistoryPath(target)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.question = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagBackendTarget, &cmder.target)
	config.AddStringFlag(cmd, config.Flags, config.FlagProvider, &cmder.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddIntFlag(cmd, config.Flags, config.FlagLimit, &cmder.limit)
	config.AddBoolFlag(cmd, config.Flags, config.FlagStream, &cmder.streaming)
	config.AddStringFlag(cmd, config.Flags, config.FlagSQLite, &cmder.sqlitePath)
	cmd.Flags().StringVar(&cmder.feedName, "feed-name", "", "Filter context articles by newsletter name")
	cmd.Flags().StringVar(&cmder.feedAuthor, "feed-author", "", "Filter context articles by feed author")
	cmd.Flags().BoolVar(&cmder.noHistory, "no-history", false, "Do not record this ask in the local history")
	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print the raw answer without markdown rendering")

	return cmd
}

func (c *askCommander) run() error {
	log := logger.New(
		logger.WithDebug(c.debug),
		logger.WithWriter(os.Stderr),
		logger.WithPretty(logger.IsTerminal(os.Stderr)),
	)

	crit := query.Criteria{
		QueryText:  c.question,
		FeedName:   c.feedName,
		FeedAuthor: c.feedAuthor,
		Limit:      c.limit,
		Provider:   c.provider,
		Model:      models.Normalize(c.model),
	}
	if err := crit.Validate(); err != nil {
		if errors.Is(err, query.ErrEmptyQuery) {
			fmt.Println("Please enter a query text.")
			return nil
		}
		return err
	}

	backend := client.New(c.target, client.WithLogger(log))

	var (
		answer  string
		model   string
		outcome history.Outcome
		err     error
	)
	if c.streaming {
		answer, model, outcome, err = c.askStreaming(backend, crit)
	} else {
		answer, model, outcome, err = c.askBlocking(backend, crit)
	}
	if err != nil {
		return err
	}

	if !c.noHistory {
		c.record(log, answer, model, outcome)
	}

	return nil
}

// askStreaming prints answer deltas as they arrive. The decoder reports
// cumulative text, so only the suffix past what was already printed goes to
// the terminal.
func (c *askCommander) askStreaming(backend *client.Client, crit query.Criteria) (string, string, history.Outcome, error) {
	answer := backend.AskStream(context.Background(), crit)
	defer answer.Close()

	var (
		printed int
		model   string
		outcome = history.OutcomeAnswered
	)
	for {
		ev := answer.Next()
		if ev == nil {
			break
		}

		switch ev.Type {
		case stream.TypeModel:
			model = ev.Model
			fmt.Fprintf(os.Stderr, "%s\n\n", cliui.ModelBadge(ev.Model))
		case stream.TypeText:
			fmt.Print(ev.Text[printed:])
			printed = len(ev.Text)
		case stream.TypeTruncated:
			outcome = history.OutcomeTruncated
			fmt.Printf("\n\n%s\n", cliui.TruncationNotice(ev.Message))
		case stream.TypeError:
			outcome = history.OutcomeError
			fmt.Printf("\n%s\n", cliui.ErrorNotice(ev.Message))
		}
	}
	if outcome == history.OutcomeAnswered {
		fmt.Println()
	}

	return answer.Text(), model, outcome, nil
}

// askBlocking waits for the full answer, then renders it as markdown.
func (c *askCommander) askBlocking(backend *client.Client, crit query.Criteria) (string, string, history.Outcome, error) {
	var completion *stream.Completion
	err := cliui.Step(os.Stderr, "Generating answer", func() error {
		var aerr error
		completion, aerr = backend.Ask(context.Background(), crit)
		return aerr
	})
	if err != nil {
		fmt.Printf("\n%s\n", cliui.ErrorNotice(fmt.Sprintf("Request failed: %v", err)))
		return "", "", history.OutcomeError, nil
	}

	outcome := history.OutcomeAnswered
	for _, ev := range stream.DecodeCompletion(*completion) {
		switch ev.Type {
		case stream.TypeModel:
			fmt.Fprintf(os.Stderr, "\n%s\n", cliui.ModelBadge(ev.Model))
		case stream.TypeText:
			if c.raw || !logger.IsTerminal(os.Stdout) {
				fmt.Println(ev.Text)
				continue
			}
			rendered, rerr := cliui.RenderMarkdown(ev.Text)
			if rerr != nil {
				fmt.Println(ev.Text)
				continue
			}
			fmt.Print(rendered)
		case stream.TypeTruncated:
			outcome = history.OutcomeTruncated
			fmt.Printf("\n%s\n", cliui.TruncationNotice(ev.Message))
		}
	}

	return completion.Answer, completion.Model, outcome, nil
}

// record stores the ask in the local history database. History failures are
// logged, never fatal.
func (c *askCommander) record(log *slog.Logger, answer, model string, outcome history.Outcome) {
	if c.sqlitePath == "" {
		return
	}

	store, err := history.Open(c.sqlitePath)
	if err != nil {
		log.Error("failed to open history database", "error", err)
		return
	}
	defer store.Close()

	_, err = store.Record(context.Background(), history.Entry{
		Question: c.question,
		Answer:   answer,
		Provider: c.provider,
		Model:    model,
		Outcome:  outcome,
	})
	if err != nil {
		log.Error("failed to record ask history", "error", err)
	}
}
