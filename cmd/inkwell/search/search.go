// Package searchcmder provides the search command for finding articles by
// title via the inkwell backend.
package searchcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/client"
	"github.com/inkwellhq/inkwell/pkg/cliui"
	"github.com/inkwellhq/inkwell/pkg/config"
	"github.com/inkwellhq/inkwell/pkg/logger"
	"github.com/inkwellhq/inkwell/pkg/query"
)

type searchCommander struct {
	queryText     string
	feedName      string
	feedAuthor    string
	titleKeywords string
	limit         int
	asJSON        bool

	target string

	debug bool
}

const searchLongDesc string = `Search article titles via the inkwell backend.

Returns the most relevant unique article titles for the query text,
optionally filtered by newsletter, feed author, or words in the title.

Example:
  inkwell search "mixture of experts"
  inkwell search "agents" --feed-name "ML Weekly" --limit 10
  inkwell search "evals" --json | jq '.[].url'`

const searchShortDesc string = "Search article titles"

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
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
			if !cmd.Flags().Changed("limit") {
				cmder.limit = cfg.Ask.Limit
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.queryText = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagBackendTarget, &cmder.target)
	config.AddIntFlag(cmd, config.Flags, config.FlagLimit, &cmder.limit)
	cmd.Flags().StringVar(&cmder.feedName, "feed-name", "", "Filter by newsletter name")
	cmd.Flags().StringVar(&cmder.feedAuthor, "feed-author", "", "Filter by feed author")
	cmd.Flags().StringVar(&cmder.titleKeywords, "title-keywords", "", "Filter by words in the title")
	cmd.Flags().BoolVar(&cmder.asJSON, "json", false, "Output raw JSON (for piping)")

	return cmd
}

func (c *searchCommander) run() error {
	log := logger.New(
		logger.WithDebug(c.debug),
		logger.WithWriter(os.Stderr),
		logger.WithPretty(logger.IsTerminal(os.Stderr)),
	)

	crit := query.Criteria{
		QueryText:     c.queryText,
		FeedName:      c.feedName,
		FeedAuthor:    c.feedAuthor,
		TitleKeywords: c.titleKeywords,
		Limit:         c.limit,
	}
	if err := crit.Validate(); err != nil {
		return err
	}

	backend := client.New(c.target, client.WithLogger(log))

	var articles []client.Article
	if c.asJSON {
		var err error
		articles, err = backend.SearchTitles(context.Background(), crit)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(articles)
	}

	err := cliui.Step(os.Stderr, "Searching articles", func() error {
		var serr error
		articles, serr = backend.SearchTitles(context.Background(), crit)
		return serr
	})
	if err != nil {
		return err
	}

	if len(articles) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Println()
	for i, a := range articles {
		c.printArticle(i+1, a)
	}

	return nil
}

func (c *searchCommander) printArticle(rank int, a client.Article) {
	fmt.Printf("  %s %s\n",
		cliui.KeyStyle.Render(fmt.Sprintf("#%d", rank)),
		cliui.Title(a.Title),
	)

	detail := a.FeedName
	if a.FeedAuthor != "" {
		detail += " by " + a.FeedAuthor
	}
	if len(a.ArticleAuthor) > 0 {
		detail += " | " + strings.Join(a.ArticleAuthor, ", ")
	}
	if detail != "" {
		fmt.Printf("     %s\n", cliui.Faint(detail))
	}
	if a.URL != "" {
		fmt.Printf("     %s\n", cliui.DimStyle.Render(a.URL))
	}
	fmt.Println()
}
