// Package searchcmder provides the search command for querying extracted memories.
package searchcmder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/cliui"
	"github.com/LogicalGuy77/memcon/pkg/config"
	"github.com/LogicalGuy77/memcon/pkg/logger"
	"github.com/LogicalGuy77/memcon/pkg/projection"
)

type searchCommander struct {
	query  string
	chatID string
	types  []string
	quiet  bool

	apiTarget string
	timeout   uint

	debug  bool
	logger *zap.Logger
}

const searchLongDesc string = `Search extracted memories via the memory extraction API.

The query text is matched against memory content server-side. Results show
the memory type, confidence, and content with the query terms highlighted.

Use --chat to scope the search to a single chat, and --types to restrict
the memory types searched (comma-separated).

Use --quiet to output only memory IDs, one per line, for piping.

Examples:
  memcon search "pizza"
  memcon search "window seat" --chat chat_demo_001
  memcon search "preferences" --types food_preference,travel_preference
  memcon search "pizza" --quiet`

const searchShortDesc string = "Search extracted memories"

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range cmder.types {
				if !api.IsMemoryType(t) {
					return fmt.Errorf("unknown memory type: %q\n\nValid types: %s",
						t, strings.Join(api.MemoryTypes, ", "))
				}
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagAPITarget, config.FlagTimeout})
			cmder.apiTarget = v.GetString(config.Flags.ViperKey(config.FlagAPITarget))
			cmder.timeout = v.GetUint(config.Flags.ViperKey(config.FlagTimeout))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.query = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.chatID, "chat", "c", "", "Scope search to a single chat ID")
	cmd.Flags().StringSliceVarP(&cmder.types, "types", "t", nil, "Restrict to memory types (comma-separated)")
	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Output only memory IDs, one per line (for piping)")
	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)

	return cmd
}

func (c *searchCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	client := api.NewClient(c.apiTarget,
		api.WithTimeout(time.Duration(c.timeout)*time.Second),
		api.WithLogger(c.logger),
	)

	memories, err := client.QueryMemories(context.Background(), api.QueryRequest{
		Query:       c.query,
		ChatID:      c.chatID,
		MemoryTypes: c.types,
	})
	if err != nil {
		return fmt.Errorf("querying memories: %w", err)
	}

	if len(memories) == 0 {
		if !c.quiet {
			fmt.Println("No results found.")
		}
		return nil
	}

	if c.quiet {
		for _, m := range memories {
			fmt.Println(m.MemoryID)
		}
		return nil
	}

	fmt.Printf("\n%s %s\n\n",
		cliui.HeaderStyle.Render("Search Results for:"),
		cliui.KeyStyle.Render(fmt.Sprintf("%q", c.query)),
	)

	for i, m := range memories {
		c.printResult(i+1, m)
	}

	return nil
}

func (c *searchCommander) printResult(rank int, m api.Memory) {
	fmt.Printf("  %s  %s  %s  %s\n",
		cliui.MatchStyle.Render(fmt.Sprintf("#%d", rank)),
		cliui.TypeBadge(m.MemoryType),
		cliui.StepStyle.Render(fmt.Sprintf("confidence: %.2f", m.Confidence)),
		cliui.DimStyle.Render(m.ChatID),
	)

	fmt.Printf("  %s\n", renderHighlighted(m.Content, c.query))

	if m.Reasoning != "" {
		fmt.Printf("  %s\n", cliui.DimStyle.Render(m.Reasoning))
	}

	fmt.Printf("  %s\n", cliui.DimStyle.Render(fmt.Sprintf("%s, updated %s", m.ExtractionMethod, m.UpdatedAt)))
	fmt.Println()
}

// renderHighlighted splits content on query matches and renders the
// matched spans in the match style.
func renderHighlighted(content, query string) string {
	var b strings.Builder
	for _, seg := range projection.Highlight(content, query) {
		if seg.Match {
			b.WriteString(cliui.MatchStyle.Render(seg.Text))
		} else {
			b.WriteString(cliui.PreviewStyle.Render(seg.Text))
		}
	}
	return b.String()
}
