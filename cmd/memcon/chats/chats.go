// Package chatscmder provides the chats command for listing stored chats.
package chatscmder

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/cliui"
	"github.com/LogicalGuy77/memcon/pkg/config"
	"github.com/LogicalGuy77/memcon/pkg/logger"
	"github.com/LogicalGuy77/memcon/pkg/projection"
	"github.com/LogicalGuy77/memcon/pkg/utils"
)

type chatsCommander struct {
	filter string

	apiTarget string
	timeout   uint

	debug  bool
	logger *zap.Logger
}

const chatsLongDesc string = `List chats stored by the memory extraction API.

Each row shows the chat ID, message count, and a preview of the most recent
message. A stats footer totals the chats and messages.

Use --filter to narrow the list by chat ID substring (case-insensitive).

Examples:
  memcon chats
  memcon chats --filter demo
  memcon chats --api-target http://localhost:8000`

const chatsShortDesc string = "List stored chats"

func NewChatsCmd() *cobra.Command {
	cmder := &chatsCommander{}

	cmd := &cobra.Command{
		Use:   "chats",
		Short: chatsShortDesc,
		Long:  chatsLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
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
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.filter, "filter", "f", "", "Filter chats by ID substring")
	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)

	return cmd
}

func (c *chatsCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	client := api.NewClient(c.apiTarget,
		api.WithTimeout(time.Duration(c.timeout)*time.Second),
		api.WithLogger(c.logger),
	)

	chats, err := client.ListChats(context.Background())
	if err != nil {
		return fmt.Errorf("listing chats: %w", err)
	}

	visible := projection.ChatsByID(chats, c.filter)
	if len(visible) == 0 {
		if c.filter != "" {
			fmt.Printf("  %s\n", cliui.DimStyle.Render(fmt.Sprintf("No chats matching %q.", c.filter)))
		} else {
			fmt.Printf("  %s\n", cliui.DimStyle.Render("No chats stored yet."))
		}
		return nil
	}

	fmt.Printf("\n  %s\n\n", cliui.HeaderStyle.Render("Chats"))

	for _, chat := range visible {
		preview := utils.Truncate(utils.CollapseWhitespace(chat.LastMessage), 72)
		fmt.Printf("  %s  %s\n",
			cliui.KeyStyle.Render(chat.ChatID),
			cliui.DimStyle.Render(fmt.Sprintf("%d messages", chat.MessageCount)),
		)
		if preview != "" {
			fmt.Printf("    %s\n", cliui.PreviewStyle.Render(preview))
		}
	}

	stats := projection.Summarize(visible)
	fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render(fmt.Sprintf(
		"%d chats, %d messages, %d avg per chat",
		stats.TotalChats, stats.TotalMessages, stats.AvgMessages,
	)))

	return nil
}
