// Package cleanupcmder provides the cleanup command for removing stale
// memories from a chat.
package cleanupcmder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/cliui"
	"github.com/LogicalGuy77/memcon/pkg/config"
	"github.com/LogicalGuy77/memcon/pkg/logger"
)

type cleanupCommander struct {
	chatID string

	apiTarget string
	timeout   uint

	debug  bool
	logger *zap.Logger
}

const cleanupLongDesc string = `Remove stale memories for a chat.

Asks the memory extraction API to drop memories it considers stale or
superseded for the given chat. Prints the number of memories removed.

Examples:
  memcon cleanup chat_demo_001`

const cleanupShortDesc string = "Remove stale memories for a chat"

func NewCleanupCmd() *cobra.Command {
	cmder := &cleanupCommander{}

	cmd := &cobra.Command{
		Use:   "cleanup <chat-id>",
		Short: cleanupShortDesc,
		Long:  cleanupLongDesc,
		Args:  cobra.ExactArgs(1),
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
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.chatID = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)

	return cmd
}

func (c *cleanupCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	client := api.NewClient(c.apiTarget,
		api.WithTimeout(time.Duration(c.timeout)*time.Second),
		api.WithLogger(c.logger),
	)

	var ack *api.CleanupAck
	err := cliui.Step(os.Stdout, fmt.Sprintf("Cleaning up memories for %s", c.chatID), func() error {
		var stepErr error
		ack, stepErr = client.CleanupMemories(context.Background(), c.chatID)
		return stepErr
	})
	if err != nil {
		return fmt.Errorf("cleaning up memories: %w", err)
	}

	fmt.Printf("\n  %s %d stale memories removed\n\n", cliui.SuccessMark, ack.Removed)
	return nil
}
