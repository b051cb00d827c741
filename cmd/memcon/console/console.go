// Package consolecmder provides the interactive console for browsing chats
// and extracted memories.
package consolecmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/config"
	"github.com/LogicalGuy77/memcon/pkg/health"
	"github.com/LogicalGuy77/memcon/pkg/logger"
	"github.com/LogicalGuy77/memcon/pkg/projection"
	"github.com/LogicalGuy77/memcon/pkg/store"
	"github.com/LogicalGuy77/memcon/pkg/upload"
)

const consoleLongDesc string = `Open the interactive memory console.

The console polls the extraction API's health in the background and lets you
browse chats, upload transcripts, search memories, and run extraction without
leaving the terminal.

Views:
  Dashboard       chat list and totals
  Upload          submit a transcript file
  Search          query extracted memories
  Chat Analysis   extraction controls for the selected chat
  Memories        filter and sort the selected chat's memories

Chat Analysis and Memories unlock once a chat is selected on the Dashboard.

Examples:
  memcon console
  memcon console --api-target http://localhost:8000
  memcon console --sort confidence`

const consoleShortDesc string = "Open the interactive memory console"

type consoleCommander struct {
	apiTarget      string
	timeout        uint
	healthInterval uint
	sort           string
}

func NewConsoleCmd() *cobra.Command {
	cmder := &consoleCommander{}

	cmd := &cobra.Command{
		Use:   "console",
		Short: consoleShortDesc,
		Long:  consoleLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagAPITarget,
				config.FlagTimeout,
				config.FlagHealthInterval,
				config.FlagSort,
			})
			cmder.apiTarget = v.GetString(config.Flags.ViperKey(config.FlagAPITarget))
			cmder.timeout = v.GetUint(config.Flags.ViperKey(config.FlagTimeout))
			cmder.healthInterval = v.GetUint(config.Flags.ViperKey(config.FlagHealthInterval))
			cmder.sort = v.GetString(config.Flags.ViperKey(config.FlagSort))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)
	config.AddUintFlag(cmd, config.Flags, config.FlagHealthInterval, &cmder.healthInterval)
	config.AddStringFlag(cmd, config.Flags, config.FlagSort, &cmder.sort)

	return cmd
}

func (c *consoleCommander) run() error {
	// The alternate screen owns stdout, so logging is disabled here.
	log := logger.Nop()

	client := api.NewClient(c.apiTarget,
		api.WithTimeout(time.Duration(c.timeout)*time.Second),
		api.WithLogger(log),
	)

	interval := time.Duration(c.healthInterval) * time.Second
	if interval <= 0 {
		interval = health.DefaultInterval
	}

	st := store.New(client, log)
	monitor := health.NewMonitor(client, health.WithInterval(interval), health.WithLogger(log))
	pipeline := upload.NewPipeline(client, log)

	return runConsoleTUI(client, st, monitor, pipeline, interval, projection.SortKey(c.sort))
}
