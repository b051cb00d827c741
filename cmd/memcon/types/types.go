// Package typescmder provides the types command for listing the memory
// types the extraction service can produce.
package typescmder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/cliui"
	"github.com/LogicalGuy77/memcon/pkg/config"
	"github.com/LogicalGuy77/memcon/pkg/logger"
	"github.com/LogicalGuy77/memcon/pkg/projection"
)

type typesCommander struct {
	apiTarget string
	timeout   uint

	debug  bool
	logger *zap.Logger
}

const typesLongDesc string = `List the memory types the extraction service can produce.

Fetches the live type list from the API. Falls back to the built-in type
list when the service is unreachable.

Examples:
  memcon types`

const typesShortDesc string = "List extractable memory types"

func NewTypesCmd() *cobra.Command {
	cmder := &typesCommander{}

	cmd := &cobra.Command{
		Use:   "types",
		Short: typesShortDesc,
		Long:  typesLongDesc,
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

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)

	return cmd
}

func (c *typesCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	client := api.NewClient(c.apiTarget,
		api.WithTimeout(time.Duration(c.timeout)*time.Second),
		api.WithLogger(c.logger),
	)

	names, err := client.ListMemoryTypes(context.Background())
	if err != nil {
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.Unreachable() {
			c.logger.Debug("service unreachable, using built-in type list", zap.Error(err))
			names = api.MemoryTypes
			fmt.Printf("\n  %s\n", cliui.DimStyle.Render("Service unreachable; showing built-in types."))
		} else {
			return fmt.Errorf("listing memory types: %w", err)
		}
	}

	fmt.Println()
	for _, name := range names {
		fmt.Printf("  %s  %s\n", cliui.TypeBadge(name), cliui.ValueStyle.Render(projection.TypeLabel(name)))
	}
	fmt.Println()

	return nil
}
