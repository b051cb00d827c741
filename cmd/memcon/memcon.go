// Package memconcmder
package memconcmder

import (
	"github.com/spf13/cobra"

	chatscmder "github.com/LogicalGuy77/memcon/cmd/memcon/chats"
	cleanupcmder "github.com/LogicalGuy77/memcon/cmd/memcon/cleanup"
	configcmder "github.com/LogicalGuy77/memcon/cmd/memcon/config"
	consolecmder "github.com/LogicalGuy77/memcon/cmd/memcon/console"
	extractcmder "github.com/LogicalGuy77/memcon/cmd/memcon/extract"
	searchcmder "github.com/LogicalGuy77/memcon/cmd/memcon/search"
	typescmder "github.com/LogicalGuy77/memcon/cmd/memcon/types"
	uploadcmder "github.com/LogicalGuy77/memcon/cmd/memcon/upload"
	versioncmder "github.com/LogicalGuy77/memcon/cmd/memcon/version"
)

const memconLongDesc string = `Memcon is a console for inspecting conversational memory.

Browse chats and extracted memories from a running memory extraction API:
  memcon console        Open the interactive console
  memcon chats          List stored chats
  memcon search         Search extracted memories
  memcon extract        Run extraction for a chat
  memcon upload         Upload a chat transcript`

const memconShortDesc string = "Memcon - Conversational Memory Console"

func NewMemconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memcon",
		Short: memconShortDesc,
		Long:  memconLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .memcon/ config directory")

	// Add subcommands
	cmd.AddCommand(consolecmder.NewConsoleCmd())
	cmd.AddCommand(chatscmder.NewChatsCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(extractcmder.NewExtractCmd())
	cmd.AddCommand(uploadcmder.NewUploadCmd())
	cmd.AddCommand(cleanupcmder.NewCleanupCmd())
	cmd.AddCommand(typescmder.NewTypesCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
