// Package uploadcmder provides the upload command for submitting chat
// transcripts to the memory extraction API.
package uploadcmder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/cliui"
	"github.com/LogicalGuy77/memcon/pkg/config"
	"github.com/LogicalGuy77/memcon/pkg/logger"
	"github.com/LogicalGuy77/memcon/pkg/upload"
)

type uploadCommander struct {
	path    string
	format  bool
	example bool

	apiTarget string
	timeout   uint

	debug  bool
	logger *zap.Logger
}

const uploadLongDesc string = `Upload a chat transcript to the memory extraction API.

The transcript is a JSON array of message objects. Each message needs
message_id, chat_id, sender, content, and timestamp fields. Timestamps are
normalized to ISO 8601 UTC before upload.

Use --example to upload the built-in example transcript instead of a file.
Use --format to pretty-print the transcript without uploading.
Use --requirements to display the transcript format requirements.

Examples:
  memcon upload transcript.json
  memcon upload --example
  memcon upload transcript.json --format
  memcon upload --requirements`

const uploadShortDesc string = "Upload a chat transcript"

func NewUploadCmd() *cobra.Command {
	cmder := &uploadCommander{}

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: uploadShortDesc,
		Long:  uploadLongDesc,
		Args:  cobra.MaximumNArgs(1),
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
			if len(args) > 0 {
				cmder.path = args[0]
			}

			requirements, _ := cmd.Flags().GetBool("requirements")
			if requirements {
				return showRequirements()
			}

			if cmder.path == "" && !cmder.example {
				return errors.New("provide a transcript file or use --example")
			}

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	cmd.Flags().BoolVar(&cmder.format, "format", false, "Pretty-print the transcript without uploading")
	cmd.Flags().BoolVar(&cmder.example, "example", false, "Use the built-in example transcript")
	cmd.Flags().Bool("requirements", false, "Show the transcript format requirements")
	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)

	return cmd
}

func (c *uploadCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	rawText, err := c.transcript()
	if err != nil {
		return err
	}

	if c.format {
		formatted, err := upload.FormatForDisplay(rawText)
		if err != nil {
			return fmt.Errorf("formatting transcript: %w", err)
		}
		fmt.Println(formatted)
		return nil
	}

	client := api.NewClient(c.apiTarget,
		api.WithTimeout(time.Duration(c.timeout)*time.Second),
		api.WithLogger(c.logger),
	)
	pipeline := upload.NewPipeline(client, c.logger)

	var result *upload.Result
	err = cliui.Step(os.Stdout, "Uploading transcript", func() error {
		var stepErr error
		result, stepErr = pipeline.Submit(context.Background(), rawText)
		return stepErr
	})
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("\n  %s %s\n", cliui.FailMark, verr.Error())
			if rendered, rerr := cliui.RenderMarkdown(upload.FormatRequirements); rerr == nil {
				fmt.Println(rendered)
			}
		}
		return fmt.Errorf("uploading transcript: %w", err)
	}

	fmt.Printf("\n  %s  %s\n", cliui.KeyStyle.Render("Messages:"), cliui.ValueStyle.Render(fmt.Sprintf("%d", result.MessageCount)))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Chats:   "), cliui.ValueStyle.Render(strings.Join(result.UniqueChatIDs, ", ")))
	if result.Ack != nil && result.Ack.Message != "" {
		fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Server:  "), cliui.DimStyle.Render(result.Ack.Message))
	}
	fmt.Println()

	return nil
}

// transcript returns the raw transcript text from the file argument or
// the built-in example.
func (c *uploadCommander) transcript() (string, error) {
	if c.example {
		return upload.ExampleTranscript, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", fmt.Errorf("reading transcript %s: %w", c.path, err)
	}
	return string(data), nil
}

func showRequirements() error {
	rendered, err := cliui.RenderMarkdown(upload.FormatRequirements)
	if err != nil {
		fmt.Print(upload.FormatRequirements)
		return nil
	}
	fmt.Println(rendered)
	return nil
}
