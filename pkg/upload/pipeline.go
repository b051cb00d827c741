// Package upload validates and transforms raw transcript JSON into the
// service's wire format and submits it. Outcomes are all-or-nothing: a
// complete summary on success, an error otherwise, never both.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LogicalGuy77/memcon/pkg/api"
)

// invalidDateMarker is what an unparseable timestamp becomes. The
// service stores the literal string rather than rejecting the batch,
// so the pipeline stays equally lenient instead of refusing the
// message.
const invalidDateMarker = "Invalid Date"

// timestampLayouts are tried in order when normalizing a message
// timestamp to RFC3339 UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidationError is malformed or incomplete user input, caught before
// anything touches the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid transcript: " + e.Reason
}

// Uploader is the slice of the service client the pipeline needs.
type Uploader interface {
	UploadMessages(ctx context.Context, messages []api.Message) (*api.UploadAck, error)
}

// Result summarizes one successful upload.
type Result struct {
	// MessageCount is the number of messages submitted.
	MessageCount int

	// UniqueChatIDs are the distinct chat ids in the batch, ordered by
	// first occurrence.
	UniqueChatIDs []string

	// ChatID is the first message's chat id, the "primary" chat the
	// console navigates to after upload.
	ChatID string

	// Ack is the server's raw acknowledgement.
	Ack *api.UploadAck
}

// Pipeline validates, transforms, and submits transcript batches.
type Pipeline struct {
	uploader Uploader
	logger   *zap.Logger
}

// NewPipeline creates a pipeline over the given uploader.
func NewPipeline(uploader Uploader, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{uploader: uploader, logger: logger}
}

// rawMessage uses pointer fields so an absent key is distinguishable
// from an empty string.
type rawMessage struct {
	MessageID *string `json:"message_id"`
	Timestamp *string `json:"timestamp"`
	Sender    *string `json:"sender"`
	Content   *string `json:"content"`
	ChatID    *string `json:"chat_id"`
}

// Submit parses rawText as a JSON array of messages, normalizes each
// timestamp, uploads the batch, and returns the summary. Validation
// never reaches the network; an upload failure propagates with no
// partial result.
func (p *Pipeline) Submit(ctx context.Context, rawText string) (*Result, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &ValidationError{Reason: "empty input"}
	}

	var raws []rawMessage
	if err := json.Unmarshal([]byte(rawText), &raws); err != nil {
		return nil, &ValidationError{Reason: "malformed JSON"}
	}

	messages := make([]api.Message, 0, len(raws))
	for i, raw := range raws {
		msg, err := buildMessage(i, raw)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	ack, err := p.uploader.UploadMessages(ctx, messages)
	if err != nil {
		return nil, err
	}

	result := &Result{
		MessageCount:  len(messages),
		UniqueChatIDs: uniqueChatIDs(messages),
		Ack:           ack,
	}
	if len(messages) > 0 {
		result.ChatID = messages[0].ChatID
	}

	p.logger.Debug("transcript uploaded",
		zap.Int("messages", result.MessageCount),
		zap.Strings("chat_ids", result.UniqueChatIDs),
	)

	return result, nil
}

func buildMessage(index int, raw rawMessage) (api.Message, error) {
	missing := func(field string) (api.Message, error) {
		return api.Message{}, &ValidationError{
			Reason: fmt.Sprintf("message %d is missing %q", index, field),
		}
	}

	switch {
	case raw.MessageID == nil:
		return missing("message_id")
	case raw.Timestamp == nil:
		return missing("timestamp")
	case raw.Sender == nil:
		return missing("sender")
	case raw.Content == nil:
		return missing("content")
	case raw.ChatID == nil:
		return missing("chat_id")
	}

	return api.Message{
		MessageID: *raw.MessageID,
		Timestamp: normalizeTimestamp(*raw.Timestamp),
		Sender:    *raw.Sender,
		Content:   *raw.Content,
		ChatID:    *raw.ChatID,
	}, nil
}

// normalizeTimestamp re-serializes the provided timestamp as RFC3339
// UTC. Unparseable input yields the invalid-date marker rather than an
// error (see invalidDateMarker).
func normalizeTimestamp(value string) string {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return ts.UTC().Format(time.RFC3339)
		}
	}
	return invalidDateMarker
}

func uniqueChatIDs(messages []api.Message) []string {
	seen := make(map[string]bool, len(messages))
	var ids []string
	for _, msg := range messages {
		if !seen[msg.ChatID] {
			seen[msg.ChatID] = true
			ids = append(ids, msg.ChatID)
		}
	}
	return ids
}

// FormatForDisplay reformats valid JSON with two-space indentation for
// editing convenience. Invalid JSON comes back unchanged along with the
// parse error, so callers can keep showing what the user typed.
func FormatForDisplay(rawText string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(rawText), "", "  "); err != nil {
		return rawText, fmt.Errorf("invalid JSON, cannot format: %w", err)
	}
	return buf.String(), nil
}
