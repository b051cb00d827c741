// Package store holds the console's authoritative copies of the chat
// list and the selected chat's memories. It is the single writer for
// both lists; views read snapshots and derive projections from them.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/LogicalGuy77/memcon/pkg/api"
)

// Remote is the slice of the service client the store depends on.
type Remote interface {
	ListChats(ctx context.Context) ([]api.Chat, error)
	ListMemories(ctx context.Context, chatID string) ([]api.Memory, error)
	ExtractMemories(ctx context.Context, chatID string) (*api.ExtractionResult, error)
}

// Store owns the chats and memories lists. Loads replace a list
// wholesale on success and leave the previous list intact on failure,
// so a transient network blip never blanks the view.
//
// Overlapping loads are last-writer-wins on completion order: the store
// does not sequence concurrent calls, callers disable re-trigger while
// loading.
type Store struct {
	remote Remote
	logger *zap.Logger

	mu       sync.Mutex
	chats    []api.Chat
	memories []api.Memory
	loading  bool
	lastErr  string
}

// New creates an empty store over the given remote.
func New(remote Remote, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{remote: remote, logger: logger}
}

// LoadChats fetches and replaces the chats list. On failure the previous
// list is kept and a user-visible error is recorded.
func (s *Store) LoadChats(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	chats, err := s.remote.ListChats(ctx)
	if err != nil {
		s.setErr("Failed to load chats")
		s.logger.Warn("loading chats failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.chats = chats
	s.mu.Unlock()

	return nil
}

// LoadMemories fetches and replaces the memories list for chatID. The
// store does not remember which chat the list belongs to; coordinating
// that with the selected chat is the navigation layer's job.
func (s *Store) LoadMemories(ctx context.Context, chatID string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	memories, err := s.remote.ListMemories(ctx, chatID)
	if err != nil {
		s.setErr("Failed to load memories")
		s.logger.Warn("loading memories failed", zap.String("chat_id", chatID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.memories = memories
	s.mu.Unlock()

	return nil
}

// ExtractAndReload triggers extraction for chatID and, only if that
// succeeded, reloads the memories list. The extraction summary goes
// back to the caller for one-shot display; an extraction failure
// propagates without touching the held memories.
func (s *Store) ExtractAndReload(ctx context.Context, chatID string) (*api.ExtractionResult, error) {
	s.setLoading(true)

	result, err := s.remote.ExtractMemories(ctx, chatID)
	if err != nil {
		s.setErr("Failed to extract memories")
		s.setLoading(false)
		s.logger.Warn("extraction failed", zap.String("chat_id", chatID), zap.Error(err))
		return nil, err
	}

	s.setLoading(false)

	if err := s.LoadMemories(ctx, chatID); err != nil {
		// Extraction itself succeeded; the summary is still worth showing.
		return result, err
	}

	return result, nil
}

// Chats returns a copy of the held chats list.
func (s *Store) Chats() []api.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

// Memories returns a copy of the held memories list.
func (s *Store) Memories() []api.Memory {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Memory, len(s.memories))
	copy(out, s.memories)
	return out
}

// Loading reports whether any store operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last user-visible error message, empty when the most
// recent operation succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearErr drops the stored error, e.g. after a successful upload.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}
