package store_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/store"
)

// fakeRemote scripts per-call results for the store's remote dependency.
type fakeRemote struct {
	chats       []api.Chat
	chatsErr    error
	memories    []api.Memory
	memoriesErr error
	extract     *api.ExtractionResult
	extractErr  error

	listMemoriesCalls int
	extractCalls      int
}

func (f *fakeRemote) ListChats(_ context.Context) ([]api.Chat, error) {
	return f.chats, f.chatsErr
}

func (f *fakeRemote) ListMemories(_ context.Context, _ string) ([]api.Memory, error) {
	f.listMemoriesCalls++
	return f.memories, f.memoriesErr
}

func (f *fakeRemote) ExtractMemories(_ context.Context, _ string) (*api.ExtractionResult, error) {
	f.extractCalls++
	return f.extract, f.extractErr
}

var _ = Describe("Store", func() {
	var (
		remote *fakeRemote
		s      *store.Store
		ctx    context.Context
	)

	BeforeEach(func() {
		remote = &fakeRemote{}
		s = store.New(remote, nil)
		ctx = context.Background()
	})

	Describe("LoadChats", func() {
		It("replaces the list wholesale", func() {
			remote.chats = []api.Chat{{ChatID: "a"}, {ChatID: "b"}}
			Expect(s.LoadChats(ctx)).To(Succeed())
			Expect(s.Chats()).To(HaveLen(2))

			remote.chats = []api.Chat{{ChatID: "c"}}
			Expect(s.LoadChats(ctx)).To(Succeed())

			chats := s.Chats()
			Expect(chats).To(HaveLen(1))
			Expect(chats[0].ChatID).To(Equal("c"))
		})

		It("keeps the previous list and flags an error on failure", func() {
			remote.chats = []api.Chat{{ChatID: "a"}, {ChatID: "b"}, {ChatID: "c"}}
			Expect(s.LoadChats(ctx)).To(Succeed())

			remote.chatsErr = &api.RequestError{Status: 0, Message: "connection refused"}
			Expect(s.LoadChats(ctx)).NotTo(Succeed())

			Expect(s.Chats()).To(HaveLen(3))
			Expect(s.Err()).To(Equal("Failed to load chats"))
		})

		It("clears the loading flag when done", func() {
			remote.chats = []api.Chat{}
			Expect(s.LoadChats(ctx)).To(Succeed())
			Expect(s.Loading()).To(BeFalse())
		})
	})

	Describe("LoadMemories", func() {
		It("replaces the memories list", func() {
			remote.memories = []api.Memory{{MemoryID: "m1"}}
			Expect(s.LoadMemories(ctx, "c1")).To(Succeed())
			Expect(s.Memories()).To(HaveLen(1))
		})

		It("keeps prior memories on failure", func() {
			remote.memories = []api.Memory{{MemoryID: "m1"}, {MemoryID: "m2"}}
			Expect(s.LoadMemories(ctx, "c1")).To(Succeed())

			remote.memoriesErr = &api.RequestError{Status: 500, Message: "oops"}
			Expect(s.LoadMemories(ctx, "c1")).NotTo(Succeed())

			Expect(s.Memories()).To(HaveLen(2))
			Expect(s.Err()).To(Equal("Failed to load memories"))
		})
	})

	Describe("ExtractAndReload", func() {
		It("returns the summary and refreshes memories", func() {
			remote.extract = &api.ExtractionResult{Created: 2, Updated: 1, ConflictsResolved: 1}
			remote.memories = []api.Memory{{MemoryID: "m1"}, {MemoryID: "m2"}}

			result, err := s.ExtractAndReload(ctx, "c1")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Created).To(Equal(2))
			Expect(remote.listMemoriesCalls).To(Equal(1))
			Expect(s.Memories()).To(HaveLen(2))
		})

		It("does not reload when extraction fails", func() {
			remote.extractErr = &api.RequestError{Status: 502, Message: "bad gateway"}

			result, err := s.ExtractAndReload(ctx, "c1")
			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
			Expect(remote.listMemoriesCalls).To(BeZero())
			Expect(s.Err()).To(Equal("Failed to extract memories"))
		})

		It("still returns the summary when only the reload fails", func() {
			remote.extract = &api.ExtractionResult{Created: 1}
			remote.memoriesErr = errors.New("reload failed")

			result, err := s.ExtractAndReload(ctx, "c1")
			Expect(err).To(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.Created).To(Equal(1))
		})
	})

	Describe("errors", func() {
		It("stays visible until cleared", func() {
			remote.chatsErr = errors.New("down")
			Expect(s.LoadChats(ctx)).NotTo(Succeed())
			Expect(s.Err()).NotTo(BeEmpty())

			s.ClearErr()
			Expect(s.Err()).To(BeEmpty())
		})
	})

	Describe("snapshots", func() {
		It("hands out copies, not the backing arrays", func() {
			remote.chats = []api.Chat{{ChatID: "a"}}
			Expect(s.LoadChats(ctx)).To(Succeed())

			snapshot := s.Chats()
			snapshot[0].ChatID = "mutated"

			Expect(s.Chats()[0].ChatID).To(Equal("a"))
		})
	})
})
