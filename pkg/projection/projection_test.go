package projection_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/projection"
)

var _ = Describe("text filters", func() {
	chats := []api.Chat{
		{ChatID: "chat_demo_001"},
		{ChatID: "chat_work_002"},
		{ChatID: "SUPPORT_003"},
	}

	It("matches case-insensitive substrings", func() {
		Expect(projection.ChatsByID(chats, "DEMO")).To(HaveLen(1))
		Expect(projection.ChatsByID(chats, "support")).To(HaveLen(1))
		Expect(projection.ChatsByID(chats, "chat_")).To(HaveLen(2))
	})

	It("matches everything on an empty term", func() {
		Expect(projection.ChatsByID(chats, "")).To(HaveLen(3))
	})

	It("never mutates the input", func() {
		memories := []api.Memory{{Content: "loves Italian food"}, {Content: "lives in New York"}}
		_ = projection.MemoriesByContent(memories, "italian")
		Expect(memories[0].Content).To(Equal("loves Italian food"))
		Expect(memories).To(HaveLen(2))
	})
})

var _ = Describe("MemoriesByTypes", func() {
	memories := []api.Memory{
		{MemoryID: "m1", MemoryType: "food_preference"},
		{MemoryID: "m2", MemoryType: "personal_info"},
		{MemoryID: "m3", MemoryType: "travel_preference"},
	}

	It("returns exactly the input for an empty selection", func() {
		out := projection.MemoriesByTypes(memories, nil)
		Expect(out).To(HaveLen(3))
		Expect(out[0].MemoryID).To(Equal("m1"))
		Expect(out[2].MemoryID).To(Equal("m3"))
	})

	It("keeps only the selected types", func() {
		out := projection.MemoriesByTypes(memories, []string{"food_preference", "personal_info"})
		Expect(out).To(HaveLen(2))
		for _, m := range out {
			Expect(m.MemoryType).NotTo(Equal("travel_preference"))
		}
	})
})

var _ = Describe("SortMemories", func() {
	memories := []api.Memory{
		{MemoryID: "low", Confidence: 0.4, CreatedAt: "2024-01-10T08:00:00Z", UpdatedAt: "2024-01-20T08:00:00Z"},
		{MemoryID: "high", Confidence: 0.9, CreatedAt: "2024-01-12T08:00:00Z", UpdatedAt: "2024-01-18T08:00:00Z"},
		{MemoryID: "mid-a", Confidence: 0.7, CreatedAt: "2024-01-11T08:00:00Z", UpdatedAt: "2024-01-19T08:00:00Z"},
		{MemoryID: "mid-b", Confidence: 0.7, CreatedAt: "2024-01-09T08:00:00Z", UpdatedAt: "2024-01-17T08:00:00Z"},
	}

	It("sorts confidence descending", func() {
		out := projection.SortMemories(memories, projection.SortConfidence)
		Expect(out[0].MemoryID).To(Equal("high"))
		Expect(out[3].MemoryID).To(Equal("low"))
	})

	It("is stable on ties", func() {
		out := projection.SortMemories(memories, projection.SortConfidence)
		Expect(out[1].MemoryID).To(Equal("mid-a"))
		Expect(out[2].MemoryID).To(Equal("mid-b"))
	})

	It("is idempotent", func() {
		once := projection.SortMemories(memories, projection.SortUpdatedAt)
		twice := projection.SortMemories(once, projection.SortUpdatedAt)
		Expect(twice).To(Equal(once))
	})

	It("sorts timestamps most recent first", func() {
		out := projection.SortMemories(memories, projection.SortCreatedAt)
		Expect(out[0].MemoryID).To(Equal("high"))
		Expect(out[3].MemoryID).To(Equal("mid-b"))

		out = projection.SortMemories(memories, projection.SortUpdatedAt)
		Expect(out[0].MemoryID).To(Equal("low"))
	})

	It("sorts unparseable timestamps last", func() {
		withBad := append([]api.Memory{{MemoryID: "bad", UpdatedAt: "Invalid Date"}}, memories...)
		out := projection.SortMemories(withBad, projection.SortUpdatedAt)
		Expect(out[len(out)-1].MemoryID).To(Equal("bad"))
	})

	It("does not reorder the input slice", func() {
		_ = projection.SortMemories(memories, projection.SortConfidence)
		Expect(memories[0].MemoryID).To(Equal("low"))
	})
})

var _ = Describe("Highlight", func() {
	It("returns one unsplit segment for an empty term", func() {
		segments := projection.Highlight("any text at all", "")
		Expect(segments).To(HaveLen(1))
		Expect(segments[0].Text).To(Equal("any text at all"))
		Expect(segments[0].Match).To(BeFalse())
	})

	It("splits around case-insensitive occurrences", func() {
		segments := projection.Highlight("Vegetarian, loves vegetarian food", "vegetarian")
		Expect(segments).To(Equal([]projection.Segment{
			{Text: "Vegetarian", Match: true},
			{Text: ", loves "},
			{Text: "vegetarian", Match: true},
			{Text: " food"},
		}))
	})

	It("treats regexp metacharacters literally", func() {
		segments := projection.Highlight("price (approx.) is $5", "(approx.)")
		Expect(segments).To(Equal([]projection.Segment{
			{Text: "price "},
			{Text: "(approx.)", Match: true},
			{Text: " is $5"},
		}))
	})

	It("returns one segment when nothing matches", func() {
		segments := projection.Highlight("no hits here", "vegetarian")
		Expect(segments).To(HaveLen(1))
		Expect(segments[0].Match).To(BeFalse())
	})
})

var _ = Describe("Summarize", func() {
	It("rolls up totals and the rounded average", func() {
		stats := projection.Summarize([]api.Chat{
			{ChatID: "a", MessageCount: 6},
			{ChatID: "b", MessageCount: 3},
			{ChatID: "c", MessageCount: 2},
		})
		Expect(stats.TotalChats).To(Equal(3))
		Expect(stats.TotalMessages).To(Equal(11))
		Expect(stats.AvgMessages).To(Equal(4))
	})

	It("handles an empty list", func() {
		stats := projection.Summarize(nil)
		Expect(stats.TotalChats).To(BeZero())
		Expect(stats.AvgMessages).To(BeZero())
	})
})

var _ = Describe("TypeLabel", func() {
	It("title-cases underscore-separated types", func() {
		Expect(projection.TypeLabel("food_preference")).To(Equal("Food Preference"))
		Expect(projection.TypeLabel("routine_timing")).To(Equal("Routine Timing"))
		Expect(projection.TypeLabel("llm")).To(Equal("Llm"))
	})
})
