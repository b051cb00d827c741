// Package projection derives view-specific subsets of the store's lists:
// text and type filters, sort orders, search-term highlighting, and the
// dashboard roll-up. Every function is pure; inputs are never mutated
// and results are always fresh slices.
package projection

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/LogicalGuy77/memcon/pkg/api"
)

// SortKey selects the memory sort order. All keys sort descending:
// highest confidence or most recent timestamp first.
type SortKey string

const (
	SortConfidence SortKey = "confidence"
	SortCreatedAt  SortKey = "created_at"
	SortUpdatedAt  SortKey = "updated_at"
)

// SortKeys lists the supported orders, default first.
var SortKeys = []SortKey{SortUpdatedAt, SortCreatedAt, SortConfidence}

// filterByText keeps the items whose selected field contains term,
// case-insensitively. An empty term matches everything.
func filterByText[T any](items []T, field func(T) string, term string) []T {
	out := make([]T, 0, len(items))
	needle := strings.ToLower(term)
	for _, item := range items {
		if needle == "" || strings.Contains(strings.ToLower(field(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}

// ChatsByID filters chats whose id contains term.
func ChatsByID(chats []api.Chat, term string) []api.Chat {
	return filterByText(chats, func(c api.Chat) string { return c.ChatID }, term)
}

// MemoriesByContent filters memories whose content contains term.
func MemoriesByContent(memories []api.Memory, term string) []api.Memory {
	return filterByText(memories, func(m api.Memory) string { return m.Content }, term)
}

// MemoriesByTypes keeps memories whose type is in selected. An empty
// selection means no filter, not "match nothing".
func MemoriesByTypes(memories []api.Memory, selected []string) []api.Memory {
	if len(selected) == 0 {
		out := make([]api.Memory, len(memories))
		copy(out, memories)
		return out
	}

	wanted := make(map[string]bool, len(selected))
	for _, t := range selected {
		wanted[t] = true
	}

	out := make([]api.Memory, 0, len(memories))
	for _, m := range memories {
		if wanted[m.MemoryType] {
			out = append(out, m)
		}
	}
	return out
}

// SortMemories returns a new slice ordered by key. The sort is stable:
// equal keys keep their prior relative order, so sorting twice by the
// same key changes nothing.
func SortMemories(memories []api.Memory, key SortKey) []api.Memory {
	out := make([]api.Memory, len(memories))
	copy(out, memories)

	switch key {
	case SortConfidence:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Confidence > out[j].Confidence
		})
	case SortCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			return parseWhen(out[i].CreatedAt).After(parseWhen(out[j].CreatedAt))
		})
	default: // SortUpdatedAt
		sort.SliceStable(out, func(i, j int) bool {
			return parseWhen(out[i].UpdatedAt).After(parseWhen(out[j].UpdatedAt))
		})
	}

	return out
}

// parseWhen parses a wire timestamp leniently; anything unparseable
// gets the zero time and therefore sorts last.
func parseWhen(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Segment is one run of text, either matching the search term or not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into segments alternating around
// case-insensitive literal occurrences of term. Regexp metacharacters
// in term are escaped, so the term is never treated as a pattern. An
// empty term returns the text as a single non-match segment.
func Highlight(text, term string) []Segment {
	if strings.TrimSpace(term) == "" {
		return []Segment{{Text: text}}
	}

	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	prev := 0
	for _, m := range matches {
		if m[0] > prev {
			segments = append(segments, Segment{Text: text[prev:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Match: true})
		prev = m[1]
	}
	if prev < len(text) {
		segments = append(segments, Segment{Text: text[prev:]})
	}

	return segments
}

// ChatStats is the dashboard roll-up over the chats list.
type ChatStats struct {
	TotalChats    int
	TotalMessages int
	AvgMessages   int
}

// Summarize computes the dashboard stat cards. The average rounds to
// the nearest whole message.
func Summarize(chats []api.Chat) ChatStats {
	stats := ChatStats{TotalChats: len(chats)}
	for _, chat := range chats {
		stats.TotalMessages += chat.MessageCount
	}
	if stats.TotalChats > 0 {
		stats.AvgMessages = (stats.TotalMessages + stats.TotalChats/2) / stats.TotalChats
	}
	return stats
}

// TypeLabel renders a memory type for display: "food_preference"
// becomes "Food Preference".
func TypeLabel(memoryType string) string {
	words := strings.Split(memoryType, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
