package consolecmder

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/LogicalGuy77/memcon/pkg/health"
	"github.com/LogicalGuy77/memcon/pkg/nav"
	"github.com/LogicalGuy77/memcon/pkg/projection"
	"github.com/LogicalGuy77/memcon/pkg/store"
	"github.com/LogicalGuy77/memcon/pkg/upload"
)

var _ = Describe("Console TUI helpers", func() {
	Describe("clamp", func() {
		It("keeps values within bounds", func() {
			Expect(clamp(3, 5)).To(Equal(3))
			Expect(clamp(-1, 5)).To(Equal(0))
			Expect(clamp(9, 5)).To(Equal(5))
		})

		It("collapses to zero when the upper bound is negative", func() {
			Expect(clamp(2, -1)).To(Equal(0))
		})
	})

	Describe("visibleRange", func() {
		It("shows everything when the list fits", func() {
			start, end := visibleRange(3, 1, 10)
			Expect(start).To(Equal(0))
			Expect(end).To(Equal(3))
		})

		It("centers the window on the cursor", func() {
			start, end := visibleRange(20, 10, 6)
			Expect(start).To(Equal(7))
			Expect(end).To(Equal(13))
		})

		It("clamps to the start", func() {
			start, end := visibleRange(20, 0, 6)
			Expect(start).To(Equal(0))
			Expect(end).To(Equal(6))
		})

		It("clamps to the end", func() {
			start, end := visibleRange(20, 19, 6)
			Expect(start).To(Equal(14))
			Expect(end).To(Equal(20))
		})

		It("handles empty lists", func() {
			start, end := visibleRange(0, 0, 6)
			Expect(start).To(Equal(0))
			Expect(end).To(Equal(0))
		})
	})

	Describe("renderHeaderLine", func() {
		It("right-aligns the second segment", func() {
			line := renderHeaderLine(20, "left", "right")
			Expect(line).To(HavePrefix("left"))
			Expect(line).To(HaveSuffix("right"))
			Expect(line).To(HaveLen(20))
		})

		It("degrades to a single spaced line when too narrow", func() {
			line := renderHeaderLine(8, "left", "right")
			Expect(line).To(Equal("left right"))
		})

		It("falls back to a default width before the first resize", func() {
			line := renderHeaderLine(0, "a", "b")
			Expect(line).To(HaveLen(80))
		})
	})

	Describe("cycleView", func() {
		It("wraps forward through the visible tabs", func() {
			model := consoleModel{}
			Expect(model.nav.Visible()).To(HaveLen(3))

			model.cycleView(1)
			Expect(model.nav.Active()).To(Equal(nav.ViewUpload))
			model.cycleView(1)
			Expect(model.nav.Active()).To(Equal(nav.ViewQuery))
			model.cycleView(1)
			Expect(model.nav.Active()).To(Equal(nav.ViewDashboard))
		})

		It("wraps backward from the first tab", func() {
			model := consoleModel{}
			model.cycleView(-1)
			Expect(model.nav.Active()).To(Equal(nav.ViewQuery))
		})

		It("includes chat-scoped views once a chat is selected", func() {
			model := consoleModel{}
			model.nav.SelectChat("chat-1")
			Expect(model.nav.Visible()).To(HaveLen(5))
			Expect(model.nav.Active()).To(Equal(nav.ViewChat))

			model.cycleView(1)
			Expect(model.nav.Active()).To(Equal(nav.ViewMemories))
			model.cycleView(1)
			Expect(model.nav.Active()).To(Equal(nav.ViewDashboard))
		})
	})

	Describe("listHeight", func() {
		It("falls back to a default before the first resize", func() {
			model := consoleModel{}
			Expect(model.listHeight()).To(Equal(12))
		})

		It("reserves room for the chrome", func() {
			model := consoleModel{height: 40}
			Expect(model.listHeight()).To(Equal(26))
		})

		It("never collapses below a usable minimum", func() {
			model := consoleModel{height: 10}
			Expect(model.listHeight()).To(Equal(4))
		})
	})

	Describe("upload completion", func() {
		It("selects the primary chat and moves to the chat view", func() {
			model := consoleModel{store: store.New(nil, nil)}

			updated, _ := model.Update(uploadDoneMsg{result: &upload.Result{
				MessageCount: 2,
				ChatID:       "chat-1",
			}})

			m := updated.(consoleModel)
			Expect(m.nav.Active()).To(Equal(nav.ViewChat))
			Expect(m.nav.SelectedChat()).To(Equal("chat-1"))
		})

		It("stays put when the batch carried no messages", func() {
			model := consoleModel{store: store.New(nil, nil)}

			updated, _ := model.Update(uploadDoneMsg{result: &upload.Result{}})

			m := updated.(consoleModel)
			Expect(m.nav.Active()).To(Equal(nav.ViewDashboard))
			Expect(m.nav.SelectedChat()).To(BeEmpty())
			Expect(m.nav.Visible()).To(HaveLen(3))
		})
	})

	Describe("newConsoleModel", func() {
		It("starts on the configured sort key", func() {
			model := newConsoleModel(nil, nil, health.NewMonitor(nil), nil, 0, projection.SortConfidence)
			Expect(projection.SortKeys[model.sortIndex]).To(Equal(projection.SortConfidence))
		})

		It("defaults to the first sort key for unknown values", func() {
			model := newConsoleModel(nil, nil, health.NewMonitor(nil), nil, 0, projection.SortKey("bogus"))
			Expect(model.sortIndex).To(Equal(0))
		})
	})
})
