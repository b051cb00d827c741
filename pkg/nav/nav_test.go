package nav_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/LogicalGuy77/memcon/pkg/nav"
)

var _ = Describe("State", func() {
	It("starts on the dashboard with nothing selected", func() {
		var s nav.State
		Expect(s.Active()).To(Equal(nav.ViewDashboard))
		Expect(s.SelectedChat()).To(BeEmpty())
	})

	It("refuses chat-scoped views while nothing is selected", func() {
		var s nav.State
		Expect(s.SetView(nav.ViewChat)).To(BeFalse())
		Expect(s.SetView(nav.ViewMemories)).To(BeFalse())
		Expect(s.Active()).To(Equal(nav.ViewDashboard))

		Expect(s.SetView(nav.ViewQuery)).To(BeTrue())
		Expect(s.Active()).To(Equal(nav.ViewQuery))
	})

	It("selecting a chat moves to the chat view", func() {
		var s nav.State
		s.SelectChat("chat_demo_001")
		Expect(s.Active()).To(Equal(nav.ViewChat))
		Expect(s.SelectedChat()).To(Equal("chat_demo_001"))

		Expect(s.SetView(nav.ViewMemories)).To(BeTrue())
		Expect(s.Active()).To(Equal(nav.ViewMemories))
	})

	It("hides chat-scoped tabs until a chat is selected", func() {
		var s nav.State
		Expect(s.Visible()).To(Equal([]nav.View{nav.ViewDashboard, nav.ViewUpload, nav.ViewQuery}))

		s.SelectChat("c1")
		Expect(s.Visible()).To(HaveLen(5))
		Expect(s.Visible()[3]).To(Equal(nav.ViewChat))
		Expect(s.Visible()[4]).To(Equal(nav.ViewMemories))
	})
})

var _ = Describe("View", func() {
	It("labels the tabs", func() {
		Expect(nav.ViewDashboard.String()).To(Equal("Dashboard"))
		Expect(nav.ViewQuery.String()).To(Equal("Search"))
	})

	It("knows which views need a chat", func() {
		Expect(nav.ViewChat.ChatScoped()).To(BeTrue())
		Expect(nav.ViewMemories.ChatScoped()).To(BeTrue())
		Expect(nav.ViewUpload.ChatScoped()).To(BeFalse())
	})
})
