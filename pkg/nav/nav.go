// Package nav tracks which console view is active and which chat is
// selected. The chat-scoped views stay hidden and unreachable until a
// chat has been selected.
package nav

// View identifies one of the console's five views.
type View int

const (
	ViewDashboard View = iota
	ViewUpload
	ViewQuery
	ViewChat
	ViewMemories
)

// String returns the tab label.
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewUpload:
		return "Upload"
	case ViewQuery:
		return "Search"
	case ViewChat:
		return "Chat Analysis"
	case ViewMemories:
		return "Memories"
	default:
		return "Unknown"
	}
}

// ChatScoped reports whether the view only makes sense with a chat
// selected.
func (v View) ChatScoped() bool {
	return v == ViewChat || v == ViewMemories
}

// State is the console's navigation state. The zero value starts on the
// dashboard with nothing selected.
type State struct {
	view           View
	selectedChatID string
}

// Active returns the current view.
func (s *State) Active() View {
	return s.view
}

// SelectedChat returns the selected chat id, empty when none.
func (s *State) SelectedChat() string {
	return s.selectedChatID
}

// SetView switches to v. Chat-scoped views are refused while no chat is
// selected; the return value reports whether the switch happened.
func (s *State) SetView(v View) bool {
	if v.ChatScoped() && s.selectedChatID == "" {
		return false
	}
	s.view = v
	return true
}

// SelectChat records the selection and moves to the chat view. The
// caller is expected to kick off a memories load for id.
func (s *State) SelectChat(id string) {
	s.selectedChatID = id
	s.view = ViewChat
}

// Visible returns the tabs to offer, in display order. Chat-scoped tabs
// appear only once a chat is selected.
func (s *State) Visible() []View {
	views := []View{ViewDashboard, ViewUpload, ViewQuery}
	if s.selectedChatID != "" {
		views = append(views, ViewChat, ViewMemories)
	}
	return views
}
