package api

// Chat summarizes one conversation known to the memory service.
// Chats are only ever observed through ListChats; the client never
// creates or mutates them.
type Chat struct {
	ChatID       string `json:"chat_id"`
	MessageCount int    `json:"message_count"`
	LastMessage  string `json:"last_message"`
}

// Message is the wire format for one transcript message in an upload
// batch. All five fields are required by the service.
type Message struct {
	MessageID string `json:"message_id"`
	Timestamp string `json:"timestamp"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	ChatID    string `json:"chat_id"`
}

// Message sender values accepted by the service.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Memory is a structured fact the service extracted from a chat.
// Timestamps stay as wire strings; parsing happens at the display edge.
type Memory struct {
	MemoryID         string   `json:"memory_id"`
	ChatID           string   `json:"chat_id"`
	MemoryType       string   `json:"memory_type"`
	Content          string   `json:"content"`
	Confidence       float64  `json:"confidence"`
	ExtractionMethod string   `json:"extraction_method"`
	Reasoning        string   `json:"reasoning,omitempty"`
	SourceMessages   []string `json:"source_messages"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// Extraction methods reported by the service.
const (
	MethodLLM   = "llm"
	MethodRules = "rules"
)

// MemoryTypes is the set of memory types the service currently extracts,
// in display order.
var MemoryTypes = []string{
	"food_preference",
	"travel_preference",
	"personal_info",
	"delivery_instruction",
	"hobby_interest",
	"routine_timing",
}

// IsMemoryType reports whether name is one of the known memory types.
func IsMemoryType(name string) bool {
	for _, t := range MemoryTypes {
		if t == name {
			return true
		}
	}
	return false
}

// ExtractionResult is the one-shot summary returned by an extraction
// request. It is displayed once and never persisted.
type ExtractionResult struct {
	Created           int `json:"created"`
	Updated           int `json:"updated"`
	ConflictsResolved int `json:"conflicts_resolved"`
}

// QueryRequest is the body of a memory query. ChatID and MemoryTypes
// are omitted when unset; the service treats absent and null alike.
type QueryRequest struct {
	Query       string   `json:"query"`
	ChatID      string   `json:"chat_id,omitempty"`
	MemoryTypes []string `json:"memory_types,omitempty"`
}

// UploadAck is the server's acknowledgement of an upload batch. The
// service defines the full shape; the console only relies on Status.
type UploadAck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CleanupAck is the server's acknowledgement of a duplicate cleanup run.
type CleanupAck struct {
	Status  string `json:"status"`
	Removed int    `json:"removed,omitempty"`
}

type chatsResponse struct {
	Chats []Chat `json:"chats"`
}

type memoriesResponse struct {
	Memories []Memory `json:"memories"`
}

type memoryTypesResponse struct {
	MemoryTypes []string `json:"memory_types"`
}
