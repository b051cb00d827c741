package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/LogicalGuy77/memcon/pkg/api"
)

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		handler  http.HandlerFunc
		received *http.Request
		body     []byte
	)

	BeforeEach(func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		}
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received = r
			body, _ = io.ReadAll(r.Body)
			handler(w, r)
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("CheckHealth", func() {
		It("succeeds on any 2xx", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}

			client := api.NewClient(server.URL)
			Expect(client.CheckHealth(context.Background())).To(Succeed())
			Expect(received.Method).To(Equal(http.MethodGet))
			Expect(received.URL.Path).To(Equal("/"))
		})

		It("fails with the status on non-2xx", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
			}

			client := api.NewClient(server.URL)
			err := client.CheckHealth(context.Background())

			var reqErr *api.RequestError
			Expect(errors.As(err, &reqErr)).To(BeTrue())
			Expect(reqErr.Status).To(Equal(http.StatusServiceUnavailable))
			Expect(reqErr.Message).To(Equal("down for maintenance"))
		})

		It("reports transport failures with status zero", func() {
			client := api.NewClient("http://127.0.0.1:1")
			err := client.CheckHealth(context.Background())

			var reqErr *api.RequestError
			Expect(errors.As(err, &reqErr)).To(BeTrue())
			Expect(reqErr.Status).To(BeZero())
			Expect(reqErr.Unreachable()).To(BeTrue())
		})
	})

	Describe("ListChats", func() {
		It("unwraps the chats array", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"chats":[
					{"chat_id":"c1","message_count":6,"last_message":"2024-01-15T10:32:00Z"},
					{"chat_id":"c2","message_count":2,"last_message":"2024-01-16T09:00:00Z"}
				]}`))
			}

			client := api.NewClient(server.URL)
			chats, err := client.ListChats(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(received.URL.Path).To(Equal("/api/chats"))
			Expect(chats).To(HaveLen(2))
			Expect(chats[0].ChatID).To(Equal("c1"))
			Expect(chats[0].MessageCount).To(Equal(6))
		})

		It("sends content type and a request id", func() {
			client := api.NewClient(server.URL)
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"chats":[]}`))
			}

			_, err := client.ListChats(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(received.Header.Get("Content-Type")).To(Equal("application/json"))
			Expect(received.Header.Get("X-Request-ID")).NotTo(BeEmpty())
		})
	})

	Describe("ListMemories", func() {
		It("hits the per-chat path and decodes memories", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"memories":[
					{"memory_id":"m1","chat_id":"c1","memory_type":"food_preference",
					 "content":"vegetarian","confidence":0.95,"extraction_method":"llm",
					 "source_messages":["msg_003"],
					 "created_at":"2024-01-15T11:00:00Z","updated_at":"2024-01-15T11:00:00Z"}
				]}`))
			}

			client := api.NewClient(server.URL)
			memories, err := client.ListMemories(context.Background(), "c1")
			Expect(err).NotTo(HaveOccurred())
			Expect(received.URL.Path).To(Equal("/api/memories/c1"))
			Expect(memories).To(HaveLen(1))
			Expect(memories[0].MemoryType).To(Equal("food_preference"))
			Expect(memories[0].Confidence).To(BeNumerically("~", 0.95, 1e-9))
		})

		It("surfaces unknown chats as a plain request error", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "chat not found", http.StatusNotFound)
			}

			client := api.NewClient(server.URL)
			_, err := client.ListMemories(context.Background(), "ghost")

			var reqErr *api.RequestError
			Expect(errors.As(err, &reqErr)).To(BeTrue())
			Expect(reqErr.NotFound()).To(BeTrue())
		})
	})

	Describe("ExtractMemories", func() {
		It("posts and decodes the extraction summary", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"created":3,"updated":1,"conflicts_resolved":2}`))
			}

			client := api.NewClient(server.URL)
			result, err := client.ExtractMemories(context.Background(), "c1")
			Expect(err).NotTo(HaveOccurred())
			Expect(received.Method).To(Equal(http.MethodPost))
			Expect(received.URL.Path).To(Equal("/api/memories/extract/c1"))
			Expect(result.Created).To(Equal(3))
			Expect(result.Updated).To(Equal(1))
			Expect(result.ConflictsResolved).To(Equal(2))
		})
	})

	Describe("QueryMemories", func() {
		It("omits unset filters from the request body", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"memories":[]}`))
			}

			client := api.NewClient(server.URL)
			_, err := client.QueryMemories(context.Background(), api.QueryRequest{Query: "vegetarian"})
			Expect(err).NotTo(HaveOccurred())

			var parsed map[string]any
			Expect(json.Unmarshal(body, &parsed)).To(Succeed())
			Expect(parsed["query"]).To(Equal("vegetarian"))
			Expect(parsed).NotTo(HaveKey("chat_id"))
			Expect(parsed).NotTo(HaveKey("memory_types"))
		})

		It("carries chat and type filters when set", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"memories":[]}`))
			}

			client := api.NewClient(server.URL)
			_, err := client.QueryMemories(context.Background(), api.QueryRequest{
				Query:       "address",
				ChatID:      "c1",
				MemoryTypes: []string{"personal_info"},
			})
			Expect(err).NotTo(HaveOccurred())

			var parsed map[string]any
			Expect(json.Unmarshal(body, &parsed)).To(Succeed())
			Expect(parsed["chat_id"]).To(Equal("c1"))
			Expect(parsed["memory_types"]).To(ConsistOf("personal_info"))
		})
	})

	Describe("UploadMessages", func() {
		It("sends the bare message array", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status":"accepted"}`))
			}

			client := api.NewClient(server.URL)
			ack, err := client.UploadMessages(context.Background(), []api.Message{
				{MessageID: "msg_001", Timestamp: "2024-01-15T10:30:00Z", Sender: "user", Content: "hi", ChatID: "c1"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(received.URL.Path).To(Equal("/api/chat/upload"))
			Expect(ack.Status).To(Equal("accepted"))

			var parsed []map[string]any
			Expect(json.Unmarshal(body, &parsed)).To(Succeed())
			Expect(parsed).To(HaveLen(1))
			Expect(parsed[0]["message_id"]).To(Equal("msg_001"))
		})
	})

	Describe("ListMemoryTypes", func() {
		It("accepts a bare array", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`["food_preference","personal_info"]`))
			}

			client := api.NewClient(server.URL)
			names, err := client.ListMemoryTypes(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"food_preference", "personal_info"}))
		})

		It("accepts the wrapper object", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"memory_types":["routine_timing"]}`))
			}

			client := api.NewClient(server.URL)
			names, err := client.ListMemoryTypes(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"routine_timing"}))
		})
	})

	Describe("CleanupMemories", func() {
		It("posts to the cleanup path", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status":"ok","removed":4}`))
			}

			client := api.NewClient(server.URL)
			ack, err := client.CleanupMemories(context.Background(), "c1")
			Expect(err).NotTo(HaveOccurred())
			Expect(received.URL.Path).To(Equal("/api/memories/cleanup/c1"))
			Expect(ack.Removed).To(Equal(4))
		})
	})
})

var _ = Describe("IsMemoryType", func() {
	It("recognizes the six known types", func() {
		for _, name := range api.MemoryTypes {
			Expect(api.IsMemoryType(name)).To(BeTrue(), name)
		}
	})

	It("rejects anything else", func() {
		Expect(api.IsMemoryType("mood")).To(BeFalse())
		Expect(api.IsMemoryType("")).To(BeFalse())
	})
})
