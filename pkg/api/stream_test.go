package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// newStreamServer serves the given raw SSE events for any chat request,
// flushing after each one to exercise chunked delivery.
func newStreamServer(events ...string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		flusher, ok := w.(http.Flusher)
		Expect(ok).To(BeTrue())

		for _, event := range events {
			fmt.Fprint(w, event)
			flusher.Flush()
		}
	}))
}

var _ = Describe("Chat streaming", func() {
	var server *httptest.Server

	AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	Context("with a complete thinking and response stream", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"phase_change\",\"phase\":\"thinking\"}\n\n",
				"data: {\"type\":\"thinking\",\"content\":\"Looking at the files\"}\n\n",
				"data: {\"type\":\"thinking\",\"content\":\" in this bucket.\"}\n\n",
				"data: {\"type\":\"phase_change\",\"phase\":\"response\"}\n\n",
				"data: {\"type\":\"response\",\"content\":\"The answer \"}\n\n",
				"data: {\"type\":\"response\",\"content\":\"is 42.\"}\n\n",
				"data: {\"type\":\"done\",\"message\":\"The answer is 42.\",\"sources\":[{\"type\":\"chunk\",\"file_id\":\"f1\",\"file_name\":\"notes.md\"}],\"conversation_id\":\"conv-1\",\"thinking\":null,\"file_draft\":null}\n\n",
			)
		})

		It("reconciles the done event into the result", func() {
			client := New(server.URL, WithToken("tok"))

			res, err := client.Chat(context.Background(), "b1", ChatOptions{Message: "what is the answer?"})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Done).To(BeTrue())
			Expect(res.Message).To(Equal("The answer is 42."))
			Expect(res.Thinking).To(Equal("Looking at the files in this bucket."))
			Expect(res.ConversationID).To(Equal("conv-1"))
			Expect(res.Sources).To(HaveLen(1))
			Expect(res.Sources[0].FileName).To(Equal("notes.md"))
			Expect(res.FileDraft).To(BeNil())
		})

		It("dispatches every event to the callback in order", func() {
			client := New(server.URL)

			var types []EventType
			_, err := client.Chat(context.Background(), "b1", ChatOptions{
				Message: "hi",
				OnEvent: func(ev StreamEvent) error {
					types = append(types, ev.Type)
					return nil
				},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(types).To(Equal([]EventType{
				EventPhaseChange,
				EventThinking,
				EventThinking,
				EventPhaseChange,
				EventResponse,
				EventResponse,
				EventDone,
			}))
		})

		It("aborts when the callback returns an error", func() {
			client := New(server.URL)

			wantErr := errors.New("stop here")
			_, err := client.Chat(context.Background(), "b1", ChatOptions{
				Message: "hi",
				OnEvent: func(ev StreamEvent) error {
					if ev.Type == EventResponse {
						return wantErr
					}
					return nil
				},
			})
			Expect(err).To(MatchError(wantErr))
		})
	})

	Context("with legacy content events", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"content\",\"content\":\"Hello \"}\n\n",
				"data: {\"type\":\"content\",\"content\":\"there.\"}\n\n",
				"data: {\"type\":\"done\",\"message\":\"\",\"sources\":[],\"conversation_id\":\"conv-2\"}\n\n",
			)
		})

		It("treats content as response and keeps the accumulated text", func() {
			client := New(server.URL)

			var types []EventType
			res, err := client.Chat(context.Background(), "b1", ChatOptions{
				Message: "hi",
				OnEvent: func(ev StreamEvent) error {
					types = append(types, ev.Type)
					return nil
				},
			})
			Expect(err).NotTo(HaveOccurred())

			// An empty done message falls back to the streamed chunks.
			Expect(res.Message).To(Equal("Hello there."))
			Expect(types).To(ContainElement(EventResponse))
			Expect(types).NotTo(ContainElement(EventContent))
		})
	})

	Context("when the done event carries thinking but none streamed", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"response\",\"content\":\"Short answer.\"}\n\n",
				"data: {\"type\":\"done\",\"message\":\"Short answer.\",\"sources\":[],\"conversation_id\":\"conv-3\",\"thinking\":\"Analyzed the question directly.\"}\n\n",
			)
		})

		It("seeds thinking from the done event", func() {
			client := New(server.URL)

			res, err := client.Chat(context.Background(), "b1", ChatOptions{Message: "hi"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Thinking).To(Equal("Analyzed the question directly."))
		})
	})

	Context("when thinking streamed and done also carries thinking", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"thinking\",\"content\":\"streamed reasoning\"}\n\n",
				"data: {\"type\":\"done\",\"message\":\"ok\",\"sources\":[],\"conversation_id\":\"c\",\"thinking\":\"server-side summary\"}\n\n",
			)
		})

		It("keeps the streamed thinking", func() {
			client := New(server.URL)

			res, err := client.Chat(context.Background(), "b1", ChatOptions{Message: "hi"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Thinking).To(Equal("streamed reasoning"))
		})
	})

	Context("with a file draft turn", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"done\",\"message\":\"Draft ready.\",\"sources\":[],\"conversation_id\":\"conv-4\",\"file_draft\":{\"response\":\"Draft ready.\",\"file_name\":\"summary.md\",\"file_content\":\"# Summary\"}}\n\n",
			)
		})

		It("surfaces the drafted file", func() {
			client := New(server.URL)

			res, err := client.Chat(context.Background(), "b1", ChatOptions{
				Message: "draft a summary",
				Mode:    "file_draft",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.FileDraft).NotTo(BeNil())
			Expect(res.FileDraft.FileName).To(Equal("summary.md"))
			Expect(res.FileDraft.FileContent).To(Equal("# Summary"))
		})
	})

	Context("when the server sends an error event", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"response\",\"content\":\"partial\"}\n\n",
				"data: {\"type\":\"error\",\"error\":\"API quota exceeded\"}\n\n",
			)
		})

		It("returns a ServerError with the server's message", func() {
			client := New(server.URL)

			_, err := client.Chat(context.Background(), "b1", ChatOptions{Message: "hi"})

			var serverErr *ServerError
			Expect(errors.As(err, &serverErr)).To(BeTrue())
			Expect(serverErr.Message).To(Equal("API quota exceeded"))
		})

		It("does not dispatch the error event to the callback", func() {
			client := New(server.URL)

			var types []EventType
			_, err := client.Chat(context.Background(), "b1", ChatOptions{
				Message: "hi",
				OnEvent: func(ev StreamEvent) error {
					types = append(types, ev.Type)
					return nil
				},
			})
			Expect(err).To(HaveOccurred())
			Expect(types).To(Equal([]EventType{EventResponse}))
		})
	})

	Context("when the stream ends without a done event", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"thinking\",\"content\":\"working on it\"}\n\n",
				"data: {\"type\":\"response\",\"content\":\"Partial ans\"}\n\n",
			)
		})

		It("returns what streamed with Done false", func() {
			client := New(server.URL)

			res, err := client.Chat(context.Background(), "b1", ChatOptions{
				Message:        "hi",
				ConversationID: "conv-prev",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Done).To(BeFalse())
			Expect(res.Message).To(Equal("Partial ans"))
			Expect(res.Thinking).To(Equal("working on it"))
			// The request's conversation id survives when no done arrives.
			Expect(res.ConversationID).To(Equal("conv-prev"))
			Expect(res.Sources).NotTo(BeNil())
			Expect(res.Sources).To(BeEmpty())
		})
	})

	Context("with malformed lines between valid events", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"response\",\"content\":\"Good \"}\n\n",
				"data: this is not json\n\n",
				"data: {broken\n\n",
				"data: {\"type\":\"response\",\"content\":\"morning.\"}\n\n",
				"data: {\"type\":\"done\",\"message\":\"\",\"sources\":[],\"conversation_id\":\"c\"}\n\n",
			)
		})

		It("skips them without failing the stream", func() {
			client := New(server.URL)

			res, err := client.Chat(context.Background(), "b1", ChatOptions{Message: "hi"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Message).To(Equal("Good morning."))
			Expect(res.Done).To(BeTrue())
		})
	})

	Context("with a searching phase", func() {
		BeforeEach(func() {
			server = newStreamServer(
				"data: {\"type\":\"searching\",\"keywords\":[\"go 1.25\",\"release date\"]}\n\n",
				"data: {\"type\":\"response\",\"content\":\"Released in August.\"}\n\n",
				"data: {\"type\":\"done\",\"message\":\"Released in August.\",\"sources\":[{\"type\":\"web\",\"url\":\"https://go.dev\",\"domain\":\"go.dev\",\"title\":\"Go\"}],\"conversation_id\":\"c\"}\n\n",
			)
		})

		It("reports the keywords and keeps web sources", func() {
			client := New(server.URL)

			var keywords []string
			res, err := client.Chat(context.Background(), "b1", ChatOptions{
				Message: "when was go 1.25 released?",
				OnEvent: func(ev StreamEvent) error {
					if ev.Type == EventSearching {
						keywords = ev.Keywords
					}
					return nil
				},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(keywords).To(Equal([]string{"go 1.25", "release date"}))
			Expect(res.Sources).To(HaveLen(1))
			Expect(res.Sources[0].Domain).To(Equal("go.dev"))
		})
	})

	Context("when the request is cancelled mid-stream", func() {
		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				flusher := w.(http.Flusher)

				fmt.Fprint(w, "data: {\"type\":\"response\",\"content\":\"never-ending\"}\n\n")
				flusher.Flush()

				<-r.Context().Done()
			}))
		})

		It("returns the context error", func() {
			client := New(server.URL, WithHTTPClient(&http.Client{}))

			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan struct{})
			var chatErr error
			go func() {
				defer close(done)
				_, chatErr = client.Chat(ctx, "b1", ChatOptions{Message: "hi"})
			}()

			// Give the stream a moment to start, then cut it.
			time.Sleep(50 * time.Millisecond)
			cancel()

			Eventually(done).Should(BeClosed())
			Expect(chatErr).To(MatchError(context.Canceled))
		})
	})

	Context("when the chat endpoint rejects the request", func() {
		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"detail": "You don't have access to this bucket"}`)
			}))
		})

		It("returns a TransportError with the server's detail", func() {
			client := New(server.URL)

			_, err := client.Chat(context.Background(), "b1", ChatOptions{Message: "hi"})

			var transportErr *TransportError
			Expect(errors.As(err, &transportErr)).To(BeTrue())
			Expect(transportErr.Status).To(Equal(http.StatusForbidden))
			Expect(transportErr.Detail).To(Equal("You don't have access to this bucket"))
		})
	})

	Context("with events split across network chunks", func() {
		BeforeEach(func() {
			// Serve a single event in two flushes that split the JSON
			// mid-rune to exercise the reader's buffering.
			full := "data: {\"type\":\"done\",\"message\":\"héllo wörld\",\"sources\":[],\"conversation_id\":\"c\"}\n\n"
			cut := len(full) / 2
			server = newStreamServer(full[:cut], full[cut:])
		})

		It("reassembles the event correctly", func() {
			client := New(server.URL)

			res, err := client.Chat(context.Background(), "b1", ChatOptions{Message: "hi"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Message).To(Equal("héllo wörld"))
		})
	})
})
