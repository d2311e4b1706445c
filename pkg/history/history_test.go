package history_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jutt313/aiveilix-go/pkg/api"
	"github.com/jutt313/aiveilix-go/pkg/history"
)

var _ = Describe("Store", func() {
	var store *history.Store

	BeforeEach(func() {
		var err error
		store, err = history.NewStore(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	It("records and replays a conversation in order", func() {
		ctx := context.Background()

		first, err := store.Record(ctx, "b-1", "what is in this bucket?", &api.ChatResult{
			Message:        "Three PDFs.",
			ConversationID: "conv-1",
			Sources:        []api.Source{{Type: "chunk", FileName: "a.pdf"}},
			Done:           true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(first.ID).NotTo(BeEmpty())

		_, err = store.Record(ctx, "b-1", "summarize them", &api.ChatResult{
			Message:        "They cover Go.",
			ConversationID: "conv-1",
			Sources:        []api.Source{},
			Done:           true,
		})
		Expect(err).NotTo(HaveOccurred())

		turns, err := store.Conversation(ctx, "conv-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(2))
		Expect(turns[0].Prompt).To(Equal("what is in this bucket?"))
		Expect(turns[0].Sources).To(HaveLen(1))
		Expect(turns[0].Sources[0].FileName).To(Equal("a.pdf"))
		Expect(turns[1].Answer).To(Equal("They cover Go."))
	})

	It("returns ErrNotFound for unknown conversations", func() {
		_, err := store.Conversation(context.Background(), "nope")
		Expect(err).To(MatchError(history.ErrNotFound))
	})

	It("lists recent turns per bucket, newest first", func() {
		ctx := context.Background()

		for i, prompt := range []string{"one", "two", "three"} {
			_, err := store.Record(ctx, "b-1", prompt, &api.ChatResult{
				Message:        prompt + " answer",
				ConversationID: "conv-1",
				Sources:        []api.Source{},
				Done:           i%2 == 0,
			})
			Expect(err).NotTo(HaveOccurred())
		}
		_, err := store.Record(ctx, "b-2", "other bucket", &api.ChatResult{
			ConversationID: "conv-2",
			Sources:        []api.Source{},
		})
		Expect(err).NotTo(HaveOccurred())

		turns, err := store.Recent(ctx, "b-1", 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(2))
		for _, t := range turns {
			Expect(t.BucketID).To(Equal("b-1"))
		}
	})

	It("deletes a conversation's turns", func() {
		ctx := context.Background()

		_, err := store.Record(ctx, "b-1", "hello", &api.ChatResult{
			ConversationID: "conv-1",
			Sources:        []api.Source{},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(store.DeleteConversation(ctx, "conv-1")).To(Succeed())

		_, err = store.Conversation(ctx, "conv-1")
		Expect(err).To(MatchError(history.ErrNotFound))
	})

	It("rejects recording a nil result", func() {
		_, err := store.Record(context.Background(), "b-1", "hi", nil)
		Expect(err).To(HaveOccurred())
	})

	It("persists across reopen", func() {
		ctx := context.Background()
		path := filepath.Join(GinkgoT().TempDir(), "history.db")

		fileStore, err := history.NewStore(path)
		Expect(err).NotTo(HaveOccurred())

		_, err = fileStore.Record(ctx, "b-1", "hello", &api.ChatResult{
			Message:        "hi",
			ConversationID: "conv-1",
			Sources:        []api.Source{},
			Done:           true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(fileStore.Close()).To(Succeed())

		reopened, err := history.NewStore(path)
		Expect(err).NotTo(HaveOccurred())
		defer reopened.Close()

		turns, err := reopened.Conversation(ctx, "conv-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(1))
		Expect(turns[0].Answer).To(Equal("hi"))
	})
})
