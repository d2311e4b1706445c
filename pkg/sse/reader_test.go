package sse_test

import (
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jutt313/aiveilix-go/pkg/sse"
)

// chunkReader delivers its payload in fixed-size chunks to exercise reads
// that split lines and multi-byte runes across chunk boundaries.
type chunkReader struct {
	payload []byte
	size    int
	off     int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.off >= len(c.payload) {
		return 0, io.EOF
	}
	end := c.off + c.size
	if end > len(c.payload) {
		end = len(c.payload)
	}
	n := copy(p, c.payload[c.off:end])
	c.off += n
	return n, nil
}

// drain reads events until the reader reports exhaustion.
func drain(r *sse.Reader) []sse.Event {
	var events []sse.Event
	for {
		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		if ev == nil {
			return events
		}
		events = append(events, *ev)
	}
}

var _ = Describe("Reader", func() {
	Describe("Next", func() {
		Context("with standard SSE events", func() {
			It("parses a single event", func() {
				r := sse.NewReader(strings.NewReader("data: hello world\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("hello world"))
				Expect(ev.Type).To(BeEmpty())
				Expect(ev.ID).To(BeEmpty())

				ev, err = r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev).To(BeNil())
			})

			It("parses multiple events", func() {
				r := sse.NewReader(strings.NewReader("data: first\n\ndata: second\n\n"))

				events := drain(r)
				Expect(events).To(HaveLen(2))
				Expect(events[0].Data).To(Equal("first"))
				Expect(events[1].Data).To(Equal("second"))
			})

			It("parses event type and id fields", func() {
				r := sse.NewReader(strings.NewReader("event: update\nid: 7\ndata: payload\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Type).To(Equal("update"))
				Expect(ev.ID).To(Equal("7"))
				Expect(ev.Data).To(Equal("payload"))
			})

			It("joins multiple data lines with a newline", func() {
				r := sse.NewReader(strings.NewReader("data: line one\ndata: line two\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("line one\nline two"))
			})

			It("tolerates a missing space after the colon", func() {
				r := sse.NewReader(strings.NewReader("data:tight\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("tight"))
			})
		})

		Context("with noise in the stream", func() {
			It("skips comment lines", func() {
				r := sse.NewReader(strings.NewReader(": keep-alive\ndata: real\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("real"))
			})

			It("skips leading blank lines and keep-alive newlines", func() {
				r := sse.NewReader(strings.NewReader("\n\n\ndata: after noise\n\n\n\n"))

				events := drain(r)
				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("after noise"))
			})

			It("ignores unknown fields", func() {
				r := sse.NewReader(strings.NewReader("retry: 3000\ndata: kept\n\n"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("kept"))
			})
		})

		Context("at end of stream", func() {
			It("yields a trailing event without a final blank line", func() {
				r := sse.NewReader(strings.NewReader("data: unterminated"))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("unterminated"))

				ev, err = r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev).To(BeNil())
			})

			It("returns nil for an empty stream", func() {
				r := sse.NewReader(strings.NewReader(""))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev).To(BeNil())
			})
		})

		Context("with fragmented delivery", func() {
			const payload = "data: {\"type\":\"response\",\"content\":\"héllo wörld\"}\n\ndata: {\"type\":\"done\"}\n\n"

			It("is insensitive to chunk boundaries", func() {
				whole := drain(sse.NewReader(strings.NewReader(payload)))

				for _, size := range []int{1, 2, 3, 5, 7, 16} {
					r := sse.NewReader(&chunkReader{payload: []byte(payload), size: size})
					Expect(drain(r)).To(Equal(whole), "chunk size %d", size)
				}
			})

			It("reassembles multi-byte runes split across chunks", func() {
				// 1-byte chunks guarantee every UTF-8 sequence is split.
				r := sse.NewReader(&chunkReader{payload: []byte("data: ⣾⣽⣻\n\n"), size: 1})

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Data).To(Equal("⣾⣽⣻"))
			})
		})
	})
})
