package sse_test

import (
	"bufio"
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/inkwellhq/inkwell/pkg/sse"
)

var _ = Describe("Writer", func() {
	It("writes named events with JSON data", func() {
		var buf bytes.Buffer
		w := sse.NewWriter(&buf)

		Expect(w.SendEvent("text", map[string]string{"content": "hello"})).To(Succeed())
		Expect(buf.String()).To(Equal("event: text\ndata: {\"content\":\"hello\"}\n\n"))
	})

	It("writes unnamed data events", func() {
		var buf bytes.Buffer
		w := sse.NewWriter(&buf)

		Expect(w.SendData(map[string]int{"n": 3})).To(Succeed())
		Expect(buf.String()).To(Equal("data: {\"n\":3}\n\n"))
	})

	It("writes comments", func() {
		var buf bytes.Buffer
		w := sse.NewWriter(&buf)

		Expect(w.SendComment("ping")).To(Succeed())
		Expect(buf.String()).To(Equal(": ping\n\n"))
	})

	It("flushes buffered writers after each event", func() {
		var buf bytes.Buffer
		bw := bufio.NewWriterSize(&buf, 4096)
		w := sse.NewWriter(bw)

		Expect(w.SendEvent("done", map[string]bool{"ok": true})).To(Succeed())

		// Events must not sit in the buffer until stream end.
		Expect(buf.String()).To(ContainSubstring("event: done"))
	})
})

var _ = Describe("Reader", func() {
	readAll := func(input string) []*sse.Event {
		r := sse.NewReader(strings.NewReader(input))
		var events []*sse.Event
		for {
			ev, err := r.Next()
			Expect(err).NotTo(HaveOccurred())
			if ev == nil {
				return events
			}
			events = append(events, ev)
		}
	}

	It("parses named events", func() {
		events := readAll("event: model\ndata: {\"model\":\"gpt-4o\"}\n\n")
		Expect(events).To(HaveLen(1))
		Expect(events[0].Type).To(Equal("model"))
		Expect(events[0].Data).To(Equal("{\"model\":\"gpt-4o\"}"))
	})

	It("joins multiple data lines with newlines", func() {
		events := readAll("data: first\ndata: second\n\n")
		Expect(events).To(HaveLen(1))
		Expect(events[0].Data).To(Equal("first\nsecond"))
	})

	It("skips comments and blank separators", func() {
		events := readAll(": keep-alive\n\ndata: a\n\n: another\n\ndata: b\n\n")
		Expect(events).To(HaveLen(2))
		Expect(events[0].Data).To(Equal("a"))
		Expect(events[1].Data).To(Equal("b"))
	})

	It("emits a trailing event with no terminating blank line", func() {
		events := readAll("event: done\ndata: {}")
		Expect(events).To(HaveLen(1))
		Expect(events[0].Type).To(Equal("done"))
	})

	It("round-trips writer output", func() {
		var buf bytes.Buffer
		w := sse.NewWriter(&buf)
		Expect(w.SendEvent("text", map[string]string{"content": "partial"})).To(Succeed())
		Expect(w.SendEvent("done", struct{}{})).To(Succeed())

		events := readAll(buf.String())
		Expect(events).To(HaveLen(2))
		Expect(events[0].Type).To(Equal("text"))
		Expect(events[1].Type).To(Equal("done"))
	})
})
