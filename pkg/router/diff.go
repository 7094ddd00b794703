package router

import (
	"bytes"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/imgrooty/roi-calculator/pkg/core"
)

const maxPooledBuffer = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}

// diffSlots compares the slots in html against the session's previous
// render and returns a payload holding only the slots that changed. A
// render without any data-slot element is sent whole.
func diffSlots(session *LiveViewSession, html string) *core.DiffPayload {
	textSlots, htmlSlots := extractSlots(html)

	payload := &core.DiffPayload{
		Slots:     make(map[string]string),
		HTMLSlots: make(map[string]string),
	}

	hashes := make(map[string]uint64, len(textSlots)+len(htmlSlots))
	for id, content := range textSlots {
		hashes[id] = hashSlot(content)
	}
	for id, content := range htmlSlots {
		hashes[id] = hashSlot(content)
	}

	prev := session.swapSlotHashes(hashes)

	for id, content := range textSlots {
		if h, ok := prev[id]; !ok || h != hashes[id] {
			payload.Slots[id] = content
		}
	}
	for id, content := range htmlSlots {
		if h, ok := prev[id]; !ok || h != hashes[id] {
			payload.HTMLSlots[id] = content
		}
	}

	if len(hashes) == 0 {
		payload.Full = html
	}
	if !payload.IsEmpty() {
		payload.Version = session.nextVersion()
	}
	return payload
}

// hashSlot computes the FNV-64a hash of slot content.
func hashSlot(content string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(content))
	return h.Sum64()
}

// extractSlots collects the inner content of every element carrying a
// data-slot attribute in one pass. Content containing markup is returned
// in htmlSlots, plain text in textSlots.
func extractSlots(html string) (textSlots, htmlSlots map[string]string) {
	textSlots = make(map[string]string)
	htmlSlots = make(map[string]string)

	const marker = `data-slot="`
	n := len(html)
	pos := 0

	for pos < n {
		idx := strings.Index(html[pos:], marker)
		if idx == -1 {
			break
		}
		idStart := pos + idx + len(marker)

		idLen := strings.IndexByte(html[idStart:], '"')
		if idLen == -1 {
			break
		}
		slotID := html[idStart : idStart+idLen]

		tagStart := pos + idx
		for tagStart > 0 && html[tagStart] != '<' {
			tagStart--
		}
		tagEnd := tagStart + 1
		for tagEnd < n && !isTagNameEnd(html[tagEnd]) {
			tagEnd++
		}
		tagName := html[tagStart+1 : tagEnd]

		gt := strings.IndexByte(html[idStart+idLen:], '>')
		if gt == -1 {
			break
		}
		contentStart := idStart + idLen + gt + 1

		end := matchClose(html, contentStart, tagName)
		if end != -1 {
			content := strings.TrimSpace(html[contentStart:end])
			if strings.ContainsAny(content, "<>") {
				htmlSlots[slotID] = content
			} else {
				textSlots[slotID] = content
			}
		}
		// Continue inside the slot so nested slots are found too.
		pos = contentStart
	}

	return textSlots, htmlSlots
}

func isTagNameEnd(c byte) bool {
	return c == ' ' || c == '>' || c == '/' || c == '\t' || c == '\n'
}

// matchClose finds the close tag matching an element of tagName whose
// content begins at from. It returns -1 when the markup is unbalanced.
func matchClose(html string, from int, tagName string) int {
	openTag := "<" + tagName
	closeTag := "</" + tagName
	n := len(html)

	depth := 1
	pos := from
	for pos < n {
		nextClose := strings.Index(html[pos:], closeTag)
		if nextClose == -1 {
			return -1
		}
		nextClose += pos

		nextOpen := strings.Index(html[pos:], openTag)
		if nextOpen != -1 {
			nextOpen += pos
		}

		if nextOpen != -1 && nextOpen < nextClose {
			after := nextOpen + len(openTag)
			if after < n && isTagNameEnd(html[after]) {
				depth++
			}
			pos = after
			continue
		}

		depth--
		if depth == 0 {
			return nextClose
		}
		pos = nextClose + len(closeTag)
	}
	return -1
}
