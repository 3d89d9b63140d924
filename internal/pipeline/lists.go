package pipeline

import (
	"strconv"
	"strings"
)

// List markup emitted by pandoc.
const (
	itemizeOpen    = `\begin{itemize}`
	itemizeClose   = `\end{itemize}`
	enumerateOpen  = `\begin{enumerate}`
	enumerateClose = `\end{enumerate}`
	itemMarker     = `\item`
	enumLabelDef   = `\def\labelenumi{\arabic{enumi}.}`
)

// listMode is the restructurer's position relative to list blocks.
type listMode int

const (
	modePlain listMode = iota
	modeUnordered
	modeOrdered
)

// closeToken returns the line that ends a block of this mode.
func (m listMode) closeToken() string {
	switch m {
	case modeUnordered:
		return itemizeClose
	case modeOrdered:
		return enumerateClose
	}
	return ""
}

// listState is threaded through the fold over lines. The buffer holds the
// lines of the open block and is owned by the state.
type listState struct {
	mode   listMode
	buffer []string
	out    []string
}

// RestructureLists rewrites itemize and enumerate blocks into plain lines:
// "- text" for unordered items and "<n>. text" for ordered ones, numbered
// from 1 in each block. Block markers and the enumi label definition are
// dropped. Each item starts a new paragraph.
//
// Lists do not nest: an open token inside a block is kept as an ordinary
// buffered line. A block still open at end of text is replayed as if closed.
func RestructureLists(text string) string {
	st := listState{}
	for _, line := range strings.Split(text, "\n") {
		st = st.step(line)
	}
	if st.mode != modePlain {
		st = st.closeBlock()
	}
	return compressBlankLines(strings.Join(st.out, "\n"))
}

// step consumes one line and returns the next state.
func (st listState) step(line string) listState {
	trimmed := strings.TrimSpace(line)

	if trimmed == enumLabelDef {
		return st
	}

	if st.mode == modePlain {
		switch trimmed {
		case itemizeOpen:
			st.mode = modeUnordered
		case enumerateOpen:
			st.mode = modeOrdered
		default:
			st.out = append(st.out, line)
		}
		return st
	}

	if trimmed == st.mode.closeToken() {
		return st.closeBlock()
	}

	st.buffer = append(st.buffer, line)
	return st
}

// closeBlock replays the buffered block into output lines and returns to
// plain mode with an empty buffer.
func (st listState) closeBlock() listState {
	counter := 1
	for i := 0; i < len(st.buffer); i++ {
		text, isItem := itemText(st.buffer[i])
		if !isItem {
			st.out = append(st.out, st.buffer[i])
			continue
		}

		// Bare marker: the item text is the next buffered line
		if text == "" && i+1 < len(st.buffer) {
			i++
			text = strings.TrimSpace(st.buffer[i])
		}

		label := "-"
		if st.mode == modeOrdered {
			label = strconv.Itoa(counter) + "."
			counter++
		}
		st.out = append(st.out, "", label+" "+text)
	}

	st.mode = modePlain
	st.buffer = nil
	return st
}

// itemText reports whether line starts an item and returns the text that
// follows the marker on the same line. A bare marker returns "". The marker
// must be followed by blank space or an optional label group, so longer
// commands such as \itemsep are not items.
func itemText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == itemMarker {
		return "", true
	}
	rest, ok := strings.CutPrefix(trimmed, itemMarker)
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t' && rest[0] != '[') {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
