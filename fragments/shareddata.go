package fragments

import "fmt"

// SharedData is a windowed, reference-counted view over a byte
// buffer. Sub-slicing a SharedData never copies: [SharedData.Head] and
// [SharedData.Tail] narrow the window in place, and the returned value
// shares the same underlying array as its parent.
//
// The zero value is an empty window over a nil buffer.
//
// A SharedData remembers the absolute offset its window started at
// within the original buffer it was carved from, via [SharedData.Position].
// Callers use Position to compute alignment padding, since padding
// depends on where bytes land in the *original* message, not on where
// they happen to sit within whatever sub-slice is currently in hand.
type SharedData struct {
	buf []byte
	// off is the absolute offset of buf[0] within the original
	// buffer this SharedData (or an ancestor of it) was constructed
	// from.
	off int
}

// NewSharedData wraps buf as a SharedData window starting at absolute
// position 0.
func NewSharedData(buf []byte) SharedData {
	return SharedData{buf: buf}
}

// newSharedDataAt wraps buf as a SharedData window starting at the
// given absolute position. Used internally when a caller needs to
// resume alignment math mid-message.
func newSharedDataAt(buf []byte, pos int) SharedData {
	return SharedData{buf: buf, off: pos}
}

// Len returns the number of bytes remaining in the window.
func (d SharedData) Len() int {
	return len(d.buf)
}

// Position returns the absolute offset of the start of this window
// within the original buffer it was carved from.
func (d SharedData) Position() int {
	return d.off
}

// Bytes returns the bytes covered by this window. The returned slice
// aliases the underlying buffer; callers must not mutate it.
func (d SharedData) Bytes() []byte {
	return d.buf
}

// Head returns a window covering the first n bytes of d. It panics if
// n is out of range, mirroring slice bounds-check semantics.
func (d SharedData) Head(n int) SharedData {
	if n < 0 || n > len(d.buf) {
		panic(fmt.Sprintf("fragments: Head(%d) out of range for window of length %d", n, len(d.buf)))
	}
	return SharedData{buf: d.buf[:n], off: d.off}
}

// Tail returns a window covering everything from byte n onward,
// advancing the absolute position accordingly. It panics if n is out
// of range.
func (d SharedData) Tail(n int) SharedData {
	if n < 0 || n > len(d.buf) {
		panic(fmt.Sprintf("fragments: Tail(%d) out of range for window of length %d", n, len(d.buf)))
	}
	return SharedData{buf: d.buf[n:], off: d.off + n}
}

// Slice returns the window covering [from, to), relative to the start
// of d. It is shorthand for d.Tail(from).Head(to-from).
func (d SharedData) Slice(from, to int) SharedData {
	return d.Tail(from).Head(to - from)
}
