// Package fragments provides the low-level, zero-copy byte plumbing
// the codec builds on: a windowed view over a shared buffer
// ([SharedData]), the byte-order helpers message encoding needs, and
// the alignment/padding arithmetic that both wire formats depend on.
//
// You should not need to use this package directly unless you are
// implementing a new [github.com/hkr1990/gobus.Value].
package fragments
