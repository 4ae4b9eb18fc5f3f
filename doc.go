// Package dbus implements the D-Bus wire format as a value-oriented
// codec: a closed set of concrete types (Byte, Boolean, Int16, ...,
// Array, Structure, Dict, Variant) each satisfying the [Value]
// interface, plus the signature grammar and alignment rules needed to
// decode and encode them without a reflection layer or intermediate
// Go struct tags.
//
// # Values and signatures
//
// A [Signature] describes a sequence of D-Bus types using the
// standard type-code alphabet (`ybnqiuxtdsogavh(){}`). [SliceSignature]
// and [Signature.Children] parse and split signatures; [DecodeValue]
// turns a signature plus a byte window into a concrete [Value].
//
// Every concrete type's [Value.Kind] identifies which one it is, so
// code that receives a bare Value (for example, the contents of a
// [Variant]) can recover its concrete type with [Is], [As], or
// [TakeAs] instead of a type switch.
//
// # Wire formats
//
// Two wire formats are supported, selected by a
// [fragments.EncodingFormat] passed to every encode and decode call:
// the classic D-Bus marshalling format (4-byte length prefixes,
// nul-terminated strings, 8-byte struct alignment), and a
// GVariant-compatible format (trailing offset tables for variable-size
// containers, structs aligned to their widest field). The two formats
// share every Go type in this package; only their encodeInto and
// decode logic branch on which one is in play.
//
// # Addresses and bus names
//
// [ParseAddress] parses D-Bus server addresses into an [Address]
// (`unix:path=...`, `tcp:host=...,port=...`); [SessionAddress] and
// [SystemAddress] return the bus defaults read from the environment. [BusName]
// classifies and validates the two forms of D-Bus connection name,
// unique (`:1.42`) and well-known (`org.freedesktop.DBus`).
package dbus
