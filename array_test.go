package dbus_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	dbus "github.com/hkr1990/gobus"
	"github.com/hkr1990/gobus/fragments"
)

func TestArrayRoundTrip(t *testing.T) {
	tests := []dbus.Array{
		{ElemSig: "i", Items: nil},
		{ElemSig: "i", Items: []dbus.Value{dbus.Int32(1), dbus.Int32(2), dbus.Int32(3)}},
		{ElemSig: "s", Items: []dbus.Value{dbus.String("a"), dbus.String("bb"), dbus.String("")}},
		{ElemSig: "ai", Items: []dbus.Value{
			dbus.Array{ElemSig: "i", Items: []dbus.Value{dbus.Int32(1)}},
			dbus.Array{ElemSig: "i", Items: nil},
		}},
	}
	for _, format := range []fragments.EncodingFormat{fragments.DBus, fragments.GVariant} {
		for _, arr := range tests {
			wire := dbus.Encode(arr, format)
			got, n, err := dbus.DecodeValue(fragments.NewSharedData(wire), arr.Signature(), format)
			if err != nil {
				t.Fatalf("decode %v under %v: %v", arr, format, err)
			}
			if n != len(wire) {
				t.Errorf("consumed %d bytes, wire is %d bytes", n, len(wire))
			}
			if diff := cmp.Diff(arr, got); diff != "" {
				t.Errorf("round trip under %v mismatch (-want +got):\n%s", format, diff)
			}
		}
	}
}

func TestArraySliceLengthMatchesEncodedLength(t *testing.T) {
	arr := dbus.Array{ElemSig: "y", Items: []dbus.Value{dbus.Byte(1), dbus.Byte(2), dbus.Byte(3)}}
	for _, format := range []fragments.EncodingFormat{fragments.DBus, fragments.GVariant} {
		wire := dbus.Encode(arr, format)
		sliced, err := dbus.SliceValue(fragments.NewSharedData(wire), arr.Signature(), format)
		if err != nil {
			t.Fatalf("SliceValue: %v", err)
		}
		if sliced.Len() != len(wire) {
			t.Errorf("SliceValue length %d, want %d", sliced.Len(), len(wire))
		}
	}
}

func TestArrayAlignment(t *testing.T) {
	// An array of int64 must land its content on an 8-byte boundary
	// even though the array's own alignment (DBus format) is 4.
	s := dbus.Structure{Fields: []dbus.Value{
		dbus.Byte(1),
		dbus.Array{ElemSig: "x", Items: []dbus.Value{dbus.Int64(7)}},
	}}
	wire := dbus.Encode(s, fragments.DBus)
	v, _, err := dbus.DecodeValue(fragments.NewSharedData(wire), s.Signature(), fragments.DBus)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := v.(dbus.Structure).Fields[1].(dbus.Array).Items[0].(dbus.Int64)
	if got != 7 {
		t.Errorf("got %v, want 7", got)
	}
}
