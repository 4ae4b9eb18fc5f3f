package dbus_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	dbus "github.com/hkr1990/gobus"
	"github.com/hkr1990/gobus/fragments"
)

func TestVariantRoundTrip(t *testing.T) {
	tests := []dbus.Variant{
		{Inner: dbus.Int32(42)},
		{Inner: dbus.String("hello")},
		{Inner: dbus.Array{ElemSig: "i", Items: []dbus.Value{dbus.Int32(1), dbus.Int32(2)}}},
		{Inner: dbus.Variant{Inner: dbus.Byte(9)}},
	}
	for _, format := range []fragments.EncodingFormat{fragments.DBus, fragments.GVariant} {
		for _, v := range tests {
			wire := dbus.Encode(v, format)
			got, n, err := dbus.DecodeValue(fragments.NewSharedData(wire), "v", format)
			if err != nil {
				t.Fatalf("decode %v under %v: %v", v, format, err)
			}
			if n != len(wire) {
				t.Errorf("consumed %d bytes, wire is %d bytes", n, len(wire))
			}
			if diff := cmp.Diff(v, got); diff != "" {
				t.Errorf("round trip under %v mismatch (-want +got):\n%s", format, diff)
			}
		}
	}
}

func TestIsAsTakeAs(t *testing.T) {
	var v dbus.Value = dbus.Int32(7)
	if !dbus.Is[dbus.Int32](v) {
		t.Error("Is[Int32] should be true")
	}
	if dbus.Is[dbus.String](v) {
		t.Error("Is[String] should be false")
	}
	got, err := dbus.As[dbus.Int32](v)
	if err != nil || got != 7 {
		t.Errorf("As[Int32] = %v, %v, want 7, nil", got, err)
	}
	if _, err := dbus.As[dbus.String](v); err == nil {
		t.Error("As[String] on an Int32 should fail")
	}
	taken, err := dbus.TakeAs[dbus.Int32](v)
	if err != nil || taken != 7 {
		t.Errorf("TakeAs[Int32] = %v, %v, want 7, nil", taken, err)
	}
}

func TestVariantRejectsMultiTypeSignature(t *testing.T) {
	// A variant's embedded signature must describe exactly one
	// complete type.
	wire := []byte{2, 'i', 'i', 0}
	if _, _, err := dbus.DecodeValue(fragments.NewSharedData(wire), "v", fragments.DBus); err == nil {
		t.Fatal("expected an error for a variant with a multi-type signature")
	}
}
