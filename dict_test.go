package dbus_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	dbus "github.com/hkr1990/gobus"
	"github.com/hkr1990/gobus/fragments"
)

func TestDictRoundTrip(t *testing.T) {
	entries := []dbus.DictEntry{
		{Key: dbus.String("a"), Val: dbus.Variant{Inner: dbus.Int32(1)}},
		{Key: dbus.String("b"), Val: dbus.Variant{Inner: dbus.String("two")}},
	}
	d, err := dbus.NewDict("s", "v", entries)
	if err != nil {
		t.Fatalf("NewDict: %v", err)
	}
	for _, format := range []fragments.EncodingFormat{fragments.DBus, fragments.GVariant} {
		wire := dbus.Encode(d, format)
		got, n, err := dbus.DecodeValue(fragments.NewSharedData(wire), d.Signature(), format)
		if err != nil {
			t.Fatalf("decode under %v: %v", format, err)
		}
		if n != len(wire) {
			t.Errorf("consumed %d bytes, wire is %d bytes", n, len(wire))
		}
		if diff := cmp.Diff(d, got); diff != "" {
			t.Errorf("round trip under %v mismatch (-want +got):\n%s", format, diff)
		}
	}
}

func TestNewDictRejectsHeterogeneousEntries(t *testing.T) {
	entries := []dbus.DictEntry{
		{Key: dbus.String("a"), Val: dbus.Int32(1)},
		{Key: dbus.Int32(2), Val: dbus.Int32(2)},
	}
	if _, err := dbus.NewDict("s", "i", entries); err == nil {
		t.Fatal("expected an error for a mismatched key signature")
	}
}

func TestNewDictRejectsContainerKey(t *testing.T) {
	entries := []dbus.DictEntry{
		{Key: dbus.Structure{Fields: []dbus.Value{dbus.Byte(1)}}, Val: dbus.Int32(1)},
	}
	if _, err := dbus.NewDict("(y)", "i", entries); err == nil {
		t.Fatal("expected an error for a non-basic dict key")
	}
}
