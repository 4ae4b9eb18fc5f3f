package dbus_test

import (
	"math"
	"testing"

	dbus "github.com/hkr1990/gobus"
	"github.com/hkr1990/gobus/fragments"
)

func roundTrip(t *testing.T, v dbus.Value, format fragments.EncodingFormat) dbus.Value {
	t.Helper()
	wire := dbus.Encode(v, format)
	got, n, err := dbus.DecodeValue(fragments.NewSharedData(wire), v.Signature(), format)
	if err != nil {
		t.Fatalf("decode(%v, %v): %v", v, format, err)
	}
	if n != len(wire) {
		t.Errorf("decode(%v, %v) consumed %d bytes, encode produced %d", v, format, n, len(wire))
	}
	return got
}

func TestBasicRoundTrip(t *testing.T) {
	values := []dbus.Value{
		dbus.Byte(0), dbus.Byte(255),
		dbus.Boolean(true), dbus.Boolean(false),
		dbus.Int16(math.MinInt16), dbus.Int16(math.MaxInt16),
		dbus.Uint16(0), dbus.Uint16(math.MaxUint16),
		dbus.Int32(math.MinInt32), dbus.Int32(math.MaxInt32),
		dbus.Uint32(0), dbus.Uint32(math.MaxUint32),
		dbus.Int64(math.MinInt64), dbus.Int64(math.MaxInt64),
		dbus.Uint64(0), dbus.Uint64(math.MaxUint64),
		dbus.Double(0), dbus.Double(-1.5), dbus.Double(math.Inf(1)),
		dbus.String(""), dbus.String("hello, world"),
		dbus.ObjectPath("/"), dbus.ObjectPath("/foo/bar"),
		dbus.UnixFD(3),
	}
	for _, format := range []fragments.EncodingFormat{fragments.DBus, fragments.GVariant} {
		for _, v := range values {
			got := roundTrip(t, v, format)
			if got != v {
				t.Errorf("%v round trip under %v = %#v, want %#v", v, format, got, v)
			}
		}
	}
}

func TestDoubleNaNRoundTrip(t *testing.T) {
	nan := dbus.Double(math.NaN())
	for _, format := range []fragments.EncodingFormat{fragments.DBus, fragments.GVariant} {
		got := roundTrip(t, nan, format).(dbus.Double)
		if !math.IsNaN(float64(got)) {
			t.Errorf("NaN round trip under %v = %v, want NaN", format, got)
		}
	}
}

func TestBooleanRejectsInvalidDBusValue(t *testing.T) {
	// A DBus boolean is a 4-byte integer that must be exactly 0 or 1.
	wire := []byte{2, 0, 0, 0}
	if _, _, err := dbus.DecodeValue(fragments.NewSharedData(wire), "b", fragments.DBus); err == nil {
		t.Fatal("expected an error decoding boolean value 2")
	}
}

func TestObjectPathValidation(t *testing.T) {
	ok := []string{"/", "/foo", "/foo/bar", "/foo_bar/Baz2"}
	bad := []string{"", "foo", "/foo/", "//", "/foo//bar"}
	for _, p := range ok {
		if !dbus.ObjectPath(p).Valid() {
			t.Errorf("%q should be a valid object path", p)
		}
	}
	for _, p := range bad {
		if dbus.ObjectPath(p).Valid() {
			t.Errorf("%q should not be a valid object path", p)
		}
	}
}

func TestStringAlignment(t *testing.T) {
	// A leading byte forces the following string to need 3 bytes of
	// padding before its 4-byte length prefix, under DBus format.
	s := dbus.Structure{Fields: []dbus.Value{dbus.Byte(1), dbus.String("hi")}}
	wire := dbus.Encode(s, fragments.DBus)
	// struct starts 8-aligned at position 0: byte(1) + pad(3) + len(4) + "hi"(2) + nul(1)
	if len(wire) != 1+3+4+2+1 {
		t.Errorf("unexpected encoded length %d", len(wire))
	}
}
