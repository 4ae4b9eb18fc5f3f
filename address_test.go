package dbus_test

import (
	"testing"

	dbus "github.com/hkr1990/gobus"
)

func TestParseAddressScenarios(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"", "address has no colon"},
		{"foo", "address has no colon"},
		{"foo:opt", "missing = when parsing key/value"},
		{"foo:opt=1,opt=2", "Key `opt` specified multiple times"},
		{"tcp:host=localhost", "tcp address is missing `port`"},
		{"tcp:host=localhost,port=32f", "invalid tcp `port`"},
		{"tcp:host=localhost,port=123,family=ipv7", "invalid tcp address `family`: ipv7"},
		{"unix:path=/tmp,abstract=foo", "`path` and `abstract` cannot be specified together"},
	}
	for _, tc := range tests {
		_, err := dbus.ParseAddress(tc.in)
		if err == nil {
			t.Errorf("ParseAddress(%q): expected error %q, got nil", tc.in, tc.wantErr)
			continue
		}
		if err.Error() != tc.wantErr {
			t.Errorf("ParseAddress(%q) error = %q, want %q", tc.in, err.Error(), tc.wantErr)
		}
	}
}

func TestParseAddressUnknownKeysIgnored(t *testing.T) {
	addr, err := dbus.ParseAddress("unix:path=/tmp/dbus-foo,guid=123")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if !addr.IsUnix() || addr.Unix != "/tmp/dbus-foo" {
		t.Errorf("got %+v, want Unix(/tmp/dbus-foo)", addr)
	}
}

func TestParseAddressTCPIpv6(t *testing.T) {
	addr, err := dbus.ParseAddress("tcp:host=localhost,port=4142,family=ipv6")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if addr.IsUnix() {
		t.Fatal("expected a TCP address")
	}
	if addr.TCP.Host != "localhost" || addr.TCP.Port != 4142 {
		t.Errorf("got host=%q port=%d, want localhost/4142", addr.TCP.Host, addr.TCP.Port)
	}
	fam, ok := addr.TCP.Family.GetOK()
	if !ok || fam != dbus.Ipv6 {
		t.Errorf("got family=%v ok=%v, want Ipv6/true", fam, ok)
	}
	if addr.TCP.Bind.Present() {
		t.Error("bind should be absent")
	}
}

func TestParseAddressAbstractUnixSocket(t *testing.T) {
	addr, err := dbus.ParseAddress("unix:abstract=foo")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if addr.Unix[0] != 0 || addr.Unix[1:] != "foo" {
		t.Errorf("got %q, want a leading NUL followed by foo", addr.Unix)
	}
}

func TestAddressConnectTCPUnimplemented(t *testing.T) {
	addr, err := dbus.ParseAddress("tcp:host=localhost,port=1234")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if _, err := addr.Connect(nil); err != dbus.ErrTCPUnimplemented { //nolint:staticcheck // nil Context is fine: TCP errors before the context is used
		t.Errorf("Connect on a TCP address = %v, want ErrTCPUnimplemented", err)
	}
}
