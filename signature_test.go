package dbus_test

import (
	"testing"

	dbus "github.com/hkr1990/gobus"
)

func TestSliceSignature(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"y", "y", false},
		{"yy", "y", false},
		{"ai", "ai", false},
		{"aai", "aai", false},
		{"(si)", "(si)", false},
		{"(si)y", "(si)", false},
		{"a{sv}", "a{sv}", false},
		{"v", "v", false},
		{"", "", true},
		{"z", "", true},
		{")", "", true},
		{"(si", "", true},
		{"a", "", true},
	}
	for _, tc := range tests {
		got, err := dbus.SliceSignature(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("SliceSignature(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && string(got) != tc.want {
			t.Errorf("SliceSignature(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSliceSignatureIgnoresTrailingJunk(t *testing.T) {
	prefixes := []string{"y", "ai", "(si)", "a{sv}"}
	junks := []string{"", "y", "garbage", ")))"}
	for _, p := range prefixes {
		for _, j := range junks {
			got, err := dbus.SliceSignature(p + j)
			if err != nil {
				t.Errorf("SliceSignature(%q) unexpected error: %v", p+j, err)
				continue
			}
			if string(got) != p {
				t.Errorf("SliceSignature(%q) = %q, want %q", p+j, got, p)
			}
		}
	}
}

func TestSignatureChildren(t *testing.T) {
	children, err := dbus.Signature("si(yy)").Children()
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	want := []string{"s", "i", "(yy)"}
	if len(children) != len(want) {
		t.Fatalf("got %d children, want %d", len(children), len(want))
	}
	for i, w := range want {
		if string(children[i]) != w {
			t.Errorf("child %d = %q, want %q", i, children[i], w)
		}
	}
}

func TestSignatureDepthLimit(t *testing.T) {
	deep := ""
	for i := 0; i < 300; i++ {
		deep += "a"
	}
	deep += "y"
	if _, err := dbus.SliceSignature(deep); err == nil {
		t.Fatalf("expected error for signature nested beyond the depth limit")
	}
}

func TestDictEntryRules(t *testing.T) {
	if err := dbus.Signature("a{sv}").Validate(); err != nil {
		t.Errorf("a{sv} should validate: %v", err)
	}
	if err := dbus.Signature("a{(s)v}").Validate(); err == nil {
		t.Errorf("a{(s)v} should fail: dict entry key must be a basic type")
	}
	if err := dbus.Signature("a{sii}").Validate(); err == nil {
		t.Errorf("a{sii} should fail: too many children")
	}
}
