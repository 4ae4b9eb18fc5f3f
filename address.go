package dbus

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mds/value"
	"golang.org/x/sys/unix"
)

// TCPFamily restricts a tcp: address to IPv4 or IPv6.
type TCPFamily int

const (
	Ipv4 TCPFamily = iota
	Ipv6
)

func (f TCPFamily) String() string {
	if f == Ipv6 {
		return "ipv6"
	}
	return "ipv4"
}

func tcpFamilyFromString(s string) (TCPFamily, error) {
	switch s {
	case "ipv4":
		return Ipv4, nil
	case "ipv6":
		return Ipv6, nil
	default:
		return 0, addressErr("invalid tcp address `family`: %s", s)
	}
}

// TCPAddress holds the options of a `tcp:` bus address.
type TCPAddress struct {
	Host   string
	Bind   value.Maybe[string]
	Port   uint16
	Family value.Maybe[TCPFamily]
}

// Address is a parsed D-Bus server address: either a Unix-domain
// socket path (abstract paths are represented with a leading NUL
// byte) or a TCP endpoint.
//
// Exactly one of Unix or TCP is populated; Go has no tagged union, so
// a nil TCP field marks a Unix address.
type Address struct {
	Unix string
	TCP  *TCPAddress
}

// IsUnix reports whether a holds a Unix-domain address.
func (a Address) IsUnix() bool { return a.TCP == nil }

// ParseAddress parses a D-Bus address string of the form
// "<transport>:k1=v1,k2=v2,...". Keys must be unique within the
// option list; unrecognized keys are ignored by the transport
// handlers that don't need them.
func ParseAddress(address string) (Address, error) {
	col := strings.IndexByte(address, ':')
	if col < 0 {
		return Address{}, addressErr("address has no colon")
	}
	transport := address[:col]

	opts := make(map[string]string)
	seen := mapset.New[string]()
	for _, kv := range strings.Split(address[col+1:], ",") {
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			return Address{}, addressErr("missing = when parsing key/value")
		}
		k, v := kv[:eq], kv[eq+1:]
		if seen.Has(k) {
			return Address{}, addressErr("Key `%s` specified multiple times", k)
		}
		seen.Add(k)
		opts[k] = v
	}

	switch transport {
	case "unix":
		return addressFromUnixOpts(opts)
	case "tcp":
		return addressFromTCPOpts(opts)
	default:
		return Address{}, addressErr("unsupported transport '%s'", transport)
	}
}

func addressFromUnixOpts(opts map[string]string) (Address, error) {
	abs, hasAbs := opts["abstract"]
	path, hasPath := opts["path"]
	switch {
	case hasAbs && hasPath:
		return Address{}, addressErr("`path` and `abstract` cannot be specified together")
	case hasAbs:
		return Address{Unix: "\x00" + abs}, nil
	case hasPath:
		return Address{Unix: path}, nil
	default:
		return Address{}, addressErr("unix address is missing path or abstract")
	}
}

func addressFromTCPOpts(opts map[string]string) (Address, error) {
	if _, ok := opts["bind"]; ok {
		return Address{}, addressErr("`bind` isn't yet supported")
	}

	host, ok := opts["host"]
	if !ok {
		return Address{}, addressErr("tcp address is missing `host`")
	}
	portStr, ok := opts["port"]
	if !ok {
		return Address{}, addressErr("tcp address is missing `port`")
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Address{}, addressErr("invalid tcp `port`")
	}

	tcp := &TCPAddress{Host: host, Port: uint16(port)}
	if famStr, ok := opts["family"]; ok {
		fam, err := tcpFamilyFromString(famStr)
		if err != nil {
			return Address{}, err
		}
		tcp.Family = value.Just(fam)
	}
	return Address{TCP: tcp}, nil
}

// SessionAddress returns the address for the session bus, honoring
// DBUS_SESSION_BUS_ADDRESS; if unset, it falls back to
// "unix:path=$XDG_RUNTIME_DIR/bus", substituting "/run/user/<uid>"
// for XDG_RUNTIME_DIR when that too is unset.
func SessionAddress() (Address, error) {
	if val, ok := os.LookupEnv("DBUS_SESSION_BUS_ADDRESS"); ok {
		return ParseAddress(val)
	}
	runtimeDir, ok := os.LookupEnv("XDG_RUNTIME_DIR")
	if !ok {
		runtimeDir = fmt.Sprintf("/run/user/%d", unix.Getuid())
	}
	return ParseAddress("unix:path=" + runtimeDir + "/bus")
}

// SystemAddress returns the address for the system bus, honoring
// DBUS_SYSTEM_BUS_ADDRESS; if unset, it falls back to
// "unix:path=/var/run/dbus/system_bus_socket".
func SystemAddress() (Address, error) {
	if val, ok := os.LookupEnv("DBUS_SYSTEM_BUS_ADDRESS"); ok {
		return ParseAddress(val)
	}
	return ParseAddress("unix:path=/var/run/dbus/system_bus_socket")
}

// ErrTCPUnimplemented is returned by Connect for a TCP address: this
// package's transport layer only opens Unix-domain sockets.
var ErrTCPUnimplemented = fmt.Errorf("tcp transport is not implemented")

// Connect opens a stream to a. Only Unix-domain addresses are
// supported; a TCP address yields ErrTCPUnimplemented rather than
// panicking, per the open design note on this operation.
func (a Address) Connect(ctx context.Context) (net.Conn, error) {
	if a.TCP != nil {
		return nil, ErrTCPUnimplemented
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", a.Unix)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", a.Unix, err)
	}
	return conn, nil
}
