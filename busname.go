package dbus

import "strings"

// BusNameKind distinguishes the two forms a D-Bus connection name can
// take.
type BusNameKind int

const (
	// Unique names are assigned by the bus itself, e.g. ":1.42".
	Unique BusNameKind = iota
	// WellKnown names are claimed by services, e.g. "org.freedesktop.DBus".
	WellKnown
)

func (k BusNameKind) String() string {
	if k == Unique {
		return "Unique"
	}
	return "WellKnown"
}

// BusName is a validated D-Bus bus name, classified as either Unique
// or WellKnown. It always owns its string.
type BusName struct {
	Kind BusNameKind
	Name string
}

// String returns the name exactly as given, including its leading
// ':' for Unique names.
func (n BusName) String() string {
	if n.Kind == Unique {
		return ":" + n.Name
	}
	return n.Name
}

// ParseBusName classifies and validates s as a bus name. A leading
// ':' selects Unique validation (digits allowed to start an element);
// anything else is validated as WellKnown (no element may start with
// a digit). If s satisfies neither, ParseBusName returns an
// InvalidBusNameError carrying both diagnostics.
func ParseBusName(s string) (BusName, error) {
	if strings.HasPrefix(s, ":") {
		if err := validateBusNameElements(s[1:], true); err != nil {
			return BusName{}, &InvalidBusNameError{
				Unique:    &InvalidUniqueNameError{Reason: err.Error()},
				WellKnown: &InvalidWellKnownNameError{Reason: validateBusNameElements(s, false).Error()},
			}
		}
		return BusName{Unique, s[1:]}, nil
	}

	uniqueErr := validateBusNameElements(s, true)
	wellKnownErr := validateBusNameElements(s, false)
	if wellKnownErr == nil {
		return BusName{WellKnown, s}, nil
	}
	// Bare strings that happen to satisfy the looser Unique element
	// grammar (digit-leading elements) but weren't actually prefixed
	// with ':' are still invalid WellKnown names; report both
	// failures together so callers see why neither classification fit.
	return BusName{}, &InvalidBusNameError{
		Unique:    &InvalidUniqueNameError{Reason: describeUniqueFailure(s, uniqueErr)},
		WellKnown: &InvalidWellKnownNameError{Reason: wellKnownErr.Error()},
	}
}

func describeUniqueFailure(s string, err error) string {
	if !strings.HasPrefix(s, ":") {
		return "does not start with ':'"
	}
	if err != nil {
		return err.Error()
	}
	return "invalid"
}

// validateBusNameElements checks the common bus-name grammar: at
// least two '.'-separated elements, each non-empty and drawn from
// "A-Za-z0-9_-", the whole name at most 255 bytes. allowLeadingDigit
// is true for Unique names (everything after the ':') and false for
// WellKnown names, which may not start an element with a digit.
func validateBusNameElements(body string, allowLeadingDigit bool) error {
	if len(body) == 0 {
		return errKind(IncorrectType, "bus name is empty")
	}
	maxLen := 255
	if allowLeadingDigit {
		maxLen-- // account for the leading ':' of a Unique name
	}
	if len(body) > maxLen {
		return errKind(IncorrectType, "bus name exceeds 255 bytes")
	}

	elements := strings.Split(body, ".")
	if len(elements) < 2 {
		return errKind(IncorrectType, "bus name has no dots")
	}
	for _, e := range elements {
		if e == "" {
			return errKind(IncorrectType, "bus name has an empty element")
		}
		if !allowLeadingDigit && e[0] >= '0' && e[0] <= '9' {
			return errKind(IncorrectType, "element %q starts with a digit", e)
		}
		for i := 0; i < len(e); i++ {
			if !isBusNameElementChar(e[i]) {
				return errKind(IncorrectType, "element %q contains invalid character %q", e, e[i])
			}
		}
	}
	return nil
}

func isBusNameElementChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		return true
	default:
		return false
	}
}
