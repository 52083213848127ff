package window

import (
	"fmt"
	"strings"
)

// Closure selects which edges of a window are included.
type Closure string

const (
	// Left includes the lower edge and excludes the current row.
	Left Closure = "left"
	// Right excludes the lower edge and includes the current row.
	Right Closure = "right"
	// Both includes both edges.
	Both Closure = "both"
	// Neither excludes both edges.
	Neither Closure = "neither"
)

// DefaultClosure is used whenever no closure has been configured.
const DefaultClosure = Left

// ParseClosure converts a user supplied string into a Closure. The empty
// string resolves to DefaultClosure.
func ParseClosure(s string) (Closure, error) {
	c := Closure(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return DefaultClosure, nil
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate returns ErrInvalidInput for anything but the four known modes.
func (c Closure) Validate() error {
	switch c {
	case Left, Right, Both, Neither:
		return nil
	default:
		return Invalid("unsupported closure %q", string(c))
	}
}

// LeftClosed is 1 when the lower edge is included, 0 otherwise.
func (c Closure) LeftClosed() int {
	if c == Left || c == Both {
		return 1
	}
	return 0
}

// RightClosed is 1 when the current row is included, 0 otherwise.
func (c Closure) RightClosed() int {
	if c == Right || c == Both {
		return 1
	}
	return 0
}

func (c Closure) String() string {
	return string(c)
}

// Set implements pflag.Value so a Closure can be bound to a flag directly.
func (c *Closure) Set(s string) error {
	v, err := ParseClosure(s)
	if err != nil {
		return fmt.Errorf("closure: %w", err)
	}
	*c = v
	return nil
}

// Type implements pflag.Value.
func (c *Closure) Type() string {
	return "closure"
}
