package issue

import (
	"fmt"
	"strconv"
	"strings"
)

// Cursor is the server's opaque-ish pagination token, three colon-joined
// fields: window size, page offset, and a previous-direction flag.
// "50:2:0" asks for the third window of fifty going forward.
type Cursor struct {
	Value  int
	Offset int
	IsPrev bool
}

// FirstPage is the cursor for the opening window of the given size.
func FirstPage(perPage int) Cursor {
	return Cursor{Value: perPage}
}

// ParseCursor decodes a "value:offset:is_prev" token.
func ParseCursor(raw string) (Cursor, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("malformed cursor %q: want value:offset:is_prev", raw)
	}

	value, err := strconv.Atoi(parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor %q: bad value: %w", raw, err)
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor %q: bad offset: %w", raw, err)
	}
	prev, err := strconv.Atoi(parts[2])
	if err != nil || (prev != 0 && prev != 1) {
		return Cursor{}, fmt.Errorf("malformed cursor %q: bad direction flag", raw)
	}

	return Cursor{Value: value, Offset: offset, IsPrev: prev == 1}, nil
}

// String encodes the cursor in wire form.
func (c Cursor) String() string {
	prev := 0
	if c.IsPrev {
		prev = 1
	}
	return fmt.Sprintf("%d:%d:%d", c.Value, c.Offset, prev)
}

// Next returns the forward cursor for the following window.
func (c Cursor) Next() Cursor {
	return Cursor{Value: c.Value, Offset: c.Offset + 1}
}
