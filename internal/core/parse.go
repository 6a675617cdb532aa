package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidArray = errors.New("invalid array")

// ParseBoolean interprets a user supplied toggle. "toggle" inverts current.
func ParseBoolean(s string, current bool) bool {
	switch strings.ToLower(s) {
	case "1", "yes", "on", "true", "enable", "enabled", "active":
		return true
	case "toggle":
		return !current
	}
	return false
}

// ParseFloat returns NaN when s is not a complete float.
func ParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseColor parses #RRGGBB or #RRGGBBAA (the # is optional) into 0xRRGGBBAA.
func ParseColor(s string) (uint32, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	if len(s) == 6 {
		v = (v << 8) | 0xFF
	}
	return uint32(v), true
}

// ParseFloatArray parses "[a b c]". An empty "[]" yields a non-nil empty slice.
func ParseFloatArray(s string) ([]float64, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, ErrInvalidArray
	}
	fields := strings.Fields(s[1 : len(s)-1])
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, ErrInvalidArray
		}
		values = append(values, v)
	}
	return values, nil
}

// SplitArgs splits a command line on whitespace, keeping quoted strings and
// bracketed arrays as single arguments.
func SplitArgs(s string) []string {
	var (
		args    []string
		current strings.Builder
		quote   rune
		depth   int
		started bool
	)
	flush := func() {
		if started {
			args = append(args, current.String())
		}
		current.Reset()
		started = false
	}
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			started = true
		case r == '[':
			depth++
			current.WriteRune(r)
			started = true
		case r == ']':
			if depth > 0 {
				depth--
			}
			current.WriteRune(r)
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()
	return args
}
