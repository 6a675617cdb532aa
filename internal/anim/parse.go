package anim

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ItsNotGoodName/x-scroller/internal/core"
)

var ErrParseArray = errors.New("error parsing animations array")

// ParseCurve parses `<enabled> [duration_ms] [var <order> [p...]] [off <scale> <order> [p...]]`.
func ParseCurve(args []string) (*Curve, error) {
	if len(args) == 0 {
		return nil, errors.New("expected at least 1 argument")
	}

	enabled := core.ParseBoolean(args[0], true)
	if len(args) == 1 {
		return NewCurve(enabled, 0, 0, nil, 0, 0, nil)
	}

	duration, _ := strconv.ParseUint(args[1], 10, 32)

	var (
		varOrder, offOrder   int
		varPoints, offPoints []float64
		offScale             float64
		failed               bool
	)
	next := func(i *int) string {
		if *i >= len(args) {
			failed = true
			return ""
		}
		s := args[*i]
		*i++
		return s
	}
	for i := 2; i < len(args); {
		switch strings.ToLower(args[i]) {
		case "var":
			i++
			varOrder, _ = strconv.Atoi(next(&i))
			points, err := core.ParseFloatArray(next(&i))
			if err != nil {
				failed = true
				continue
			}
			varPoints = points
		case "off":
			i++
			offScale, _ = strconv.ParseFloat(next(&i), 64)
			offOrder, _ = strconv.Atoi(next(&i))
			points, err := core.ParseFloatArray(next(&i))
			if err != nil {
				failed = true
				continue
			}
			offPoints = points
		default:
			i++
		}
	}

	switch {
	case varPoints != nil || offPoints != nil:
		return NewCurve(enabled, uint32(duration), varOrder, varPoints, offScale, offOrder, offPoints)
	case failed:
		return nil, ErrParseArray
	default:
		return NewCurve(enabled, uint32(duration), 0, nil, 0, 0, nil)
	}
}
