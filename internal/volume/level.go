// Package volume defines the integer percentage level applied to audio
// output devices and the validation every caller goes through before a
// level reaches a platform command.
package volume

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level is a volume percentage in [0, 100].
type Level int

// Bounds for a valid level.
const (
	Min Level = 0
	Max Level = 100
)

// ErrOutOfRange reports a level outside [0, 100].
var ErrOutOfRange = errors.New("volume out of range")

// New validates n as a volume level.
func New(n int) (Level, error) {
	if n < int(Min) || n > int(Max) {
		return 0, fmt.Errorf("%w: %d (want %d-%d)", ErrOutOfRange, n, Min, Max)
	}
	return Level(n), nil
}

// Parse converts user input to a validated level.
func Parse(s string) (Level, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid volume %q: not an integer", s)
	}
	return New(n)
}

// Clamp saturates n into [0, 100] for callers that prefer silent
// correction over failure.
func Clamp(n int) Level {
	if n < int(Min) {
		return Min
	}
	if n > int(Max) {
		return Max
	}
	return Level(n)
}

// Scalar maps the level onto [0.0, 1.0] for master-volume scalar APIs.
func (l Level) Scalar() float64 {
	return float64(l) / 100
}

// FromScalar converts a [0.0, 1.0] scalar back to a percentage,
// rounding to the nearest integer and clamping drift outside the range.
func FromScalar(f float64) Level {
	return Clamp(int(f*100 + 0.5))
}

func (l Level) String() string {
	return strconv.Itoa(int(l)) + "%"
}
