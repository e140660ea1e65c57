package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAction is returned for action codes outside 0..3.
var ErrInvalidAction = errors.New("game: invalid action")

// Action is a shift direction. The numeric value is also the number of
// counter-clockwise quarter turns that maps the action onto Left.
type Action int

const (
	Left Action = iota
	Up
	Right
	Down
)

// Actions lists every action in canonical order.
var Actions = [...]Action{Left, Up, Right, Down}

// Valid reports whether a is one of the four actions.
func (a Action) Valid() bool {
	return a >= Left && a <= Down
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case Left:
		return "Left"
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	default:
		return "Action(" + strconv.Itoa(int(a)) + ")"
	}
}

// ParseAction accepts an action name (case-insensitive) or its numeric code.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l", "0":
		return Left, nil
	case "up", "u", "1":
		return Up, nil
	case "right", "r", "2":
		return Right, nil
	case "down", "d", "3":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

func checkAction(a Action) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	return nil
}
