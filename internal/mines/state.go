package mines

import (
	"fmt"
	"strconv"
)

type GameState uint8

const (
	Setup GameState = iota
	Play
	Win
	Loss
)

var gameStateNames = [...]string{
	Setup: "setup",
	Play:  "play",
	Win:   "win",
	Loss:  "loss",
}

// GameState implements [fmt.Stringer]
func (s GameState) String() string {
	if int(s) < len(gameStateNames) {
		return gameStateNames[s]
	}
	return "GameState(" + strconv.Itoa(int(s)) + ")"
}

// GameState implements [encoding.TextMarshaler]
func (s GameState) MarshalText() ([]byte, error) {
	if int(s) >= len(gameStateNames) {
		return nil, fmt.Errorf("unknown game state %d", s)
	}
	return []byte(s.String()), nil
}

func (s GameState) Over() bool {
	return s == Win || s == Loss
}
