package config

import (
	"fmt"
	"os"
	"strconv"
)

// Board holds the dimensions used when a client does not ask for any.
type Board struct {
	Size  int
	Mines int
}

func lookupInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return v, nil
}

func NewBoard() (*Board, error) {
	size, err := lookupInt("BOARD_SIZE", 9)
	if err != nil {
		return nil, err
	}
	mines, err := lookupInt("BOARD_MINES", 10)
	if err != nil {
		return nil, err
	}
	if size <= 0 || mines <= 0 || mines >= size*size {
		return nil, fmt.Errorf(
			"BOARD_SIZE=%d and BOARD_MINES=%d do not describe a playable board",
			size, mines,
		)
	}
	return &Board{Size: size, Mines: mines}, nil
}
