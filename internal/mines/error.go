package mines

import "errors"

var ErrInvalidBoard = errors.New("invalid board parameters")
