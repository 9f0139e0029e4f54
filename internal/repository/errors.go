package repository

import "errors"

// ErrCardNotFound is returned when a card vanishes between the ownership
// check and the move transaction's own read.
var ErrCardNotFound = errors.New("card not found")
