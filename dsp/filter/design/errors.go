package design

import "errors"

// ErrInvalidSpec is returned when a filter specification cannot be realised.
var ErrInvalidSpec = errors.New("design: invalid filter spec")
