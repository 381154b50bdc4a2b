package models

import "errors"

// ErrInvalidPayload marks a decoded record that lacks required fields.
var ErrInvalidPayload = errors.New("invalid payload")
