package agent

import "errors"

var (
	ErrToolNotFound = errors.New("tool not found")
	ErrEmptyMessage = errors.New("message is empty")
)
