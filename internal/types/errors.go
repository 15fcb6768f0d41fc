package types

import (
	"errors"
	"fmt"
)

var (
	ErrDataNotFound  = errors.New("data not found")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidRange  = errors.New("invalid date range")
)

type LoaderError struct {
	Path string
	Err  error
}

func (e LoaderError) Error() string {
	return fmt.Sprintf("failed to load from %s: %v", e.Path, e.Err)
}

func (e LoaderError) Unwrap() error {
	return e.Err
}

type RenderError struct {
	Target string
	Err    error
}

func (e RenderError) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.Target, e.Err)
}

func (e RenderError) Unwrap() error {
	return e.Err
}
