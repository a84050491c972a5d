// wheel/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wheel

import (
	"errors"
)

// Every error returned while rendering matches exactly one of these under
// errors.Is.
var (
	ErrIOFailure     = errors.New("I/O failure")
	ErrRenderFailure = errors.New("render failure")
)

type ErrorKind int

const (
	// IOFailure: the output could not be created, written, or closed.
	IOFailure ErrorKind = iota
	// RenderFailure: the PDF library failed to set up the page or font,
	// or the drawing commands were malformed.
	RenderFailure
)

func (k ErrorKind) sentinel() error {
	if k == IOFailure {
		return ErrIOFailure
	}
	return ErrRenderFailure
}

func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

// RenderError records the kind of failure and the operation that failed.
type RenderError struct {
	Kind ErrorKind
	Op   string // e.g. "create", "write", "font"
	Path string // output path, if any
	Err  error
}

func ioError(op, path string, err error) *RenderError {
	return &RenderError{Kind: IOFailure, Op: op, Path: path, Err: err}
}

func renderError(op string, err error) *RenderError {
	return &RenderError{Kind: RenderFailure, Op: op, Err: err}
}

func (e *RenderError) Error() string {
	s := e.Kind.String() + ": " + e.Op
	if e.Path != "" {
		s += " " + e.Path
	}
	return s + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func (e *RenderError) Is(target error) bool {
	return target == e.Kind.sentinel()
}
