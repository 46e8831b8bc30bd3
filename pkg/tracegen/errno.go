package tracegen

import "github.com/thorn-jmh/errorst"

var (
	ErrBadTemplate = errorst.NewError("broken generation template")
	ErrEmptyModel  = errorst.NewError("no tracepoints registered")
)
