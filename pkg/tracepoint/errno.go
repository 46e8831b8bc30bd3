package tracepoint

import "github.com/thorn-jmh/errorst"

var (
	ErrDuplicateName      = errorst.NewError("duplicate tracepoint name")
	ErrConflictingCapture = errorst.NewError("inline args and struct args are mutually exclusive")
	ErrBadArg             = errorst.NewError("malformed tracepoint argument")
)
