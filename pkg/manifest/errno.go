package manifest

import "github.com/thorn-jmh/errorst"

var (
	ErrBadScope = errorst.NewError("invalid header scope")
)
