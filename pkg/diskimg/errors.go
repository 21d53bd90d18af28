// file: pkg/diskimg/errors.go

package diskimg

import "errors"

var (
	ErrInvalidImageSize = errors.New("invalid disk image size")
	ErrInvalidSector    = errors.New("invalid sector number")
	ErrSectorOutOfRange = errors.New("sector outside disk image")
	ErrCorruptChain     = errors.New("corrupt sector chain")
	ErrInvalidEntry     = errors.New("invalid directory entry")
	ErrNoMoreFiles      = errors.New("no more files in directory")
)
