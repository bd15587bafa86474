package draft

import "errors"

var (
	ErrUseAfterFinalize = errors.New("draft used after finalize")
	ErrDetached         = errors.New("draft detached from its parent")
	ErrIndex            = errors.New("index out of range")
	ErrKeyNotFound      = errors.New("key not found")
	ErrNotContainer     = errors.New("not a container of the requested kind")
)
