package mutate

import (
	"github.com/signadot/go-mutate/draft"
	"github.com/signadot/go-mutate/patch"
)

var (
	ErrUseAfterFinalize = draft.ErrUseAfterFinalize
	ErrDetached         = draft.ErrDetached
	ErrIndex            = draft.ErrIndex
	ErrKeyNotFound      = draft.ErrKeyNotFound
	ErrNotContainer     = draft.ErrNotContainer

	ErrMalformedPatch   = patch.ErrMalformedPatch
	ErrPathNotFound     = patch.ErrPathNotFound
	ErrTypeMismatch     = patch.ErrTypeMismatch
	ErrUnsupportedPatch = patch.ErrUnsupportedPatch
)
