package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse  = errors.New("parse error")
	ErrKeyTag = fmt.Errorf("%w: mapping keys must be scalars", ErrParse)
)
