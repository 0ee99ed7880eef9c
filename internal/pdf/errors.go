package pdf

import (
	"errors"
	"fmt"
)

var (
	ErrUnreadableDocument = errors.New("unreadable document")
	ErrNoPages            = fmt.Errorf("%w: document has no pages", ErrUnreadableDocument)
	ErrCompositionFailure = errors.New("composition failed")
)
