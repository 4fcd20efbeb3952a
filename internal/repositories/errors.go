package repositories

import "errors"

// ErrNotFound is wrapped by all repository lookups that miss, so callers
// can classify with errors.Is without matching message text.
var ErrNotFound = errors.New("record not found")
