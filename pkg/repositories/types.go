package repositories

import "errors"

type ErrNotFound struct {
	// Table is the table that was queried
	Table string
	// Key is the value that matched no row
	Key string
}

func (e *ErrNotFound) Error() string {
	if e.Table == "" {
		return "not found"
	}
	return e.Table + " row not found: " + e.Key
}

func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	return errors.As(err, &notFound)
}
