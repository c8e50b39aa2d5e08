package traittab

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyHeader is returned when the table's first line contains no
	// trait columns after the entry-name field.
	ErrEmptyHeader = errors.New("header has no trait columns")
)

// RowTooWideError indicates a data row carrying more value fields than the
// header declared trait names for. The row is skipped; the scan continues.
type RowTooWideError struct {
	Entry  string
	Fields int
	Traits int
}

func (e *RowTooWideError) Error() string {
	return fmt.Sprintf("row %q has %d value fields but the header declares %d traits", e.Entry, e.Fields, e.Traits)
}
