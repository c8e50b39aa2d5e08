package traittab

import (
	"io"
	"strings"

	"github.com/hupe1980/traittab/trait"
)

// NA is the literal sentinel written for a trait value an entry does not
// possess.
const NA = "NA"

// RowWriter serializes entries back into table rows.
//
// A missing trait is never fatal: the NA sentinel is written in its place
// and a warning is emitted to the configured logger.
type RowWriter struct {
	w      io.Writer
	logger *Logger
}

// NewRowWriter creates a RowWriter appending to w.
func NewRowWriter(w io.Writer, optFns ...Option) *RowWriter {
	o := applyOptions(optFns...)
	return &RowWriter{
		w:      w,
		logger: o.logger,
	}
}

// WriteHeader writes a header row: the entry header label prefixed with the
// comment marker, followed by the trait names.
func (rw *RowWriter) WriteHeader(entryHeader string, traits []string) error {
	fields := make([]string, 0, len(traits)+1)
	fields = append(fields, "#"+entryHeader)
	fields = append(fields, traits...)
	return rw.writeLine(fields)
}

// Write writes one entry as a table row: the entry name followed by one
// field per name in traitOrder. Absent traits render as the NA sentinel.
//
// The only failure mode is a sink I/O error.
func (rw *RowWriter) Write(entry *trait.Entry, traitOrder []string) error {
	fields := make([]string, 0, len(traitOrder)+1)
	fields = append(fields, entry.Name)
	for _, name := range traitOrder {
		v, ok := entry.Trait(name)
		if !ok {
			rw.logger.LogMissingTrait(entry.Name, name)
			fields = append(fields, NA)
			continue
		}
		fields = append(fields, v.String())
	}
	return rw.writeLine(fields)
}

func (rw *RowWriter) writeLine(fields []string) error {
	_, err := io.WriteString(rw.w, strings.Join(fields, "\t")+"\n")
	return err
}
