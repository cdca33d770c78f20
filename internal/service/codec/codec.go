// Package codec holds the pure converters between the record sequence and
// the external artifact formats: delimited text, the multi-sheet workbook
// and the JSON backup envelope. Nothing here touches the store or performs
// IO; every function is a plain data transformation.
package codec

import (
	"errors"
	"time"
)

// BackupVersion tags the JSON backup envelope format.
const BackupVersion = 1

// timestampLayout is the toISOString-style instant used on exported
// artifacts: UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrNoRows signals an import whose input yielded zero usable rows.
	ErrNoRows = errors.New("no usable rows in input")
	// ErrMissingRows signals a backup envelope without a rows sequence.
	ErrMissingRows = errors.New("backup envelope has no rows sequence")
	// ErrUnrecognizedFormat signals a lenient import payload whose shape is
	// neither a bare array nor an envelope carrying rows or data.
	ErrUnrecognizedFormat = errors.New("unrecognized import format")
)

// FormatTimestamp renders a creation instant the way exports serialize it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
