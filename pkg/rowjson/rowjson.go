// Package rowjson turns database rows into the JSON shapes the API serves.
// UUIDs become strings, timestamps become second-precision ISO strings with
// no zone suffix, and nil pointers become JSON null. Clients depend on those
// exact shapes.
package rowjson

import (
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the wire format for timestamps. No zone designator; the
// matching parser strips a trailing "Z" before reading input.
const TimeLayout = "2006-01-02T15:04:05"

// Row is a single record keyed by column name.
type Row = map[string]any

// EncodeRow normalizes every value in the row and applies the rename table
// to its keys. Keys absent from renames pass through unchanged.
func EncodeRow(row Row, renames map[string]string) Row {
	if row == nil {
		return nil
	}
	out := make(Row, len(row))
	for key, value := range row {
		if renamed, ok := renames[key]; ok {
			key = renamed
		}
		out[key] = encodeValue(value, renames)
	}
	return out
}

// EncodeRows normalizes a slice of rows, preserving order.
func EncodeRows(rows []Row, renames map[string]string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, EncodeRow(row, renames))
	}
	return out
}

// FormatTime renders a timestamp in the wire format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime reads a wire-format timestamp. A trailing "Z" is tolerated and
// ignored since some clients serialize UTC instants that way.
func ParseTime(value string) (time.Time, error) {
	if len(value) > 0 && value[len(value)-1] == 'Z' {
		value = value[:len(value)-1]
	}
	return time.Parse(TimeLayout, value)
}

func encodeValue(value any, renames map[string]string) any {
	switch v := value.(type) {
	case nil:
		return nil
	case uuid.UUID:
		return v.String()
	case *uuid.UUID:
		if v == nil {
			return nil
		}
		return v.String()
	case time.Time:
		return FormatTime(v)
	case *time.Time:
		if v == nil {
			return nil
		}
		return FormatTime(*v)
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case Row:
		return EncodeRow(v, renames)
	case []Row:
		return EncodeRows(v, renames)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, encodeValue(item, renames))
		}
		return out
	default:
		return value
	}
}
