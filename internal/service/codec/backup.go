package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"inventario-backend/internal/domain/models"
)

// BackupEnvelope is the versioned wrapper used for full-state export and
// restore. It is distinct from the lenient import format: restore requires
// exactly this shape and preserves rows verbatim.
type BackupEnvelope struct {
	Version    int             `json:"version"`
	ExportedAt string          `json:"exportedAt"`
	Rows       []models.Record `json:"rows"`
}

// EncodeBackup wraps the record sequence in a pretty-printed envelope.
func EncodeBackup(records []models.Record, exportedAt time.Time) ([]byte, error) {
	env := BackupEnvelope{
		Version:    BackupVersion,
		ExportedAt: FormatTimestamp(exportedAt),
		Rows:       records,
	}
	if env.Rows == nil {
		env.Rows = []models.Record{}
	}
	return json.MarshalIndent(env, "", "  ")
}

// DecodeBackup parses a backup envelope. The rows property must be present
// as a sequence; its entries come back verbatim, timestamps included.
func DecodeBackup(data []byte) ([]models.Record, error) {
	var env struct {
		Rows *[]models.Record `json:"rows"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse backup envelope: %w", err)
	}
	if env.Rows == nil {
		return nil, ErrMissingRows
	}
	return *env.Rows, nil
}

// DecodeLenient normalizes externally sourced JSON onto the record shape.
// Accepted shapes: a bare array of objects, an envelope with a rows array,
// or an envelope with a data array; anything else is ErrUnrecognizedFormat.
// Each object is probed under every candidate key spelling of every field,
// in priority order; a source createdAt is kept when usable, otherwise the
// row is stamped with now. Zero resulting records is ErrNoRows.
func DecodeLenient(fs models.FieldSet, data []byte, now time.Time) ([]models.Record, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse import payload: %w", err)
	}

	elements, err := resolveShape(parsed)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(elements))
	for _, element := range elements {
		obj, ok := element.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, normalize(fs, obj, now))
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records, nil
}

// resolveShape extracts the element sequence from one of the accepted
// top-level shapes.
func resolveShape(parsed any) ([]any, error) {
	switch v := parsed.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if rows, ok := v["rows"].([]any); ok {
			return rows, nil
		}
		if rows, ok := v["data"].([]any); ok {
			return rows, nil
		}
	}
	return nil, ErrUnrecognizedFormat
}

func normalize(fs models.FieldSet, obj map[string]any, now time.Time) models.Record {
	rec := models.Record{CreatedAt: lookupCreatedAt(obj, now)}
	for _, f := range fs.Fields {
		rec = recordWithValue(rec, f.Key, lookupString(obj, f.ImportKeys))
	}
	return rec
}

// lookupString tries each candidate key in priority order; the first key
// present in the object wins, even when its value is empty.
func lookupString(obj map[string]any, keys []string) string {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			return v
		case nil:
			return ""
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

// lookupCreatedAt reads a source timestamp as a number or numeric string;
// anything else falls back to now.
func lookupCreatedAt(obj map[string]any, now time.Time) int64 {
	for _, key := range models.CreatedAtImportKeys {
		switch v := obj[key].(type) {
		case float64:
			return int64(v)
		case string:
			if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
				return ms
			}
		}
	}
	return now.UnixMilli()
}
