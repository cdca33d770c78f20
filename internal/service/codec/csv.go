package codec

import (
	"strings"
	"time"

	"inventario-backend/internal/domain/models"
)

// EncodeCSV renders the record sequence as comma-separated text: a header
// row of the fixed column labels plus the timestamp column, then one line
// per record. Every cell is wrapped in double quotes with internal quotes
// doubled. Lines are joined with a single newline, no trailing newline.
func EncodeCSV(fs models.FieldSet, records []models.Record) string {
	header := make([]string, 0, fs.Len()+1)
	for _, label := range fs.Labels() {
		header = append(header, quoteCell(label))
	}
	header = append(header, quoteCell(models.TimestampLabel))

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(header, ","))

	for _, rec := range records {
		cells := make([]string, 0, fs.Len()+1)
		for _, f := range fs.Fields {
			cells = append(cells, quoteCell(rec.FieldValue(f.Key)))
		}
		cells = append(cells, quoteCell(FormatTimestamp(rec.CreatedTime())))
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

// DecodeCSV parses foreign comma-separated text into records. The first
// non-blank line is the header; columns are recognized by case-insensitive
// substring match against each field's header tokens, so exports from other
// tools map as long as their headers contain the expected fragments. Missing
// columns yield empty fields. Every row is re-stamped with now; the source
// timestamp, if any, is not preserved. Zero usable rows is ErrNoRows.
func DecodeCSV(fs models.FieldSet, text string, now time.Time) ([]models.Record, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrNoRows
	}

	columns := mapColumns(fs, splitLine(lines[0]))

	records := make([]models.Record, 0, len(lines)-1)
	createdAt := now.UnixMilli()

	for _, line := range lines[1:] {
		cells := splitLine(line)
		rec := models.Record{CreatedAt: createdAt}
		for key, idx := range columns {
			if idx < len(cells) {
				rec = recordWithValue(rec, key, cells[idx])
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records, nil
}

// mapColumns builds the field-to-column index map from the header cells.
// The first header cell containing one of a field's tokens wins.
func mapColumns(fs models.FieldSet, header []string) map[models.FieldKey]int {
	columns := make(map[models.FieldKey]int, fs.Len())
	for _, f := range fs.Fields {
		for i, cell := range header {
			if headerMatches(cell, f.HeaderTokens) {
				columns[f.Key] = i
				break
			}
		}
	}
	return columns
}

func headerMatches(cell string, tokens []string) bool {
	upper := strings.ToUpper(cell)
	for _, token := range tokens {
		if strings.Contains(upper, token) {
			return true
		}
	}
	return false
}

// splitLine tokenizes one CSV line. A quote flips the in-quotes mode, during
// which commas are literal. Quote characters are kept while scanning and
// stripped only at token boundaries; doubled quotes inside a token are not
// unescaped and survive as two literal quote characters.
func splitLine(line string) []string {
	var (
		tokens   []string
		current  strings.Builder
		inQuotes bool
	)

	flush := func() {
		tokens = append(tokens, trimBoundaryQuotes(current.String()))
		current.Reset()
	}

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

func trimBoundaryQuotes(token string) string {
	token = strings.TrimPrefix(token, `"`)
	return strings.TrimSuffix(token, `"`)
}

func quoteCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func recordWithValue(rec models.Record, key models.FieldKey, value string) models.Record {
	switch key {
	case models.FieldEquipmentType:
		rec.EquipmentType = value
	case models.FieldPatrimony:
		rec.Patrimony = value
	case models.FieldLocation:
		rec.Location = value
	case models.FieldManufacturer:
		rec.Manufacturer = value
	case models.FieldModel:
		rec.Model = value
	case models.FieldUser:
		rec.User = value
	}
	return rec
}
