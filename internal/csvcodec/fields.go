package csvcodec

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// escapeField applies the file quoting rule: double embedded quotes, fold
// line breaks into a space, and wrap in quotes only when the value contains a
// comma, a space or a quote.
func escapeField(value string) string {
	value = strings.ReplaceAll(value, `"`, `""`)
	value = lineBreaks.Replace(value)
	if strings.ContainsAny(value, `, "`) {
		return `"` + value + `"`
	}
	return value
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func joinRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeField(f)
	}
	return strings.Join(escaped, ",")
}

// splitRecords breaks text into records on newlines that sit outside quoted
// fields. A quote opens a quoted field only at the start of a field; a bare
// quote inside an unquoted value ("5\" bay") is literal. Inside a quoted
// field "" is an escaped quote. A trailing carriage return is dropped from
// each record.
func splitRecords(text string) []string {
	var (
		records    []string
		start      int
		inQuotes   bool
		fieldStart = true
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					i++
					continue
				}
				inQuotes = false
			}
			continue
		}
		switch c {
		case '"':
			inQuotes = fieldStart
			fieldStart = false
		case ',':
			fieldStart = true
		case '\n':
			records = append(records, strings.TrimSuffix(text[start:i], "\r"))
			start = i + 1
			fieldStart = true
		case ' ', '\t':
		default:
			fieldStart = false
		}
	}
	return append(records, strings.TrimSuffix(text[start:], "\r"))
}

// parseLine splits one record into trimmed values. Quoted fields may contain
// commas and newlines, and "" inside quotes unescapes to ". A trailing comma
// yields one more empty field.
func parseLine(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return []string{}, nil
	}
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	values, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []string{}, nil
		}
		return nil, err
	}
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return values, nil
}

// splitPlain is the legacy splitter: plain commas, no quoting.
func splitPlain(line string) []string {
	values := strings.Split(line, ",")
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return values
}
