// Package csvline splits single CSV lines into fields.
//
// The published sheet export quotes fields containing commas and doubles
// embedded quotes, so the splitter follows RFC 4180 quoting without being a
// full document parser: callers feed it one line at a time and trim fields
// themselves.
package csvline

import "strings"

// Fields splits one raw CSV line on commas outside double quotes.
// A doubled quote inside a quoted field yields a literal quote. Malformed
// quoting degrades gracefully: an unterminated quote consumes the rest of
// the line as part of the current field. No trimming is performed.
func Fields(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote inside a quoted field.
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())
	return fields
}
