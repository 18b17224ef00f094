package convert

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// convertCSV renders a CSV payload as a Markdown table. The first record is
// treated as the header row.
func convertCSV(data []byte, pageURL string) (*Result, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	title := titleFromURL(pageURL)
	var md strings.Builder
	md.WriteString("# " + title + "\n")

	if len(records) > 0 {
		md.WriteString("\n")
		for i, record := range records {
			md.WriteString("| " + strings.Join(record, " | ") + " |\n")
			if i == 0 {
				seps := make([]string, len(record))
				for j := range seps {
					seps[j] = "---"
				}
				md.WriteString("| " + strings.Join(seps, " | ") + " |\n")
			}
		}
	}

	return &Result{Markdown: md.String(), Title: title}, nil
}
