// Package export produces the spreadsheet-compatible dump of the record
// collection: semicolon-delimited CSV with a UTF-8 byte-order mark and
// comma-decimal numbers, the dialect Excel expects in tr/eu locales.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"mesai/models"
	"mesai/overtime"
)

var header = []string{
	"ID", "Period", "Name", "Date", "Category", "Multiplier",
	"Start", "End", "Duration (Hours)", "Justification", "Status",
	"Rejection Reason", "Submitter", "Submitted At",
}

// WriteCSV writes one header row plus one row per entry. Free-text fields
// are quoted with embedded double quotes doubled.
func WriteCSV(w io.Writer, entries []models.OvertimeEntry) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, strings.Join(header, ";")+"\n"); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.ID,
			quote(e.Period),
			quote(e.Name),
			e.Date,
			string(e.Category),
			commaDecimal(strconv.FormatFloat(e.Multiplier, 'f', -1, 64)),
			e.Start,
			e.End,
			commaDecimal(fmt.Sprintf("%.2f", overtime.EntryHours(e.Start, e.End))),
			quote(e.Reason),
			string(e.Status),
			quote(e.RejectionReason),
			e.Username,
			e.SubmittedAt,
		}
		if _, err := io.WriteString(w, strings.Join(row, ";")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func commaDecimal(s string) string {
	return strings.ReplaceAll(s, ".", ",")
}
