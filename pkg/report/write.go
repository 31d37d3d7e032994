package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hubrank/pkg/errors"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// ValidFormats is the set of supported report formats.
var ValidFormats = map[string]bool{
	FormatTable: true,
	FormatJSON:  true,
	FormatCSV:   true,
}

// ValidateFormat checks that a report format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid report format: %q (must be one of: table, json, csv)", format)
	}
	return nil
}

// Write renders r to w in the given format. An empty format means table.
func Write(w io.Writer, r *Report, format string) error {
	switch format {
	case FormatTable, "":
		return WriteTable(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	default:
		return ValidateFormat(format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// Table returns the ranking as a lipgloss table.
func Table(r *Report) *table.Table {
	rows := make([][]string, len(r.Entries))
	for i, e := range r.Entries {
		rows[i] = []string{strconv.Itoa(i + 1), e.Label, strconv.Itoa(e.Degree)}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "Airport", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 || col == 2:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

// WriteTable writes the ranking as a bordered text table.
func WriteTable(w io.Writer, r *Report) error {
	_, err := fmt.Fprintln(w, Table(r).Render())
	return err
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes one row per entry with a header row.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "id", "label", "degree"}); err != nil {
		return err
	}
	for i, e := range r.Entries {
		row := []string{strconv.Itoa(i + 1), strconv.Itoa(e.ID), e.Label, strconv.Itoa(e.Degree)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
