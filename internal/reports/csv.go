package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

// utf8BOM keeps Excel from guessing the wrong encoding on Italian text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV emits a report as semicolon-delimited UTF-8 with BOM, header row
// first. Quoting follows RFC 4180: embedded quotes are doubled.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// GroupTotalRows flattens a grouped report for export.
func GroupTotalRows(totals []GroupTotal) [][]string {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{t.Key, t.Total.StringFixed(2), strconv.Itoa(t.Count)})
	}
	return rows
}
