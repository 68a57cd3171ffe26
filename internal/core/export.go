package core

import (
	"encoding/csv"
	"io"
)

// ExportColumns returns the header of a CSV export of r: the source
// columns in file order followed by the derived columns.
func ExportColumns(r *Roster) []string {
	cols := make([]string, 0, len(r.Columns)+3)
	cols = append(cols, r.Columns...)
	return append(cols, ColEmailDomain, ColAcademicYear, ColEducationLevel)
}

// WriteCSV writes members as UTF-8 comma-separated values with a header
// row. Null cells are written empty.
func WriteCSV(w io.Writer, r *Roster, members []Member) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns(r)); err != nil {
		return err
	}

	record := make([]string, len(r.Columns)+3)
	for _, m := range members {
		for i := range r.Columns {
			record[i] = ""
			if i < len(m.Values) && m.Values[i].Valid {
				record[i] = m.Values[i].String
			}
		}
		n := len(r.Columns)
		record[n] = m.EmailDomain
		record[n+1] = string(m.Year())
		record[n+2] = m.EducationLevel

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
