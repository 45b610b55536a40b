package report

import (
	"encoding/csv"
	"io"
	"iter"
)

func streamCSV(w io.Writer, seq iter.Seq[Row]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for r := range seq {
		if err := cw.Write(r.cells()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
