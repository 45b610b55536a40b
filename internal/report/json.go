package report

import (
	"encoding/json"
	"io"
	"iter"
)

func writeJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if rows == nil {
		rows = []Row{}
	}
	return enc.Encode(rows)
}

func streamJSONL(w io.Writer, seq iter.Seq[Row]) error {
	enc := json.NewEncoder(w)
	var streamErr error
	seq(func(r Row) bool {
		if err := enc.Encode(r); err != nil {
			streamErr = err
			return false
		}
		return true
	})
	return streamErr
}
