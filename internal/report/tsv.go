package report

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

func streamTSV(w io.Writer, seq iter.Seq[Row]) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for r := range seq {
		if _, err := fmt.Fprintln(w, strings.Join(r.cells(), "\t")); err != nil {
			return err
		}
	}
	return nil
}
