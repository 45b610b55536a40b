package report

import (
	"fmt"
	"io"
	"iter"
)

func (r Row) String() string {
	return fmt.Sprintf("%d\t%s\t%s", r.Index, r.Verb, r.Type)
}

func streamPlain(w io.Writer, seq iter.Seq[Row]) error {
	var streamErr error
	seq(func(r Row) bool {
		if _, err := fmt.Fprintln(w, r); err != nil {
			streamErr = err
			return false
		}
		return true
	})
	return streamErr
}
