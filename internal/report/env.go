package report

import (
	"fmt"
	"io"
	"iter"
)

// streamENV writes shell-sourceable assignments, one block per row.
func streamENV(w io.Writer, seq iter.Seq[Row]) error {
	first := true
	for r := range seq {
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		prefix := fmt.Sprintf("ARG%d_", r.Index)
		pairs := [][2]string{
			{"OFFSET", fmt.Sprint(r.Offset)},
			{"VERB", r.Verb},
			{"TYPE", r.Type},
		}
		for _, kv := range pairs {
			if _, err := fmt.Fprintf(w, "%s%s=%q\n", prefix, kv[0], kv[1]); err != nil {
				return err
			}
		}
	}
	return nil
}
