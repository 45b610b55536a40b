package report

import (
	"fmt"
	"io"
	"iter"
)

// streamList writes the argument types one per line, the way a C prototype
// would list them.
func streamList(w io.Writer, seq iter.Seq[Row]) error {
	for r := range seq {
		if _, err := fmt.Fprintln(w, r.Type); err != nil {
			return err
		}
	}
	return nil
}
