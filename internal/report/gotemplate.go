package report

import (
	"fmt"
	"io"
	"iter"
	"text/template"
)

func streamGoTemplate(w io.Writer, tmplStr string, seq iter.Seq[Row]) error {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	for r := range seq {
		if err := tmpl.Execute(w, r); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
