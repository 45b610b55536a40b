package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/formatf"
	"github.com/bjaus/formatf/internal/report"
)

var errWrite = errors.New("write failed")

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errWrite }

func sampleRows() []report.Row {
	var rows []report.Row
	for r := range report.Rows(formatf.Types("%d %s")) {
		rows = append(rows, r)
	}
	return rows
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    report.Format
		wantErr require.ErrorAssertionFunc
	}{
		"json":     {input: "json", want: report.JSON, wantErr: require.NoError},
		"jsonl":    {input: "jsonl", want: report.JSONL, wantErr: require.NoError},
		"yaml":     {input: "yaml", want: report.YAML, wantErr: require.NoError},
		"table":    {input: "table", want: report.Table, wantErr: require.NoError},
		"ascii":    {input: "ascii", want: report.ASCII, wantErr: require.NoError},
		"markdown": {input: "markdown", want: report.Markdown, wantErr: require.NoError},
		"plain":    {input: "plain", want: report.Plain, wantErr: require.NoError},
		"csv":      {input: "csv", want: report.CSV, wantErr: require.NoError},
		"tsv":      {input: "tsv", want: report.TSV, wantErr: require.NoError},
		"html":     {input: "html", want: report.HTML, wantErr: require.NoError},
		"list":     {input: "list", want: report.List, wantErr: require.NoError},
		"env":      {input: "env", want: report.ENV, wantErr: require.NoError},
		"template": {input: "go-template={{.Type}}", want: report.GoTemplate("{{.Type}}"), wantErr: require.NoError},
		"unknown":  {input: "xml", want: "", wantErr: require.Error},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := report.ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormatSentinel(t *testing.T) {
	t.Parallel()
	_, err := report.ParseFormat("xml")
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestFormats(t *testing.T) {
	t.Parallel()
	got := report.Formats()
	assert.Len(t, got, 12)
	assert.Equal(t, report.JSON, got[0])
	assert.Equal(t, "markdown", report.Markdown.String())
}

func TestRows(t *testing.T) {
	t.Parallel()

	var rows []report.Row
	for r := range report.Rows(formatf.Types("x%*d")) {
		rows = append(rows, r)
	}
	assert.Equal(t, []report.Row{
		{Index: 1, Offset: 1, Verb: "*", Type: "*"},
		{Index: 2, Offset: 1, Verb: "%d", Type: "int"},
	}, rows)
}

func TestWritePlain(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Plain, "", sampleRows()))
	assert.Equal(t, "1\t%d\tint\n2\t%s\tchar*\n", buf.String())
}

func TestWriteJSONL(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.JSONL, "", sampleRows()))
	assert.Equal(t,
		`{"index":1,"offset":0,"verb":"%d","type":"int"}`+"\n"+
			`{"index":2,"offset":3,"verb":"%s","type":"char*"}`+"\n",
		buf.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.JSON, "", sampleRows()))
	assert.JSONEq(t, `[
		{"index":1,"offset":0,"verb":"%d","type":"int"},
		{"index":2,"offset":3,"verb":"%s","type":"char*"}
	]`, buf.String())
	assert.Contains(t, buf.String(), "\n  {")
}

func TestWriteJSONEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.JSON, "", nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.YAML, "", sampleRows()))
	assert.Contains(t, buf.String(), "type: char*")

	var got []report.Row
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleRows(), got)
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Markdown, "", sampleRows()))
	want := strings.Join([]string{
		"|   # | Offset | Verb | Type  |",
		"| --: | -----: | ---- | ----- |",
		"|   1 |      0 | %d   | int   |",
		"|   2 |      3 | %s   | char* |",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.CSV, "", sampleRows()))
	assert.Equal(t, "#,Offset,Verb,Type\n1,0,%d,int\n2,3,%s,char*\n", buf.String())
}

func TestWriteTSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.TSV, "", sampleRows()))
	assert.Equal(t, "#\tOffset\tVerb\tType\n1\t0\t%d\tint\n2\t3\t%s\tchar*\n", buf.String())
}

func TestWriteList(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.List, "", sampleRows()))
	assert.Equal(t, "int\nchar*\n", buf.String())
}

func TestWriteENV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.ENV, "", sampleRows()))
	want := strings.Join([]string{
		`ARG1_OFFSET="0"`,
		`ARG1_VERB="%d"`,
		`ARG1_TYPE="int"`,
		``,
		`ARG2_OFFSET="3"`,
		`ARG2_VERB="%s"`,
		`ARG2_TYPE="char*"`,
		``,
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.HTML, "<%d %s>", sampleRows()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<table>\n  <caption>&lt;%d %s&gt;</caption>\n"))
	assert.Contains(t, out, `      <th style="text-align: right">#</th>`)
	assert.Contains(t, out, "      <td>char*</td>")
	assert.Contains(t, out, `<td colspan="4">2 arguments</td>`)
	assert.True(t, strings.HasSuffix(out, "</table>\n"))
}

func TestWriteGoTemplate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.GoTemplate("{{.Index}}={{.Type}}"), "", sampleRows()))
	assert.Equal(t, "1=int\n2=char*\n", buf.String())

	err := report.Write(&buf, report.GoTemplate("{{.Index"), "", sampleRows())
	require.ErrorIs(t, err, report.ErrInvalidTemplate)
}

func TestWriteTableASCII(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.ASCII, "", sampleRows()))
	want := strings.Join([]string{
		"+---+--------+------+-------+",
		"| # | Offset | Verb | Type  |",
		"+---+--------+------+-------+",
		"| 1 |      0 | %d   | int   |",
		"| 2 |      3 | %s   | char* |",
		"+---+--------+------+-------+",
		"2 arguments",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteTableTitle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.ASCII, "%d %s", sampleRows()))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "+"+strings.Repeat("-", 27)+"+", lines[0])
	assert.Equal(t, "|           %d %s           |", lines[1])
	assert.Equal(t, "+---+--------+------+-------+", lines[2])
}

func TestWriteTableRounded(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Table, "", sampleRows()[:1]))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "╭───┬"))
	assert.Contains(t, out, "│ 1 │      0 │ %d   │ int  │")
	assert.True(t, strings.HasSuffix(out, "╯\n1 argument\n"))
}

func TestWriteTableWideTitle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	title := strings.Repeat("%d", 20)
	require.NoError(t, report.Write(&buf, report.ASCII, title, sampleRows()))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "| "+title+" |", lines[1])
	assert.Equal(t, len(lines[0]), len(lines[2]))
}

func TestWriteIter(t *testing.T) {
	t.Parallel()

	for _, f := range report.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			var streamed, direct bytes.Buffer
			require.NoError(t, report.WriteIter(&streamed, f, "t", report.Rows(formatf.Types("%d %s"))))
			require.NoError(t, report.Write(&direct, f, "t", sampleRows()))
			assert.Equal(t, direct.String(), streamed.String())
		})
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	t.Parallel()
	err := report.Write(&bytes.Buffer{}, report.Format("xml"), "", nil)
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()

	for _, f := range report.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			err := report.WriteIter(errWriter{}, f, "t", report.Rows(formatf.Types("%d")))
			require.Error(t, err)
		})
	}
}
