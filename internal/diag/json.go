package diag

// Encoded is the wire shape for --json diagnostic output, mirrored on the
// teacher's internal/errors.Encoded so downstream tooling that already
// understands that shape needs no changes to consume EMP diagnostics.
type Encoded struct {
	Schema  string `json:"schema"`
	SID     string `json:"sid,omitempty"`
	Phase   string `json:"phase"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Span    struct {
		File       string `json:"file"`
		StartLine  int    `json:"start_line"`
		StartCol   int    `json:"start_col"`
		EndLine    int    `json:"end_line"`
		EndCol     int    `json:"end_col"`
		StartByte  int    `json:"start_byte"`
		EndByte    int    `json:"end_byte"`
	} `json:"span"`
	Fix *Fix `json:"fix,omitempty"`
}

const SchemaV1 = "emp.diagnostic.v1"

// Encode converts a Diagnostic into its JSON wire shape.
func Encode(d Diagnostic) Encoded {
	e := Encoded{
		Schema:  SchemaV1,
		SID:     string(d.SID),
		Phase:   string(d.Phase),
		Code:    d.Code,
		Message: d.Message,
		Fix:     d.Fix,
	}
	e.Span.File = d.Span.Start.File
	e.Span.StartLine = d.Span.Start.Line
	e.Span.StartCol = d.Span.Start.Column
	e.Span.EndLine = d.Span.End.Line
	e.Span.EndCol = d.Span.End.Column
	e.Span.StartByte = d.Span.Start.Offset
	e.Span.EndByte = d.Span.End.Offset
	return e
}

// EncodeAll converts every diagnostic in a list.
func EncodeAll(l *List) []Encoded {
	items := l.Items()
	out := make([]Encoded, len(items))
	for i, d := range items {
		out[i] = Encode(d)
	}
	return out
}
