package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token. Offset is the byte offset of the
// token's first byte in the input (-1 when unknown).
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Issue codes shared between the scanner, the enforcement layer, and the
// public error model.
const (
	CodeUnexpectedEOF  = "unexpected_eof"
	CodeUnexpectedChar = "unexpected_char"
	CodeInvalidEscape  = "invalid_escape"
	CodeInvalidNumber  = "invalid_number"
	CodeInvalidUTF8    = "invalid_utf8"
	CodeMaxDepth       = "max_depth"
	CodeDuplicateKey   = "duplicate_key"
	CodeTrailingData   = "trailing_data"
	CodeTruncated      = "truncated"
	CodeParseError     = "parse_error"
	CodeIOError        = "io_error"
	CodeRenderConfig   = "render_config"
	CodeInternal       = "internal"
)

// SimpleIssue is the minimal issue representation used below the public API.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int64
	Line    int
	Col     int
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }
