package json2xml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	eng "github.com/reoring/json2xml/internal/engine"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnexpectedEOF  = eng.CodeUnexpectedEOF
	CodeUnexpectedChar = eng.CodeUnexpectedChar
	CodeInvalidEscape  = eng.CodeInvalidEscape
	CodeInvalidNumber  = eng.CodeInvalidNumber
	CodeInvalidUTF8    = eng.CodeInvalidUTF8
	CodeMaxDepth       = eng.CodeMaxDepth
	CodeDuplicateKey   = eng.CodeDuplicateKey
	CodeTrailingData   = eng.CodeTrailingData
	CodeTruncated      = eng.CodeTruncated
	CodeParseError     = eng.CodeParseError
	CodeIOError        = eng.CodeIOError
	CodeRenderConfig   = eng.CodeRenderConfig
	CodeInternal       = eng.CodeInternal
)

// Exit code categories for CLI callers.
const (
	ExitSuccess      = 0
	ExitInvalidInput = 1
	ExitIOError      = 2
	ExitInternal     = 3
)

// Issue represents a single conversion failure or warning.
type Issue struct {
	Path    string // JSON Pointer into the input (for example: /items/2).
	Code    string // One of the codes listed above.
	Message string
	Offset  int64 // Byte offset in the input source (-1 when unknown).
	Line    int   // 1-based; 0 when unknown.
	Col     int
	Cause   error // Optional: underlying error.
}

// Issues is a collection of conversion errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, normalizePath(it.Path))
		if it.Line > 0 {
			fmt.Fprintf(b, " (line %d, col %d)", it.Line, it.Col)
		} else if it.Offset >= 0 {
			fmt.Fprintf(b, " (offset %d)", it.Offset)
		}
		if it.Message != "" {
			b.WriteString(": ")
			b.WriteString(it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice
// when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ExitCode collapses an error into the CLI exit categories: 0 success,
// 1 invalid input, 2 I/O failure, 3 render/configuration or internal fault.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	iss, ok := AsIssues(err)
	if !ok || len(iss) == 0 {
		return ExitInternal
	}
	switch iss[0].Code {
	case CodeIOError:
		return ExitIOError
	case CodeRenderConfig, CodeInternal:
		return ExitInternal
	default:
		return ExitInvalidInput
	}
}

// ---- internal error plumbing ----

func singleIssue(code, msg string) Issues {
	return Issues{Issue{Path: "/", Code: code, Message: msg, Offset: -1}}
}

func fromEngineIssue(si eng.SimpleIssue) Issue {
	return Issue{
		Path:    normalizePath(si.Path),
		Code:    si.Code,
		Message: si.Message,
		Offset:  si.Offset,
		Line:    si.Line,
		Col:     si.Col,
	}
}

// toIssues translates any engine or driver error into the public model.
// Errors with no structure of their own get fallbackCode.
func toIssues(err error, fallbackCode string) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{fromEngineIssue(ie.SimpleIssue)}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Issues{Issue{Path: "/", Code: CodeUnexpectedEOF, Message: "unexpected end of input", Offset: -1, Cause: err}}
	}
	return Issues{Issue{Path: "/", Code: fallbackCode, Message: err.Error(), Offset: -1, Cause: err}}
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
