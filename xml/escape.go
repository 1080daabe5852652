package xml

import (
	"bufio"
	"strconv"

	eng "github.com/reoring/json2xml/internal/engine"
)

// JSON strings may carry code points XML 1.0 can not express at all (NUL and
// most other C0 controls, 0xFFFE/0xFFFF). Those surface as an encoding error
// rather than being silently dropped.

func writeEscapedText(w *bufio.Writer, s string) error {
	for _, r := range s {
		switch r {
		case '&':
			w.WriteString("&amp;")
		case '<':
			w.WriteString("&lt;")
		case '>':
			w.WriteString("&gt;")
		case '\r':
			// Literal CR would be normalized away by XML line-end handling.
			w.WriteString("&#xD;")
		default:
			if !isXMLChar(r) {
				return unrepresentable(r)
			}
			w.WriteRune(r)
		}
	}
	return nil
}

func writeEscapedAttr(w *bufio.Writer, s string) error {
	for _, r := range s {
		switch r {
		case '&':
			w.WriteString("&amp;")
		case '<':
			w.WriteString("&lt;")
		case '>':
			w.WriteString("&gt;")
		case '"':
			w.WriteString("&quot;")
		case '\t':
			w.WriteString("&#x9;")
		case '\n':
			w.WriteString("&#xA;")
		case '\r':
			w.WriteString("&#xD;")
		default:
			if !isXMLChar(r) {
				return unrepresentable(r)
			}
			w.WriteRune(r)
		}
	}
	return nil
}

// isXMLChar implements the XML 1.0 Char production. Input strings are
// already valid UTF-8, so surrogates can not appear here.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case 0x20 <= r && r <= 0xD7FF:
		return true
	case 0xE000 <= r && r <= 0xFFFD:
		return true
	case 0x10000 <= r && r <= 0x10FFFF:
		return true
	}
	return false
}

func unrepresentable(r rune) error {
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{
		Code:    eng.CodeInvalidUTF8,
		Message: "code point " + strconv.QuoteRune(r) + " is not representable in XML 1.0",
		Offset:  -1,
	}}
}
