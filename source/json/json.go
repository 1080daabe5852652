// Package json implements the default token source: a hand-written,
// single-forward-pass JSON scanner. It enforces the full JSON grammar
// itself and reports errors with exact byte offsets and line/column
// positions, which the stdlib decoder cannot provide per token.
package json

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	eng "github.com/reoring/json2xml/internal/engine"
)

// phase tracks what the grammar allows next. Colons and commas are consumed
// inside NextToken and never surface as tokens.
type phase int

const (
	phaseValue           phase = iota // a value is required
	phaseObjectKeyOrEnd               // right after '{'
	phaseObjectKey                    // after ',' inside an object
	phaseObjectColon                  // after an object key
	phaseObjectNext                   // after a member value: ',' or '}'
	phaseArrayValueOrEnd              // right after '['
	phaseArrayNext                    // after an element: ',' or ']'
	phaseEnd                          // top-level value consumed
)

type frame struct {
	object bool
}

type scanner struct {
	r     *bufio.Reader
	off   int64 // byte offset of the next unread byte
	line  int   // 1-based position of the next unread byte
	col   int
	stack []frame
	phase phase
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	return &scanner{r: bufio.NewReaderSize(r, 64<<10), line: 1, col: 1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *scanner) Location() int64 { return s.off }

func (s *scanner) NextToken() (eng.Token, error) {
	for {
		if err := s.skipSpace(); err != nil {
			if err == io.EOF {
				if s.phase == phaseEnd {
					return eng.Token{}, io.EOF
				}
				return eng.Token{}, s.errHere(eng.CodeUnexpectedEOF, "unexpected end of input")
			}
			return eng.Token{}, s.ioError(err)
		}

		off, line, col := s.off, s.line, s.col
		c, err := s.readByte()
		if err != nil {
			return eng.Token{}, s.ioError(err)
		}

		switch s.phase {
		case phaseEnd:
			return eng.Token{}, errAt(eng.CodeTrailingData,
				"unexpected "+quoteByte(c)+" after top-level value", off, line, col)

		case phaseObjectKeyOrEnd, phaseObjectKey:
			if c == '}' && s.phase == phaseObjectKeyOrEnd {
				s.pop()
				return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
			}
			if c != '"' {
				return eng.Token{}, errAt(eng.CodeUnexpectedChar,
					"expected object key, got "+quoteByte(c), off, line, col)
			}
			key, err := s.scanString()
			if err != nil {
				return eng.Token{}, err
			}
			s.phase = phaseObjectColon
			return eng.Token{Kind: eng.KindKey, String: key, Offset: off}, nil

		case phaseObjectColon:
			if c != ':' {
				return eng.Token{}, errAt(eng.CodeUnexpectedChar,
					"expected ':' after object key, got "+quoteByte(c), off, line, col)
			}
			s.phase = phaseValue

		case phaseObjectNext:
			switch c {
			case ',':
				s.phase = phaseObjectKey
			case '}':
				s.pop()
				return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
			default:
				return eng.Token{}, errAt(eng.CodeUnexpectedChar,
					"expected ',' or '}' in object, got "+quoteByte(c), off, line, col)
			}

		case phaseArrayNext:
			switch c {
			case ',':
				s.phase = phaseValue
			case ']':
				s.pop()
				return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
			default:
				return eng.Token{}, errAt(eng.CodeUnexpectedChar,
					"expected ',' or ']' in array, got "+quoteByte(c), off, line, col)
			}

		case phaseArrayValueOrEnd:
			if c == ']' {
				s.pop()
				return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
			}
			return s.scanValue(c, off, line, col)

		default: // phaseValue
			return s.scanValue(c, off, line, col)
		}
	}
}

func (s *scanner) scanValue(c byte, off int64, line, col int) (eng.Token, error) {
	switch {
	case c == '{':
		s.stack = append(s.stack, frame{object: true})
		s.phase = phaseObjectKeyOrEnd
		return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
	case c == '[':
		s.stack = append(s.stack, frame{object: false})
		s.phase = phaseArrayValueOrEnd
		return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
	case c == '"':
		str, err := s.scanString()
		if err != nil {
			return eng.Token{}, err
		}
		s.afterValue()
		return eng.Token{Kind: eng.KindString, String: str, Offset: off}, nil
	case c == 't':
		if err := s.literal("rue", off, line, col); err != nil {
			return eng.Token{}, err
		}
		s.afterValue()
		return eng.Token{Kind: eng.KindBool, Bool: true, Offset: off}, nil
	case c == 'f':
		if err := s.literal("alse", off, line, col); err != nil {
			return eng.Token{}, err
		}
		s.afterValue()
		return eng.Token{Kind: eng.KindBool, Bool: false, Offset: off}, nil
	case c == 'n':
		if err := s.literal("ull", off, line, col); err != nil {
			return eng.Token{}, err
		}
		s.afterValue()
		return eng.Token{Kind: eng.KindNull, Offset: off}, nil
	case c == '-' || isDigit(c):
		num, err := s.scanNumber(c)
		if err != nil {
			return eng.Token{}, err
		}
		s.afterValue()
		return eng.Token{Kind: eng.KindNumber, Number: num, Offset: off}, nil
	default:
		return eng.Token{}, errAt(eng.CodeUnexpectedChar,
			"expected value, got "+quoteByte(c), off, line, col)
	}
}

// afterValue flips the phase to whatever the enclosing container allows
// after a completed value.
func (s *scanner) afterValue() {
	if len(s.stack) == 0 {
		s.phase = phaseEnd
		return
	}
	if s.stack[len(s.stack)-1].object {
		s.phase = phaseObjectNext
	} else {
		s.phase = phaseArrayNext
	}
}

func (s *scanner) pop() {
	s.stack = s.stack[:len(s.stack)-1]
	s.afterValue()
}

func (s *scanner) literal(rest string, off int64, line, col int) error {
	for i := 0; i < len(rest); i++ {
		c, err := s.readByte()
		if err == io.EOF {
			return s.errHere(eng.CodeUnexpectedEOF, "unexpected end of input in literal")
		}
		if err != nil {
			return s.ioError(err)
		}
		if c != rest[i] {
			return errAt(eng.CodeUnexpectedChar, "invalid literal", off, line, col)
		}
	}
	return nil
}

func (s *scanner) scanString() (string, error) {
	var b strings.Builder
	var seq [4]byte
	for {
		coff, cline, ccol := s.off, s.line, s.col
		c, err := s.readByte()
		if err == io.EOF {
			return "", errAt(eng.CodeUnexpectedEOF, "string literal not terminated", coff, cline, ccol)
		}
		if err != nil {
			return "", s.ioError(err)
		}
		switch {
		case c == '"':
			return b.String(), nil
		case c == '\\':
			if err := s.scanEscape(&b, coff, cline, ccol); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", errAt(eng.CodeUnexpectedChar,
				"unescaped control character "+quoteByte(c)+" in string", coff, cline, ccol)
		case c < utf8.RuneSelf:
			b.WriteByte(c)
		default:
			n := leadByteLen(c)
			if n == 0 {
				return "", errAt(eng.CodeInvalidUTF8, "invalid UTF-8 byte in string", coff, cline, ccol)
			}
			seq[0] = c
			for i := 1; i < n; i++ {
				cc, err := s.readByte()
				if err == io.EOF {
					return "", s.errHere(eng.CodeUnexpectedEOF, "unexpected end of input in string")
				}
				if err != nil {
					return "", s.ioError(err)
				}
				seq[i] = cc
			}
			// Rejects overlong encodings and encoded surrogates.
			if !utf8.Valid(seq[:n]) {
				return "", errAt(eng.CodeInvalidUTF8, "invalid UTF-8 sequence in string", coff, cline, ccol)
			}
			b.Write(seq[:n])
		}
	}
}

// scanEscape decodes one escape sequence; the backslash at (off, line, col)
// has already been consumed.
func (s *scanner) scanEscape(b *strings.Builder, off int64, line, col int) error {
	c, err := s.readByte()
	if err == io.EOF {
		return s.errHere(eng.CodeUnexpectedEOF, "unexpected end of input in escape sequence")
	}
	if err != nil {
		return s.ioError(err)
	}
	switch c {
	case '"', '\\', '/':
		b.WriteByte(c)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		r, err := s.scanHex4(off, line, col)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			r2, err := s.scanLowSurrogate(off, line, col)
			if err != nil {
				return err
			}
			combined := utf16.DecodeRune(r, r2)
			if combined == utf8.RuneError {
				return errAt(eng.CodeInvalidEscape, "invalid surrogate pair", off, line, col)
			}
			r = combined
		}
		b.WriteRune(r)
	default:
		return errAt(eng.CodeInvalidEscape, "invalid escape character "+quoteByte(c), off, line, col)
	}
	return nil
}

func (s *scanner) scanHex4(off int64, line, col int) (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		c, err := s.readByte()
		if err == io.EOF {
			return 0, s.errHere(eng.CodeUnexpectedEOF, "unexpected end of input in \\u escape")
		}
		if err != nil {
			return 0, s.ioError(err)
		}
		var d rune
		switch {
		case isDigit(c):
			d = rune(c - '0')
		case 'a' <= c && c <= 'f':
			d = rune(c-'a') + 10
		case 'A' <= c && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, errAt(eng.CodeInvalidEscape, "invalid \\u escape", off, line, col)
		}
		r = r<<4 | d
	}
	return r, nil
}

// scanLowSurrogate consumes the "\uXXXX" that must follow a high surrogate.
func (s *scanner) scanLowSurrogate(off int64, line, col int) (rune, error) {
	c1, err := s.readByte()
	if err == io.EOF {
		return 0, s.errHere(eng.CodeUnexpectedEOF, "unexpected end of input after surrogate")
	}
	if err != nil {
		return 0, s.ioError(err)
	}
	if c1 != '\\' {
		return 0, errAt(eng.CodeInvalidEscape, "unpaired surrogate in \\u escape", off, line, col)
	}
	c2, err := s.readByte()
	if err == io.EOF {
		return 0, s.errHere(eng.CodeUnexpectedEOF, "unexpected end of input after surrogate")
	}
	if err != nil {
		return 0, s.ioError(err)
	}
	if c2 != 'u' {
		return 0, errAt(eng.CodeInvalidEscape, "unpaired surrogate in \\u escape", off, line, col)
	}
	return s.scanHex4(off, line, col)
}

func (s *scanner) scanNumber(first byte) (string, error) {
	buf := make([]byte, 0, 24)
	buf = append(buf, first)

	c := first
	if c == '-' {
		d, ok := s.peek()
		if !ok || !isDigit(d) {
			return "", s.errHere(eng.CodeInvalidNumber, "digit expected after '-'")
		}
		s.mustReadByte()
		buf = append(buf, d)
		c = d
	}

	if c == '0' {
		if d, ok := s.peek(); ok && isDigit(d) {
			return "", s.errHere(eng.CodeInvalidNumber, "leading zeros are not allowed")
		}
	} else {
		buf = s.consumeDigits(buf)
	}

	if d, ok := s.peek(); ok && d == '.' {
		s.mustReadByte()
		buf = append(buf, d)
		if d2, ok := s.peek(); !ok || !isDigit(d2) {
			return "", s.errHere(eng.CodeInvalidNumber, "digit expected after decimal point")
		}
		buf = s.consumeDigits(buf)
	}

	if d, ok := s.peek(); ok && (d == 'e' || d == 'E') {
		s.mustReadByte()
		buf = append(buf, d)
		if d2, ok := s.peek(); ok && (d2 == '+' || d2 == '-') {
			s.mustReadByte()
			buf = append(buf, d2)
		}
		if d2, ok := s.peek(); !ok || !isDigit(d2) {
			return "", s.errHere(eng.CodeInvalidNumber, "digit expected in exponent")
		}
		buf = s.consumeDigits(buf)
	}

	return string(buf), nil
}

func (s *scanner) consumeDigits(buf []byte) []byte {
	for {
		d, ok := s.peek()
		if !ok || !isDigit(d) {
			return buf
		}
		s.mustReadByte()
		buf = append(buf, d)
	}
}

// ---- byte-level helpers ----

func (s *scanner) readByte() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.off++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c, nil
}

// mustReadByte consumes a byte the caller has already peeked.
func (s *scanner) mustReadByte() {
	_, _ = s.readByte()
}

func (s *scanner) peek() (byte, bool) {
	b, err := s.r.Peek(1)
	if err != nil {
		return 0, false
	}
	return b[0], true
}

func (s *scanner) skipSpace() error {
	for {
		b, err := s.r.Peek(1)
		if err != nil {
			return err
		}
		switch b[0] {
		case ' ', '\t', '\n', '\r':
			s.mustReadByte()
		default:
			return nil
		}
	}
}

// leadByteLen returns the UTF-8 sequence length implied by a lead byte, or
// zero when the byte can not start a sequence.
func leadByteLen(c byte) int {
	switch {
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

func (s *scanner) errHere(code, msg string) error {
	return errAt(code, msg, s.off, s.line, s.col)
}

func (s *scanner) ioError(err error) error {
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{
		Code:    eng.CodeIOError,
		Message: "reading input: " + err.Error(),
		Offset:  s.off,
		Line:    s.line,
		Col:     s.col,
	}}
}

func errAt(code, msg string, off int64, line, col int) error {
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{
		Code:    code,
		Message: msg,
		Offset:  off,
		Line:    line,
		Col:     col,
	}}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func quoteByte(c byte) string {
	if c < utf8.RuneSelf {
		return strconv.QuoteRune(rune(c))
	}
	return "0x" + strconv.FormatUint(uint64(c), 16)
}
