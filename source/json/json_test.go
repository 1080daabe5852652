package json_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/json2xml/internal/engine"
	jsonsrc "github.com/reoring/json2xml/source/json"
)

func drain(t *testing.T, input string) ([]eng.Token, error) {
	t.Helper()
	src := jsonsrc.NewBytes([]byte(input))
	var toks []eng.Token
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func issueOf(t *testing.T, err error) eng.SimpleIssue {
	t.Helper()
	var ie eng.IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %T: %v", err, err)
	}
	return ie.SimpleIssue
}

func TestScanObject(t *testing.T) {
	toks, err := drain(t, `{"name": "John", "age": 30, "ok": true, "x": null}`)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	kinds := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindNumber,
		eng.KindKey, eng.KindBool,
		eng.KindKey, eng.KindNull,
		eng.KindEndObject,
	}
	if len(toks) != len(kinds) {
		t.Fatalf("want %d tokens, got %d", len(kinds), len(toks))
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d: want kind %d, got %d", i, k, toks[i].Kind)
		}
	}
	if toks[1].String != "name" || toks[2].String != "John" {
		t.Fatalf("unexpected strings: %q %q", toks[1].String, toks[2].String)
	}
	if toks[4].Number != "30" {
		t.Fatalf("number lexeme: %q", toks[4].Number)
	}
}

func TestTokenOffsets(t *testing.T) {
	toks, err := drain(t, `{"name": "John"}`)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if toks[0].Offset != 0 {
		t.Fatalf("begin offset: %d", toks[0].Offset)
	}
	if toks[1].Offset != 1 { // opening quote of "name"
		t.Fatalf("key offset: %d", toks[1].Offset)
	}
	if toks[2].Offset != 9 { // opening quote of "John"
		t.Fatalf("string offset: %d", toks[2].Offset)
	}
}

func TestStringEscapes(t *testing.T) {
	toks, err := drain(t, `"a\"b\\c\/d\b\f\n\r\tAé"`)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := "a\"b\\c/d\b\f\n\r\tAé"
	if toks[0].String != want {
		t.Fatalf("want %q, got %q", want, toks[0].String)
	}
}

func TestSurrogatePair(t *testing.T) {
	toks, err := drain(t, `"\ud83d\ude00"`)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if toks[0].String != "\U0001F600" {
		t.Fatalf("surrogate pair decoded wrong: %q", toks[0].String)
	}
}

func TestRawUTF8Passthrough(t *testing.T) {
	toks, err := drain(t, `"héllo ☃"`)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if toks[0].String != "héllo ☃" {
		t.Fatalf("got %q", toks[0].String)
	}
}

func TestNumberForms(t *testing.T) {
	for _, in := range []string{"0", "-0", "42", "-17", "3.14", "0.5", "1e10", "2.5E-3", "-1.2e+4"} {
		toks, err := drain(t, in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if toks[0].Number != in {
			t.Fatalf("%s: lexeme %q", in, toks[0].Number)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		code   string
		offset int64
	}{
		{"missing value", `{"a": }`, eng.CodeUnexpectedChar, 6},
		{"trailing comma array", `[1,2,]`, eng.CodeUnexpectedChar, 5},
		{"trailing comma object", `{"a":1,}`, eng.CodeUnexpectedChar, 7},
		{"missing closing brace", `{"a": 1`, eng.CodeUnexpectedEOF, 7},
		{"unterminated string", `"abc`, eng.CodeUnexpectedEOF, 4},
		{"invalid escape", `"a\qb"`, eng.CodeInvalidEscape, 2},
		{"incomplete unicode escape", `"\u12"`, eng.CodeInvalidEscape, 1},
		{"lone high surrogate", `"\ud83dx"`, eng.CodeInvalidEscape, 1},
		{"lone low surrogate", `"\ude00\ude00"`, eng.CodeInvalidEscape, 1},
		{"leading zero", `01`, eng.CodeInvalidNumber, 1},
		{"bare minus", `-`, eng.CodeInvalidNumber, 1},
		{"dot without digits", `1.`, eng.CodeInvalidNumber, 2},
		{"empty exponent", `1e`, eng.CodeInvalidNumber, 2},
		{"control char in string", "\"a\x01b\"", eng.CodeUnexpectedChar, 2},
		{"invalid utf8 byte", "\"a\xffb\"", eng.CodeInvalidUTF8, 2},
		{"trailing data", `{} []`, eng.CodeTrailingData, 3},
		{"missing colon", `{"a" 1}`, eng.CodeUnexpectedChar, 5},
		{"bad literal", `tru`, eng.CodeUnexpectedEOF, 3},
		{"empty input", ``, eng.CodeUnexpectedEOF, 0},
		{"bare value junk", `@`, eng.CodeUnexpectedChar, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := drain(t, c.input)
			if err == nil {
				t.Fatalf("expected error for %q", c.input)
			}
			si := issueOf(t, err)
			if si.Code != c.code {
				t.Fatalf("want code %s, got %s (%s)", c.code, si.Code, si.Message)
			}
			if si.Offset != c.offset {
				t.Fatalf("want offset %d, got %d (%s)", c.offset, si.Offset, si.Message)
			}
		})
	}
}

func TestLineAndColumn(t *testing.T) {
	_, err := drain(t, "{\n  \"a\": 01}")
	if err == nil {
		t.Fatalf("expected error")
	}
	si := issueOf(t, err)
	if si.Code != eng.CodeInvalidNumber {
		t.Fatalf("code: %s", si.Code)
	}
	if si.Line != 2 || si.Col != 9 {
		t.Fatalf("want line 2 col 9, got line %d col %d", si.Line, si.Col)
	}
}

func TestWhitespaceTolerated(t *testing.T) {
	toks, err := drain(t, " \t\r\n [ 1 , 2 ] \n")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(toks) != 4 {
		t.Fatalf("want 4 tokens, got %d", len(toks))
	}
}

func TestReaderSource(t *testing.T) {
	src := jsonsrc.NewReader(strings.NewReader(`[true]`))
	var n int
	for {
		_, err := src.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		n++
	}
	if n != 3 {
		t.Fatalf("want 3 tokens, got %d", n)
	}
	if src.Location() != 6 {
		t.Fatalf("location: %d", src.Location())
	}
}
