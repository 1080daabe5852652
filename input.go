package json2xml

import (
	"io"
	"os"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputString
	inputBytes
	inputFile
	inputReader
)

// Input selects where the JSON comes from: inline text, a byte slice, a
// file path, or an arbitrary reader. Construct one with the From functions;
// the zero value is rejected by the facade.
type Input struct {
	kind inputKind
	text string
	data []byte
	path string
	r    io.Reader
}

func FromString(s string) Input { return Input{kind: inputString, text: s} }

func FromBytes(b []byte) Input { return Input{kind: inputBytes, data: b} }

func FromFile(path string) Input { return Input{kind: inputFile, path: path} }

func FromReader(r io.Reader) Input { return Input{kind: inputReader, r: r} }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// open resolves the descriptor into a token Source. The returned closer
// releases the underlying file when one was opened.
func (in Input) open() (Source, io.Closer, error) {
	switch in.kind {
	case inputString:
		return JSONBytes([]byte(in.text)), nopCloser{}, nil
	case inputBytes:
		return JSONBytes(in.data), nopCloser{}, nil
	case inputFile:
		f, err := os.Open(in.path)
		if err != nil {
			return nil, nil, Issues{Issue{
				Path: "/", Code: CodeIOError, Offset: -1, Cause: err,
				Message: "opening input: " + err.Error(),
			}}
		}
		return JSONReader(f), f, nil
	case inputReader:
		return JSONReader(in.r), nopCloser{}, nil
	default:
		return nil, nil, singleIssue(CodeInternal, "empty input descriptor")
	}
}
