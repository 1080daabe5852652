package json2xml

import (
	"bytes"
	"context"
	"io"

	eng "github.com/reoring/json2xml/internal/engine"
	"github.com/reoring/json2xml/value"
	"github.com/reoring/json2xml/xml"
)

// Convert is the primary entry point. It parses the input fully, renders
// the tree, and returns the XML document. All-or-nothing: on any failure no
// bytes are returned.
func Convert(ctx context.Context, in Input, opts ...Options) ([]byte, error) {
	opt := pickOpt(opts)
	var buf bytes.Buffer
	if err := convert(ctx, &buf, in, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertTo is the streaming variant: the rendered document is written to w
// incrementally instead of being buffered wholesale. Options are validated
// and the parse completes before the first byte is written, so once output
// has started the only remaining failure modes are w itself and input code
// points XML can not represent.
func ConvertTo(ctx context.Context, w io.Writer, in Input, opts ...Options) error {
	return convert(ctx, w, in, pickOpt(opts))
}

// Parse exposes the reader half on its own: input to value tree, with the
// same enforcement the full conversion applies.
func Parse(ctx context.Context, in Input, opts ...Options) (value.Value, error) {
	opt := pickOpt(opts)
	src, closer, err := in.open()
	if err != nil {
		return nil, toIssues(err, CodeIOError)
	}
	defer closer.Close()
	v, err := decode(src, opt)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeIOError, Message: err.Error(), Offset: -1, Cause: err}}
	}
	return v, nil
}

// Render exposes the renderer half: a value tree (parsed or constructed
// programmatically) to XML bytes.
func Render(v value.Value, opts ...Options) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := xml.NewEncoder(&buf, pickOpt(opts).renderConfig())
	if err != nil {
		return nil, toIssues(err, CodeRenderConfig)
	}
	if err := enc.Encode(v); err != nil {
		return nil, toIssues(err, CodeInternal)
	}
	return buf.Bytes(), nil
}

func convert(ctx context.Context, w io.Writer, in Input, opt Options) error {
	// Configuration problems surface before the input is even opened.
	enc, err := xml.NewEncoder(w, opt.renderConfig())
	if err != nil {
		return toIssues(err, CodeRenderConfig)
	}

	src, closer, err := in.open()
	if err != nil {
		return toIssues(err, CodeIOError)
	}
	defer closer.Close()

	v, err := decode(src, opt)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return Issues{Issue{Path: "/", Code: CodeIOError, Message: err.Error(), Offset: -1, Cause: err}}
	}

	if err := enc.Encode(v); err != nil {
		return toIssues(err, CodeInternal)
	}
	return nil
}

func decode(src Source, opt Options) (value.Value, error) {
	enforced := eng.WrapWithEnforcement(EngineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.maxDepth(),
		MaxBytes:    opt.MaxBytes,
	})
	v, err := eng.DecodeValue(enforced)
	if err != nil {
		return nil, toIssues(err, CodeParseError)
	}
	// The scanner reports trailing garbage itself; one extra token pull
	// surfaces it (or confirms clean EOF).
	if _, err := enforced.NextToken(); err != io.EOF {
		if err == nil {
			return nil, singleIssue(CodeTrailingData, "unexpected data after top-level value")
		}
		return nil, toIssues(err, CodeParseError)
	}
	return v, nil
}

func pickOpt(opts []Options) Options {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return Options{}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
