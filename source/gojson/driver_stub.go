//go:build !gojson

package gojson

import (
	"io"

	json2xml "github.com/reoring/json2xml"
	jsonsrc "github.com/reoring/json2xml/source/json"
)

// Driver returns a stub driver when the gojson tag is not enabled. It
// delegates to the default scanner-based source directly to avoid recursion.
func Driver() json2xml.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) json2xml.Source {
	return json2xml.SourceFromEngine(jsonsrc.NewReader(r))
}
func (stub) NewBytes(b []byte) json2xml.Source {
	return json2xml.SourceFromEngine(jsonsrc.NewBytes(b))
}
func (stub) Name() string { return "scanner (gojson stub)" }
