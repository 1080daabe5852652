// Package json2xml converts JSON documents into well-formed XML:
//
// - A hand-written single-pass scanner with exact byte/line/column error positions
// - An ordered, immutable value tree preserving duplicate keys and number lexemes
// - A streaming XML renderer with deterministic element-name sanitization
// - Duplicate-key/depth/size enforcement applied while tokens stream
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the value model under value/, the renderer under xml/, input drivers
//   under source/, and the CLI under cmd/json2xml.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	out, err := json2xml.Convert(ctx, json2xml.FromBytes(data))
//	err = json2xml.ConvertTo(ctx, os.Stdout, json2xml.FromFile(path), opt)
//
//	v, err := json2xml.Parse(ctx, json2xml.FromString(`{"a":1}`))
//	out, err = json2xml.Render(v, json2xml.Options{Pretty: true})
package json2xml
