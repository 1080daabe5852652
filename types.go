package json2xml

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/json2xml/xml"
)

// Severity expresses how strictly a condition is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// NullPolicy selects how JSON null is rendered.
type NullPolicy int

const (
	NullEmpty NullPolicy = iota // <key/>
	NullAttr                    // <key null="true"/>
)

// DefaultMaxDepth bounds nesting when Options.MaxDepth is zero. It keeps
// adversarial input an error instead of a stack overflow.
const DefaultMaxDepth = 1024

// Options bundles conversion options. The zero value is usable: root/item
// element defaults, compact output, empty-element nulls, default depth
// guard, unlimited size, duplicate keys preserved.
type Options struct {
	Root        string     `yaml:"root"`        // root element name, default "root"
	Item        string     `yaml:"item"`        // array item element name, default "item"
	Pretty      bool       `yaml:"pretty"`      // indent output
	Indent      string     `yaml:"indent"`      // default two spaces when Pretty
	Nulls       NullPolicy `yaml:"nulls"`       // empty | attribute
	IndexAttr   bool       `yaml:"index_attr"`  // record array positions as index="N"
	Declaration bool       `yaml:"declaration"` // emit the XML declaration first

	MaxDepth int   `yaml:"max_depth"` // 0 = DefaultMaxDepth; negative disables the guard
	MaxBytes int64 `yaml:"max_bytes"` // 0 = unlimited

	// OnDuplicateKey controls reader-side handling of duplicate object keys.
	// Ignore and Warn preserve every occurrence in order (the renderer emits
	// each as its own sibling); Error fails at the offending key.
	OnDuplicateKey Severity `yaml:"on_duplicate_key"`
}

func (o Options) renderConfig() xml.Config {
	return xml.Config{
		Root:        o.Root,
		Item:        o.Item,
		Pretty:      o.Pretty,
		Indent:      o.Indent,
		Nulls:       xml.NullPolicy(o.Nulls),
		IndexAttr:   o.IndexAttr,
		Declaration: o.Declaration,
	}
}

func (o Options) maxDepth() int {
	switch {
	case o.MaxDepth > 0:
		return o.MaxDepth
	case o.MaxDepth < 0:
		return 0
	default:
		return DefaultMaxDepth
	}
}

// OptionsFromYAML decodes an options document, rejecting unknown fields.
func OptionsFromYAML(data []byte) (Options, error) {
	var o Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && err != io.EOF {
		return Options{}, Issues{Issue{
			Path: "/", Code: CodeRenderConfig, Offset: -1, Cause: err,
			Message: "decoding options: " + err.Error(),
		}}
	}
	return o, nil
}

func (p *NullPolicy) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseNullPolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParseNullPolicy maps the textual policy names used by YAML options files
// and CLI flags.
func ParseNullPolicy(s string) (NullPolicy, error) {
	switch s {
	case "", "empty":
		return NullEmpty, nil
	case "attr", "attribute":
		return NullAttr, nil
	default:
		return NullEmpty, fmt.Errorf("unknown null policy %q (want empty or attribute)", s)
	}
}

func (sv *Severity) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseSeverity(s)
	if err != nil {
		return err
	}
	*sv = v
	return nil
}

// ParseSeverity maps the textual severity names used by YAML options files
// and CLI flags.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "", "ignore":
		return Ignore, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Ignore, fmt.Errorf("unknown severity %q (want ignore, warn or error)", s)
	}
}
