// Package xml renders a value tree as a well-formed XML document. The
// encoder streams through a buffered writer, so memory is bounded by tree
// depth rather than output size, and it never mutates the tree it is given.
package xml

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	eng "github.com/reoring/json2xml/internal/engine"
	"github.com/reoring/json2xml/value"
)

// NullPolicy selects how JSON null is rendered. The choice is fixed per
// encoder and applied uniformly.
type NullPolicy int

const (
	NullEmpty NullPolicy = iota // <key/>
	NullAttr                    // <key null="true"/>
)

const (
	DefaultRoot   = "root"
	DefaultItem   = "item"
	DefaultIndent = "  "

	declaration = `<?xml version="1.0" encoding="UTF-8"?>`
)

// Config carries the rendering options. Zero values mean the defaults.
type Config struct {
	Root        string
	Item        string
	Pretty      bool
	Indent      string
	Nulls       NullPolicy
	IndexAttr   bool // record array positions as index="N"
	Declaration bool
}

type Encoder struct {
	w   *bufio.Writer
	cfg Config
}

// NewEncoder validates the configuration up front so nothing is written for
// a misconfigured call.
func NewEncoder(w io.Writer, cfg Config) (*Encoder, error) {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Item == "" {
		cfg.Item = DefaultItem
	}
	if cfg.Indent == "" {
		cfg.Indent = DefaultIndent
	}
	if !IsValidName(cfg.Root) {
		return nil, configErr("root element name " + strconv.Quote(cfg.Root) + " is not a legal XML name")
	}
	if !IsValidName(cfg.Item) {
		return nil, configErr("array item element name " + strconv.Quote(cfg.Item) + " is not a legal XML name")
	}
	return &Encoder{w: bufio.NewWriterSize(w, 32<<10), cfg: cfg}, nil
}

// Encode writes the document for v. The underlying bufio.Writer latches the
// first write error, so I/O failures surface from the final Flush.
func (e *Encoder) Encode(v value.Value) error {
	if e.cfg.Declaration {
		e.w.WriteString(declaration)
		if e.cfg.Pretty {
			e.w.WriteByte('\n')
		}
	}
	if err := e.element(e.cfg.Root, v, 0, noAttr); err != nil {
		return err
	}
	return e.w.Flush()
}

type attr struct {
	name  string
	value string
}

var noAttr = attr{}

func (e *Encoder) element(name string, v value.Value, depth int, a attr) error {
	if e.cfg.Pretty && depth > 0 {
		e.w.WriteByte('\n')
		e.indent(depth)
	}

	switch val := v.(type) {
	case value.Null:
		if e.cfg.Nulls == NullAttr {
			a = attr{name: "null", value: "true"}
		}
		return e.emptyTag(name, a)
	case value.Boolean:
		return e.scalarTag(name, strconv.FormatBool(bool(val)), a)
	case value.Number:
		return e.scalarTag(name, val.String(), a)
	case value.String:
		return e.scalarTag(name, string(val), a)
	case value.Array:
		if len(val) == 0 {
			return e.emptyTag(name, a)
		}
		if err := e.openTag(name, a); err != nil {
			return err
		}
		for i, item := range val {
			ia := noAttr
			if e.cfg.IndexAttr {
				ia = attr{name: "index", value: strconv.Itoa(i)}
			}
			if err := e.element(e.cfg.Item, item, depth+1, ia); err != nil {
				return err
			}
		}
		e.closeTag(name, depth)
		return nil
	case *value.Object:
		if len(val.Entries) == 0 {
			return e.emptyTag(name, a)
		}
		if err := e.openTag(name, a); err != nil {
			return err
		}
		for _, entry := range val.Entries {
			if err := e.element(SanitizeName(entry.Key), entry.Value, depth+1, noAttr); err != nil {
				return err
			}
		}
		e.closeTag(name, depth)
		return nil
	default:
		return eng.IssueError{SimpleIssue: eng.SimpleIssue{
			Code:    eng.CodeInternal,
			Message: "unknown value kind " + string(v.Kind()),
			Offset:  -1,
		}}
	}
}

func (e *Encoder) openTag(name string, a attr) error {
	e.w.WriteByte('<')
	e.w.WriteString(name)
	if err := e.writeAttr(a); err != nil {
		return err
	}
	e.w.WriteByte('>')
	return nil
}

// closeTag ends a container element; children have already placed the
// cursor after the last child.
func (e *Encoder) closeTag(name string, depth int) {
	if e.cfg.Pretty {
		e.w.WriteByte('\n')
		e.indent(depth)
	}
	e.w.WriteString("</")
	e.w.WriteString(name)
	e.w.WriteByte('>')
}

func (e *Encoder) scalarTag(name, text string, a attr) error {
	if err := e.openTag(name, a); err != nil {
		return err
	}
	if err := writeEscapedText(e.w, text); err != nil {
		return err
	}
	e.w.WriteString("</")
	e.w.WriteString(name)
	e.w.WriteByte('>')
	return nil
}

func (e *Encoder) emptyTag(name string, a attr) error {
	e.w.WriteByte('<')
	e.w.WriteString(name)
	if err := e.writeAttr(a); err != nil {
		return err
	}
	e.w.WriteString("/>")
	return nil
}

func (e *Encoder) writeAttr(a attr) error {
	if a.name == "" {
		return nil
	}
	e.w.WriteByte(' ')
	e.w.WriteString(a.name)
	e.w.WriteString(`="`)
	if err := writeEscapedAttr(e.w, a.value); err != nil {
		return err
	}
	e.w.WriteByte('"')
	return nil
}

func (e *Encoder) indent(depth int) {
	e.w.WriteString(strings.Repeat(e.cfg.Indent, depth))
}

func configErr(msg string) error {
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{
		Code:    eng.CodeRenderConfig,
		Message: msg,
		Offset:  -1,
	}}
}
