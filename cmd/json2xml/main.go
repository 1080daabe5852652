// Command json2xml converts a JSON document to XML on stdout.
//
//	json2xml input.json
//	json2xml -s '{"name": "John"}'
//	cat input.json | json2xml --pretty --root doc
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/c2h5oh/datasize"

	json2xml "github.com/reoring/json2xml"
	// Opt into the go-json driver when built with -tags gojson.
	_ "github.com/reoring/json2xml/source"
)

var (
	app    = kingpin.New("json2xml", "Convert JSON documents to well-formed XML.")
	inline = app.Flag("string", "Convert an inline JSON string instead of a file.").Short('s').String()
	file   = app.Arg("file", "JSON file to convert; stdin when omitted.").String()

	configPath  = app.Flag("config", "YAML options file; flags override it.").String()
	rootName    = app.Flag("root", "Root element name.").Default(defaultRoot).String()
	itemName    = app.Flag("item", "Array item element name.").Default(defaultItem).String()
	pretty      = app.Flag("pretty", "Indent the output.").Bool()
	nulls       = app.Flag("nulls", "How JSON null renders.").Default("empty").Enum("empty", "attr", "attribute")
	indexAttr   = app.Flag("index-attr", "Record array positions as index attributes.").Bool()
	declaration = app.Flag("declaration", "Emit the XML declaration.").Bool()
	maxDepth    = app.Flag("max-depth", "Maximum nesting depth (0 = default guard).").Int()
	maxBytes    = app.Flag("max-bytes", "Maximum input size, e.g. 64MB (0 = unlimited).").Default("0").String()
	dupKeys     = app.Flag("dup-keys", "Duplicate key handling.").Default("ignore").Enum("ignore", "warn", "error")
)

const (
	defaultRoot = "root"
	defaultItem = "item"
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	opt, err := buildOptions()
	if err != nil {
		fail(err)
	}

	in, rereadable := selectInput()
	if opt.OnDuplicateKey == json2xml.Warn && rereadable {
		warnDuplicates()
	}

	if err := json2xml.ConvertTo(context.Background(), os.Stdout, in, opt); err != nil {
		fail(err)
	}
	fmt.Println()
}

func selectInput() (in json2xml.Input, rereadable bool) {
	switch {
	case *inline != "":
		return json2xml.FromString(*inline), true
	case *file != "":
		return json2xml.FromFile(*file), true
	default:
		return json2xml.FromReader(os.Stdin), false
	}
}

func buildOptions() (json2xml.Options, error) {
	var opt json2xml.Options
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return opt, json2xml.Issues{json2xml.Issue{
				Path: "/", Code: json2xml.CodeIOError, Offset: -1, Cause: err,
				Message: "reading options file: " + err.Error(),
			}}
		}
		opt, err = json2xml.OptionsFromYAML(data)
		if err != nil {
			return opt, err
		}
	}

	// Flags override the config file when they differ from their defaults.
	overrideString(&opt.Root, *rootName, defaultRoot)
	overrideString(&opt.Item, *itemName, defaultItem)
	if *pretty {
		opt.Pretty = true
	}
	if *indexAttr {
		opt.IndexAttr = true
	}
	if *declaration {
		opt.Declaration = true
	}
	if *maxDepth != 0 {
		opt.MaxDepth = *maxDepth
	}
	if *nulls != "empty" {
		// Enum() already validated the value.
		p, _ := json2xml.ParseNullPolicy(*nulls)
		opt.Nulls = p
	}
	if *dupKeys != "ignore" {
		sev, _ := json2xml.ParseSeverity(*dupKeys)
		opt.OnDuplicateKey = sev
	}
	if *maxBytes != "0" && *maxBytes != "" {
		var bs datasize.ByteSize
		if err := bs.UnmarshalText([]byte(*maxBytes)); err != nil {
			return opt, fmt.Errorf("invalid --max-bytes: %w", err)
		}
		opt.MaxBytes = int64(bs.Bytes())
	}
	return opt, nil
}

func overrideString(dst *string, flagVal, def string) {
	if flagVal != def {
		*dst = flagVal
		return
	}
	if *dst == "" {
		*dst = def
	}
}

// warnDuplicates reports duplicate keys on stderr without failing the run.
// The input is read a second time, so this is skipped for stdin.
func warnDuplicates() {
	in, _ := selectInput()
	iss, err := json2xml.DetectDuplicateKeys(in, json2xml.Warn, 16)
	if err != nil {
		return // the conversion pass will report it properly
	}
	for _, i := range iss {
		fmt.Fprintf(os.Stderr, "json2xml: warning: %s at %s\n", i.Message, i.Path)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "json2xml: "+err.Error())
	os.Exit(json2xml.ExitCode(err))
}
