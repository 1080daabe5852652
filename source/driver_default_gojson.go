// Package source opts the process into the go-json driver by side effect.
// Importing it in a separate package avoids an import cycle with the root.
package source

import (
	json2xml "github.com/reoring/json2xml"
	drvgojson "github.com/reoring/json2xml/source/gojson"
)

// init sets go-json as the default driver (a scanner-backed stub unless
// built with -tags gojson).
func init() { json2xml.SetJSONDriver(drvgojson.Driver()) }
