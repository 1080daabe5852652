package xml_test

import (
	"testing"

	"github.com/reoring/json2xml/xml"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"name", "name"},
		{"first-name", "first-name"},
		{"a.b", "a.b"},
		{"_x", "_x"},
		{"héllo", "héllo"},
		{"first name", "first_name"},
		{"a/b", "a_b"},
		{"ns:key", "ns_key"},
		{"1bad-key", "_1bad-key"},
		{"-lead", "_-lead"},
		{".lead", "_.lead"},
		{"", "_"},
		{"   ", "___"},
		{"xml", "_xml"},
		{"XMLthing", "_XMLthing"},
		{"xmlns", "_xmlns"},
		{"html", "html"},
		{"@type", "_type"},
		{"日本語", "日本語"},
		{"key!", "key_"},
	}
	for _, c := range cases {
		if got := xml.SanitizeName(c.key); got != c.want {
			t.Fatalf("SanitizeName(%q): want %q, got %q", c.key, c.want, got)
		}
	}
}

// Same key, same name, always.
func TestSanitizeNameDeterministic(t *testing.T) {
	for _, key := range []string{"1bad-key", "a b", "", "xml:lang"} {
		first := xml.SanitizeName(key)
		for i := 0; i < 3; i++ {
			if got := xml.SanitizeName(key); got != first {
				t.Fatalf("SanitizeName(%q) not deterministic: %q vs %q", key, first, got)
			}
		}
	}
}

func TestIsValidName(t *testing.T) {
	valid := []string{"root", "item", "_a", "a-b.c1", "élan"}
	for _, s := range valid {
		if !xml.IsValidName(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	invalid := []string{"", "1a", "-a", "a b", "a:b", "xmlfoo", "XMLfoo", "a<b"}
	for _, s := range invalid {
		if xml.IsValidName(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}
