package xml

import (
	"strings"
	"unicode"
)

// SanitizeName maps an arbitrary JSON object key onto a legal XML element
// name. The mapping is a pure function of the key: the same key always
// yields the same name, regardless of position. Distinct keys may collide
// after sanitization; the encoder emits both as-is and never disambiguates.
//
// Rules, applied in order:
//   - every character outside the supported Name grammar becomes '_'
//     (this includes ':', since namespaces are not supported);
//   - an empty key becomes "_";
//   - a leading character that can not start a name gets an '_' prefix;
//   - a result starting with "xml" in any case gets an '_' prefix.
func SanitizeName(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 1)
	for _, r := range key {
		if isNameChar(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	name := b.String()
	if name == "" {
		return "_"
	}
	first := []rune(name)[0]
	if !isNameStartChar(first) || hasXMLPrefix(name) {
		return "_" + name
	}
	return name
}

// IsValidName reports whether s already satisfies the supported element
// name grammar, including the reserved-prefix rule.
func IsValidName(s string) bool {
	if s == "" || hasXMLPrefix(s) {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isNameStartChar(r) {
				return false
			}
			continue
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

// The grammar below is a conservative subset of XML 1.0 Name: letters and
// '_' start a name; letters, digits, '-', '.' and '_' continue one.
func isNameStartChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) || r == '-' || r == '.' || unicode.IsDigit(r)
}

func hasXMLPrefix(s string) bool {
	if len(s) < 3 {
		return false
	}
	return strings.EqualFold(s[:3], "xml")
}
