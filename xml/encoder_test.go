package xml_test

import (
	stdxml "encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/json2xml/internal/engine"
	"github.com/reoring/json2xml/value"
	"github.com/reoring/json2xml/xml"
)

func encode(t *testing.T, v value.Value, cfg xml.Config) string {
	t.Helper()
	var sb strings.Builder
	enc, err := xml.NewEncoder(&sb, cfg)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(v))
	return sb.String()
}

// wellFormed runs the document through the standard decoder.
func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := stdxml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, "output is not well-formed: %s", doc)
	}
}

func obj(pairs ...any) *value.Object {
	o := value.NewObject(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		o.Append(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return o
}

func TestEncodeObjectCompact(t *testing.T) {
	v := obj("name", value.String("John"), "age", value.Number("30"), "ok", value.True)
	got := encode(t, v, xml.Config{})
	want := `<root><name>John</name><age>30</age><ok>true</ok></root>`
	assert.Equal(t, want, got)
	wellFormed(t, got)
}

func TestEncodePretty(t *testing.T) {
	v := obj("name", value.String("John"), "tags", value.Array{value.Number("1"), value.Number("2")})
	got := encode(t, v, xml.Config{Pretty: true})
	want := "<root>\n" +
		"  <name>John</name>\n" +
		"  <tags>\n" +
		"    <item>1</item>\n" +
		"    <item>2</item>\n" +
		"  </tags>\n" +
		"</root>"
	assert.Equal(t, want, got)
	wellFormed(t, got)
}

func TestEncodeArrayRoot(t *testing.T) {
	got := encode(t, value.Array{value.Number("1"), value.Number("2"), value.Number("3")}, xml.Config{})
	assert.Equal(t, `<root><item>1</item><item>2</item><item>3</item></root>`, got)
}

func TestEncodeIndexAttr(t *testing.T) {
	got := encode(t, value.Array{value.String("a"), value.String("b")}, xml.Config{IndexAttr: true})
	assert.Equal(t, `<root><item index="0">a</item><item index="1">b</item></root>`, got)
	wellFormed(t, got)
}

func TestEncodeNullPolicies(t *testing.T) {
	v := obj("x", value.Null{})
	assert.Equal(t, `<root><x/></root>`, encode(t, v, xml.Config{}))
	assert.Equal(t, `<root><x null="true"/></root>`, encode(t, v, xml.Config{Nulls: xml.NullAttr}))
}

func TestEncodeEmptyContainers(t *testing.T) {
	assert.Equal(t, `<root/>`, encode(t, value.NewObject(0), xml.Config{}))
	assert.Equal(t, `<root/>`, encode(t, value.Array{}, xml.Config{}))
	got := encode(t, obj("a", value.Array{}, "b", value.NewObject(0)), xml.Config{})
	assert.Equal(t, `<root><a/><b/></root>`, got)
	wellFormed(t, got)
}

func TestEncodeDeclaration(t *testing.T) {
	got := encode(t, value.True, xml.Config{Declaration: true})
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><root>true</root>`, got)

	got = encode(t, value.True, xml.Config{Declaration: true, Pretty: true})
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<root>true</root>", got)
	wellFormed(t, got)
}

func TestEncodeEscaping(t *testing.T) {
	v := obj("msg", value.String(`a<b & "c" > d`))
	got := encode(t, v, xml.Config{})
	assert.Equal(t, `<root><msg>a&lt;b &amp; "c" &gt; d</msg></root>`, got)
	wellFormed(t, got)

	// CR must survive a round trip, so it is a character reference.
	got = encode(t, obj("m", value.String("a\rb")), xml.Config{})
	assert.Equal(t, `<root><m>a&#xD;b</m></root>`, got)
}

func TestEncodeSanitizedKeys(t *testing.T) {
	v := obj("1bad-key", value.Number("1"), "a b", value.Number("2"), "xml:lang", value.Number("3"))
	got := encode(t, v, xml.Config{})
	assert.Equal(t, `<root><_1bad-key>1</_1bad-key><a_b>2</a_b><_xml_lang>3</_xml_lang></root>`, got)
	wellFormed(t, got)
}

func TestEncodeDuplicateKeysAsSiblings(t *testing.T) {
	v := obj("k", value.Number("1"), "k", value.Number("2"))
	got := encode(t, v, xml.Config{})
	assert.Equal(t, `<root><k>1</k><k>2</k></root>`, got)
}

func TestEncodeCustomNames(t *testing.T) {
	got := encode(t, value.Array{value.Number("1")}, xml.Config{Root: "doc", Item: "entry"})
	assert.Equal(t, `<doc><entry>1</entry></doc>`, got)
}

func TestNewEncoderRejectsBadNames(t *testing.T) {
	var sb strings.Builder
	for _, cfg := range []xml.Config{
		{Root: "1bad"},
		{Root: "a b"},
		{Item: "xml-item"},
	} {
		_, err := xml.NewEncoder(&sb, cfg)
		require.Error(t, err)
		var ie eng.IssueError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, eng.CodeRenderConfig, ie.Code)
	}
	assert.Zero(t, sb.Len(), "nothing may be written for a bad config")
}

func TestEncodeUnrepresentableCodePoint(t *testing.T) {
	var sb strings.Builder
	enc, err := xml.NewEncoder(&sb, xml.Config{})
	require.NoError(t, err)
	err = enc.Encode(obj("m", value.String("a\x00b")))
	require.Error(t, err)
	var ie eng.IssueError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, eng.CodeInvalidUTF8, ie.Code)
}

func TestEncodeDeterministic(t *testing.T) {
	v := obj("b", value.Number("2"), "a", value.Number("1"))
	first := encode(t, v, xml.Config{Pretty: true})
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, encode(t, v, xml.Config{Pretty: true}))
	}
	// Member order is preserved, not sorted.
	assert.Contains(t, first, "<b>2</b>\n  <a>1</a>")
}
