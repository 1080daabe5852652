package value_test

import (
	"testing"

	"github.com/reoring/json2xml/value"
)

func TestKinds(t *testing.T) {
	cases := []struct {
		v    value.Value
		want value.Kind
	}{
		{value.Null{}, value.NullKind},
		{value.True, value.BoolKind},
		{value.Number("1.5"), value.NumberKind},
		{value.String("x"), value.StringKind},
		{value.Array{}, value.ArrayKind},
		{value.NewObject(0), value.ObjectKind},
	}
	for _, c := range cases {
		if got := c.v.Kind(); got != c.want {
			t.Fatalf("want %s, got %s", c.want, got)
		}
	}
}

func TestNumberLexeme(t *testing.T) {
	n := value.Number("42")
	if !n.IsInt() {
		t.Fatalf("42 should be integral")
	}
	i, err := n.Int64()
	if err != nil || i != 42 {
		t.Fatalf("want 42, got %d (err %v)", i, err)
	}

	f := value.Number("2.5e3")
	if f.IsInt() {
		t.Fatalf("2.5e3 should not be integral")
	}
	fv, err := f.Float64()
	if err != nil || fv != 2500 {
		t.Fatalf("want 2500, got %v (err %v)", fv, err)
	}

	// The lexeme survives untouched.
	if f.String() != "2.5e3" {
		t.Fatalf("lexeme changed: %s", f.String())
	}
}

func TestNumberConstructors(t *testing.T) {
	if got := value.FromInt64(-7).String(); got != "-7" {
		t.Fatalf("want -7, got %s", got)
	}
	// Shortest round-trip form.
	if got := value.FromFloat64(0.1).String(); got != "0.1" {
		t.Fatalf("want 0.1, got %s", got)
	}
}

func TestObjectPreservesDuplicates(t *testing.T) {
	o := value.NewObject(2)
	o.Append("k", value.Number("1"))
	o.Append("k", value.Number("2"))
	if len(o.Entries) != 2 {
		t.Fatalf("expected both entries, got %d", len(o.Entries))
	}
	first, ok := o.LookupValue("k")
	if !ok || !value.Equal(first, value.Number("1")) {
		t.Fatalf("LookupValue should return the first entry, got %v", first)
	}
}

func TestEqual(t *testing.T) {
	mk := func() value.Value {
		o := value.NewObject(2)
		o.Append("a", value.Array{value.Number("1"), value.String("x"), value.Null{}})
		o.Append("b", value.False)
		return o
	}
	if !value.Equal(mk(), mk()) {
		t.Fatalf("identical trees should be equal")
	}

	// Numbers compare by value when lexemes differ.
	if !value.Equal(value.Number("1e2"), value.Number("100")) {
		t.Fatalf("1e2 and 100 should compare equal")
	}
	if value.Equal(value.Number("1"), value.Number("2")) {
		t.Fatalf("1 and 2 should differ")
	}

	// Member order matters.
	a := value.NewObject(2)
	a.Append("x", value.Null{})
	a.Append("y", value.Null{})
	b := value.NewObject(2)
	b.Append("y", value.Null{})
	b.Append("x", value.Null{})
	if value.Equal(a, b) {
		t.Fatalf("member order should be significant")
	}
}

func TestNativeValue(t *testing.T) {
	o := value.NewObject(1)
	o.Append("n", value.Number("3"))
	m, ok := o.NativeValue().(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", o.NativeValue())
	}
	if m["n"] != int64(3) {
		t.Fatalf("want int64(3), got %v (%T)", m["n"], m["n"])
	}
}
