package value

const (
	NullKind   = Kind("null")
	BoolKind   = Kind("bool")
	NumberKind = Kind("number")
	StringKind = Kind("string")
	ArrayKind  = Kind("array")
	ObjectKind = Kind("object")
)

type Kind string

// Value is the closed set of shapes a parsed JSON document can take. Trees
// are built bottom-up by the decoder and never mutated afterwards; a
// container exclusively owns its children.
type Value interface {
	Kind() Kind
	NativeValue() any
}

// Equal reports structural equality: same shape, same scalar values, same
// member order. Numbers with different lexemes compare by numeric value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Boolean:
		return av == b.(Boolean)
	case Number:
		return av.equal(b.(Number))
	case String:
		return av == b.(String)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if av.Entries[i].Key != bv.Entries[i].Key {
				return false
			}
			if !Equal(av.Entries[i].Value, bv.Entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
