package value

// Object preserves member order and duplicate keys; the model never
// deduplicates, that decision belongs to whoever consumes the tree.
type Object struct {
	Entries []Entry
}

type Entry struct {
	Key   string
	Value Value
}

func NewObject(capacity int) *Object {
	return &Object{Entries: make([]Entry, 0, capacity)}
}

func (n *Object) Append(key string, val Value) {
	n.Entries = append(n.Entries, Entry{Key: key, Value: val})
}

// LookupValue returns the first entry for key, for inspection and tests.
func (n *Object) LookupValue(key string) (Value, bool) {
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (n *Object) Kind() Kind {
	return ObjectKind
}

func (n *Object) NativeValue() any {
	result := make(map[string]any, len(n.Entries))
	for _, entry := range n.Entries {
		result[entry.Key] = entry.Value.NativeValue()
	}
	return result
}
