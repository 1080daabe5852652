package value

// String holds decoded text: escape sequences resolved, valid UTF-8 only.
type String string

func (n String) Kind() Kind {
	return StringKind
}

func (n String) NativeValue() any {
	return (string)(n)
}
