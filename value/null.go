package value

type Null struct{}

func (n Null) Kind() Kind {
	return NullKind
}

func (n Null) NativeValue() any {
	return nil
}
