package value

type Array []Value

func (n Array) Kind() Kind {
	return ArrayKind
}

func (n Array) NativeValue() any {
	result := make([]any, 0, len(n))
	for _, item := range n {
		result = append(result, item.NativeValue())
	}
	return result
}
