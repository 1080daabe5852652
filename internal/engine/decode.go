package engine

import (
	"github.com/reoring/json2xml/value"
)

// DecodeValue builds a value tree from the streaming token source. Any
// token error aborts the whole decode; there are no partial results.
func DecodeValue(src TokenSource) (value.Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok)
}

func decodeValue(src TokenSource, tok Token) (value.Value, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return value.String(tok.String), nil
	case KindNumber:
		return value.Number(tok.Number), nil
	case KindBool:
		return value.Boolean(tok.Bool), nil
	case KindNull:
		return value.Null{}, nil
	default:
		return nil, IssueError{SimpleIssue{
			Code:    CodeInternal,
			Path:    "/",
			Message: "token source produced a misplaced token",
			Offset:  tok.Offset,
		}}
	}
}

func decodeObject(src TokenSource) (value.Value, error) {
	obj := value.NewObject(4)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return obj, nil
		}
		if tok.Kind != KindKey {
			return nil, IssueError{SimpleIssue{
				Code:    CodeInternal,
				Path:    "/",
				Message: "token source produced a non-key token inside an object",
				Offset:  tok.Offset,
			}}
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		obj.Append(tok.String, v)
	}
}

func decodeArray(src TokenSource) (value.Value, error) {
	arr := value.Array{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
