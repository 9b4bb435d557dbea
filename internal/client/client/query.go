package client

import (
	"fmt"
	"net/url"
	"reflect"
)

// Params holds query parameters. Nil values, nil pointers and empty strings
// are skipped; slices expand to repeated keys (k=a&k=b). Keys are encoded in
// sorted order.
type Params map[string]any

func (p Params) Encode() string {
	q := url.Values{}
	for k, v := range p {
		appendValue(q, k, v)
	}
	return q.Encode()
}

// WithQuery appends the encoded params to path. No "?" is added when
// nothing survives encoding.
func WithQuery(path string, p Params) string {
	encoded := p.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func appendValue(q url.Values, key string, v any) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			appendValue(q, key, rv.Index(i).Interface())
		}
	case reflect.String:
		if rv.String() == "" {
			return
		}
		q.Add(key, rv.String())
	default:
		q.Add(key, fmt.Sprint(rv.Interface()))
	}
}
