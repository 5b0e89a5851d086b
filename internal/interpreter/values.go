package interpreter

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/dop251/goja"
)

// AsList returns v as an array object. Array-likes and iterables do not count.
func AsList(v goja.Value) (*goja.Object, bool) {
	obj, ok := v.(*goja.Object)
	if !ok || obj == nil {
		return nil, false
	}
	return obj, obj.ClassName() == "Array"
}

func isObject(v goja.Value) bool {
	_, ok := v.(*goja.Object)
	return ok
}

// IsList reports whether v is an array.
func IsList(v goja.Value) bool {
	_, ok := AsList(v)
	return ok
}

// Each calls fn with the items of an array in index order and stops at the
// first error fn returns. Holes come back as undefined. Reading an item can
// run script code, so callers hold access and use Access.Inspect.
func Each(list *goja.Object, fn func(i int, item goja.Value) error) error {
	length := list.Get("length")
	if length == nil {
		return nil
	}
	n := length.ToInteger()
	for i := int64(0); i < n; i++ {
		item := list.Get(strconv.FormatInt(i, 10))
		if item == nil {
			item = goja.Undefined()
		}
		if err := fn(int(i), item); err != nil {
			return err
		}
	}
	return nil
}

// AsString returns the Go string for a primitive string value. String
// wrapper objects are rejected.
func AsString(v goja.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	if _, isObject := v.(*goja.Object); isObject {
		return "", false
	}
	t := v.ExportType()
	if t == nil || t.Kind() != reflect.String {
		return "", false
	}
	return v.String(), true
}

// TypeOf describes v for error messages.
func TypeOf(v goja.Value) string {
	switch {
	case v == nil || goja.IsUndefined(v):
		return "undefined"
	case goja.IsNull(v):
		return "null"
	}

	if obj, ok := v.(*goja.Object); ok {
		if _, isFunc := goja.AssertFunction(obj); isFunc {
			return "function"
		}
		return strings.ToLower(obj.ClassName())
	}

	t := v.ExportType()
	if t == nil {
		return "unknown"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return "number"
	}
	return t.String()
}
