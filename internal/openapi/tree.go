package openapi

import (
	"strconv"
	"strings"

	orderedmap "github.com/pb33f/ordered-map/v2"
)

// Object is a decoded mapping. Keys keep their declaration order, which is
// what endpoint ordering is derived from.
type Object = *orderedmap.OrderedMap[string, any]

func newObject() Object {
	return orderedmap.New[string, any]()
}

// lookup returns a present, non-null member.
func lookup(o Object, key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.Get(key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func getObject(o Object, key string) (Object, bool) {
	v, ok := lookup(o, key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(Object)
	return obj, ok
}

func getArray(o Object, key string) []any {
	v, ok := lookup(o, key)
	if !ok {
		return nil
	}
	arr, _ := v.([]any)
	return arr
}

// getString only accepts string members; anything else reads as empty.
func getString(o Object, key string) string {
	v, ok := lookup(o, key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func getBool(o Object, key string) bool {
	v, ok := lookup(o, key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// scalarString renders string and number scalars as text.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// plain converts a decoded subtree into ordinary Go values
// (map[string]any, []any and scalars), dropping key order.
func plain(v any) any {
	switch t := v.(type) {
	case Object:
		m := make(map[string]any, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = plain(pair.Value)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
