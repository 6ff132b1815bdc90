package schema

import (
	"fmt"
	"strings"
)

// Schema placeholders.
const (
	// StringPlaceholder replaces every string leaf.
	StringPlaceholder = "string"

	// NumberPlaceholder replaces every numeric leaf.
	NumberPlaceholder = "0"

	// unknownTypePrefix prefixes the type name of an unsupported value.
	unknownTypePrefix = "unknown_type_"
)

// Extract returns the schema of v.
//
// Objects keep their keys and order. A non-empty array becomes a one-element
// array holding the schema of its first element; an empty array stays empty.
// Extract is idempotent: the schema of a schema is itself.
func Extract(v Value) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Object:
		var out Object
		if len(t.Members) > 0 {
			out.Members = make([]Member, 0, len(t.Members))
		}
		for _, m := range t.Members {
			out.Members = append(out.Members, Member{Key: m.Key, Value: Extract(m.Value)})
		}
		return out
	case Array:
		if len(t) == 0 {
			return Array{}
		}
		return Array{Extract(t[0])}
	case Bool:
		return Bool(true)
	case Number:
		return Number(NumberPlaceholder)
	case String:
		return String(StringPlaceholder)
	case Null:
		return Null{}
	default:
		return String(unknownTypePrefix + typeName(v))
	}
}

// typeName returns the unqualified dynamic type name of v.
func typeName(v Value) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
