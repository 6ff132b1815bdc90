package schema

// Value is a decoded JSON value.
// The interface is sealed: only the types in this package implement it.
type Value interface {
	isValue()
}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object with its members in document order.
type Object struct {
	Members []Member
}

// Array is a JSON array.
type Array []Value

// String is a JSON string.
type String string

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept as its literal text.
type Number string

// Null is the JSON null literal.
type Null struct{}

func (Object) isValue() {}
func (Array) isValue()  {}
func (String) isValue() {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (Null) isValue()   {}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set stores value under key. An existing key keeps its position and only
// its value is replaced.
func (o *Object) Set(key string, value Value) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// Keys returns the member keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.Members)
}
