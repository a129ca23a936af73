// Package types defines the closed set of Tiger types assigned by the type
// checker.
package types

// Type is the type of a Tiger expression or declaration.  The zero value is
// `Undefined`: the type of every node before it is checked.
type Type int

// Enumeration of types.
const (
	Undefined Type = iota
	Int
	String
	Void
)

var typeNames = [...]string{
	Undefined: "undefined",
	Int:       "int",
	String:    "string",
	Void:      "void",
}

func (t Type) String() string {
	if 0 <= int(t) && int(t) < len(typeNames) {
		return typeNames[t]
	}

	return "<invalid type>"
}

// IsValue returns whether a value of the type can be stored, passed, or
// compared: ie. the type is neither `void` nor undefined.
func (t Type) IsValue() bool {
	return t == Int || t == String
}

// Lookup returns the type named by a type name as it appears in source.
func Lookup(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "string":
		return String, true
	case "void":
		return Void, true
	}

	return Undefined, false
}
