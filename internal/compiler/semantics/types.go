package semantics

// Type is a canonical singleton for one of the primitive kinds. Two
// types are the same type iff they are the same pointer; there is
// exactly one *Type value per kind, handed out by the accessor
// functions below (IntType, FloatType, ...).
type Type struct {
	name string
}

var (
	intType    = &Type{"int"}
	floatType  = &Type{"float"}
	boolType   = &Type{"bool"}
	stringType = &Type{"string"}
	charType   = &Type{"char"}
	noneType   = &Type{"none"}
	errorType  = &Type{"error"}
)

func IntType() *Type    { return intType }
func FloatType() *Type  { return floatType }
func BoolType() *Type   { return boolType }
func StringType() *Type { return stringType }
func CharType() *Type   { return charType }

// NoneType stands in for an absent annotation; ErrorType stands in for
// a type that could not be determined because of an earlier error.
// Both are compatible with anything, so one bad type never cascades
// into a pile of unrelated mismatch diagnostics.
func NoneType() *Type  { return noneType }
func ErrorType() *Type { return errorType }

func (t *Type) String() string { return t.name }

// Compatible reports whether a value of type t may be used where u is
// expected. NoneType and ErrorType are compatible with anything in
// either position.
func Compatible(t, u *Type) bool {
	if t == noneType || u == noneType || t == errorType || u == errorType {
		return true
	}
	return t == u
}

// typeByName maps a parsed type-spec spelling to its canonical Type,
// for the primitive keyword spellings the type-spec grammar accepts.
var typeByName = map[string]*Type{
	"int":    intType,
	"float":  floatType,
	"bool":   boolType,
	"string": stringType,
	"char":   charType,
}

// LookupTypeName resolves a primitive type spelling, or ErrorType if
// it names something the skeleton checker doesn't model (a generic or
// user-defined type).
func LookupTypeName(name string) *Type {
	if t, ok := typeByName[name]; ok {
		return t
	}
	return errorType
}
