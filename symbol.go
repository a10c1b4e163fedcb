package thumbasm

// Symbol names a label. N is the caller-chosen name type: string for
// human-readable labels, or int for compact numeric labels in
// space-conscious embedded callers. A symbol-valued operand is passed to
// a mnemonic as SymRef(name), a literal one as Val(v), so the two are
// always distinct at the call site.
type Symbol[N comparable] struct {
	Name N
}

// NewSymbol creates a symbol with the given name.
func NewSymbol[N comparable](name N) Symbol[N] {
	return Symbol[N]{Name: name}
}

// Immediate is either a literal signed 32-bit value or a reference to a
// symbol. The zero value is the literal value 0.
type Immediate[N comparable] struct {
	isSymbol bool
	value    Imm
	sym      Symbol[N]
}

// Val wraps a literal value as an Immediate.
func Val[N comparable](v Imm) Immediate[N] {
	return Immediate[N]{value: v}
}

// SymRef wraps a symbol name as a symbol-valued Immediate.
func SymRef[N comparable](name N) Immediate[N] {
	return Immediate[N]{isSymbol: true, sym: Symbol[N]{Name: name}}
}

// IsSymbol reports whether this immediate refers to a symbol rather than
// carrying a literal value.
func (i Immediate[N]) IsSymbol() bool { return i.isSymbol }

// Value returns the literal value. Only meaningful when !IsSymbol().
func (i Immediate[N]) Value() Imm { return i.value }

// Sym returns the referenced symbol. Only meaningful when IsSymbol().
func (i Immediate[N]) Sym() Symbol[N] { return i.sym }

// Equal reports structural equality: two symbol references are equal iff
// their names are equal; a literal value and a symbol reference are
// never equal, regardless of the literal's numeric value.
func (i Immediate[N]) Equal(o Immediate[N]) bool {
	if i.isSymbol != o.isSymbol {
		return false
	}
	if i.isSymbol {
		return i.sym.Name == o.sym.Name
	}
	return i.value == o.value
}
