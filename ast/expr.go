package ast

// Expression is a sealed sum of seven variants. Every later stage
// (typeinfer, analyzer, expander, codegen) dispatches over it with an
// exhaustive type switch; adding an eighth variant is a compile-time
// breaking change by design.
type Expression interface {
	exprNode()
}

// Identifier names a local, fact, output, data-table, or (with a leading
// "@") global. Resolution order is defined by the typeinfer package.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode() {}

// IsGlobal reports whether this identifier denotes a global reference
// ("@name" in source).
func (i *Identifier) IsGlobal() bool {
	return len(i.Name) > 0 && i.Name[0] == '@'
}

// BareName returns the identifier with any leading "@" stripped.
func (i *Identifier) BareName() string {
	if i.IsGlobal() {
		return i.Name[1:]
	}
	return i.Name
}

// IsAlias reports whether this identifier denotes a decision-table alias
// reference ("#name" in source, invoked from a row's when/then cells).
func (i *Identifier) IsAlias() bool {
	return len(i.Name) > 0 && i.Name[0] == '#'
}

// AliasName returns the identifier with any leading "#" stripped.
func (i *Identifier) AliasName() string {
	if i.IsAlias() {
		return i.Name[1:]
	}
	return i.Name
}

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNotEq
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
)

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Left  Expression
	Op    BinaryOp
	Right Expression
}

func (*BinaryExpr) exprNode() {}

// IsArithmetic reports whether op is one of PLUS/MINUS/MULTIPLY/DIVIDE.
func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	default:
		return false
	}
}

// IsComparison reports whether op is one of the six comparison operators.
func (op BinaryOp) IsComparison() bool {
	return !op.IsArithmetic()
}

// Assignment assigns Value to Target. Target must be an Identifier or a
// Navigation; the analyzer enforces the narrower legal-target rules.
type Assignment struct {
	Target Expression
	Value  Expression
}

func (*Assignment) exprNode() {}

// Navigation is a dotted property-access chain rooted at Receiver.
type Navigation struct {
	Receiver Expression
	Names    []string
}

func (*Navigation) exprNode() {}

// MessageKind distinguishes the three Smalltalk-style message-send shapes.
type MessageKind int

const (
	MessageUnary MessageKind = iota
	MessageKeyword
	MessageDefault
)

// KeywordPart is one (keyword, argument) pair of a keyword message.
// Multi-part keyword messages compose into a single method name by
// concatenation, capitalizing all parts after the first.
type KeywordPart struct {
	Keyword  string
	Argument Expression
}

// UnaryMessage is a zero-argument selector send, e.g. "x size".
type UnaryMessage struct {
	Receiver Expression
	Selector string
}

func (*UnaryMessage) exprNode() {}

// KeywordMessage is one or more (keyword, argument) pairs composed into a
// single send, e.g. "x at: i" or "x scaleBy: a thenAdd: b".
type KeywordMessage struct {
	Receiver Expression
	Parts    []KeywordPart
}

func (*KeywordMessage) exprNode() {}

// MethodName returns the composed method name: the first keyword verbatim,
// every subsequent keyword capitalized, concatenated with no separator.
func (m *KeywordMessage) MethodName() string {
	if len(m.Parts) == 0 {
		return ""
	}
	name := m.Parts[0].Keyword
	for _, p := range m.Parts[1:] {
		name += capitalize(p.Keyword)
	}
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// DefaultMessage is the "!" suffix invocation of a no-arg functional
// receiver, e.g. a Supplier-like block reference.
type DefaultMessage struct {
	Receiver Expression
}

func (*DefaultMessage) exprNode() {}

// Block is a first-class closure over a statement list. An
// implicit-parameter block (ImplicitParam true) has a single synthetic
// parameter "it"; its body is rewritten by typeinfer before inference so
// every later stage sees only the explicit-parameter form.
type Block struct {
	Params        []string
	Body          []Statement
	ImplicitParam bool
}

func (*Block) exprNode() {}
