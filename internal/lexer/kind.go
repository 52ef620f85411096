package lexer

// Kind is the token kind produced by this lexer.
type Kind uint8

const (
	Invalid Kind = iota
	Ident
	Keyword
	IntLit
	FloatLit
	StringLit
	Comment
	Punct
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	Ident:     "Ident",
	Keyword:   "Keyword",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	Comment:   "Comment",
	Punct:     "Punct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// ParseKind maps a kind name (case-sensitive) back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return Invalid, false
}

func (k Kind) IsKeyword() bool    { return k == Keyword }
func (k Kind) IsReserved() bool   { return k == Keyword }
func (k Kind) IsComment() bool    { return k == Comment }
func (k Kind) IsIdentifier() bool { return k == Ident }
func (k Kind) Keep() bool         { return k != Comment }

func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}
