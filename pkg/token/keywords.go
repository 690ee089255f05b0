package token

// The four reserved-word sets named in the lexical-primitives design.
// Union membership in any of them makes an identifier-shaped word a
// Keyword token instead of an Ident token; which set a word belongs to
// is informational only (it documents intent) since the grammar layer
// always matches by literal text via Keyword(word).

var declarationKeywords = set(
	"import", "let", "var", "typealias", "func", "enum", "struct", "class",
	"protocol", "init", "deinit", "extension", "subscript", "operator",
	"_",
)

var statementKeywords = set(
	"for", "in", "while", "repeat", "if", "else", "guard", "switch", "case",
	"default", "break", "continue", "fallthrough", "return", "throw",
	"defer", "do", "catch", "where",
)

var expressionTypeKeywords = set(
	"self", "Self", "super", "true", "false", "nil", "try", "throws",
	"rethrows", "is", "as", "dynamicType", "catch",
	"__FILE__", "__LINE__", "__COLUMN__", "__FUNCTION__",
)

var contextualKeywords = set(
	"get", "set", "willSet", "didSet", "weak", "unowned", "indirect",
	"lazy", "left", "right", "none", "precedence", "associativity",
	"prefix", "postfix", "infix", "mutating", "nonmutating", "override",
	"required", "final", "dynamic", "convenience", "optional", "Protocol",
	"Type",
)

// Words such as "inout", "available", "elseif", "endif", "line", "os",
// and "arch" are meaningful only in specific grammar positions (a
// parameter modifier, or right after '#') and are deliberately left out
// of the reserved sets: the grammar matches them positionally by literal
// text (see the parser's atIdentText and expectIdentText), so they remain valid identifiers
// everywhere else, matching the reserved-word enumeration in the
// lexical-primitives design exactly.

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsReserved reports whether word belongs to any of the four reserved
// sets and therefore must be lexed as a Keyword rather than an Ident.
func IsReserved(word string) bool {
	_, ok := declarationKeywords[word]
	if ok {
		return true
	}
	_, ok = statementKeywords[word]
	if ok {
		return true
	}
	_, ok = expressionTypeKeywords[word]
	if ok {
		return true
	}
	_, ok = contextualKeywords[word]
	return ok
}
