package lexer

import "github.com/dlclark/regexp2"

// Numeric-literal surface-form re-validation. The hand-written scanner in
// scanNumber (number.go) decides, character by character, how much input to
// consume; these patterns are a second, independent check that what it
// consumed actually matches the grammar's numeric-literal productions
// exactly (the invariant that the stored text equals the recognized
// literal, digit separators included). regexp2 is used rather than the
// standard library's RE2-based regexp because the separator rule ("never
// adjacent to the radix prefix, the decimal point, the exponent marker,
// or another separator") is most directly expressed with a lookbehind
// assertion, which RE2 cannot execute at all.
var (
	binaryLiteralPattern  = regexp2.MustCompile(`^-?0b[01](_?[01])*$`, regexp2.None)
	octalLiteralPattern   = regexp2.MustCompile(`^-?0o[0-7](_?[0-7])*$`, regexp2.None)
	hexIntLiteralPattern  = regexp2.MustCompile(`^-?0x[0-9a-fA-F](_?[0-9a-fA-F])*$`, regexp2.None)
	decimalLiteralPattern = regexp2.MustCompile(
		`^-?[0-9](_?[0-9])*(\.[0-9](_?[0-9])*)?(?<=[0-9])([eE][+-]?[0-9](_?[0-9])*)?$`,
		regexp2.None)
	hexFloatLiteralPattern = regexp2.MustCompile(
		`^-?0x[0-9a-fA-F](_?[0-9a-fA-F])*(\.[0-9a-fA-F](_?[0-9a-fA-F])*)?(?<=[0-9a-fA-F])[pP][+-]?[0-9](_?[0-9])*$`,
		regexp2.None)
)

// ValidateNumericLiteral reports whether raw is a well-formed numeric
// literal under spec.md's four-radix grammar (binary/octal/hex integers,
// decimal floats, and hex floats with mandatory exponent).
func ValidateNumericLiteral(raw string) bool {
	for _, p := range []*regexp2.Regexp{
		binaryLiteralPattern, octalLiteralPattern, hexIntLiteralPattern,
		hexFloatLiteralPattern, decimalLiteralPattern,
	} {
		if matches(p, raw) {
			return true
		}
	}
	return false
}

func matches(p *regexp2.Regexp, s string) bool {
	ok, err := p.MatchString(s)
	return err == nil && ok
}
