package diagnostics

// Kind is the closed set of diagnostic kinds the toolchain can emit.
// The zero value is never produced.
type Kind uint8

const (
	invalidKind Kind = iota

	InvalidCharacter
	UnterminatedString
	UnterminatedCharacter
	UnterminatedComment
	InvalidEscapeSequence
	InvalidNumber
	InvalidIndentation
	TabInIndentation
	UnexpectedToken
	Ambiguous
	VariableMissingType
	VariableRedeclaration
	FunctionMissingName
	TypeMismatch
	UndeclaredIdentifier

	numDiagnosticKinds
)

// metadata is the registry row for one diagnostic kind: a stable code,
// severity, message template (with {0}, {1}, ... placeholders), an
// optional hint, up to four notes, and a documentation path suffix.
type metadata struct {
	code     string
	severity Severity
	template string
	hint     string
	notes    []string
	docPath  string
}

// registry is the process-global, immutable diagnostic table. Every
// Kind must have a row here; Emitter.Emit does not check for a missing
// row, and a Kind without one reads as the zero metadata (empty code
// and template, Error severity).
var registry = [numDiagnosticKinds]metadata{
	InvalidCharacter: {
		code:     "ZIV-1001",
		severity: Error,
		template: "invalid character {0}",
		docPath:  "lexer/invalid-character",
	},
	UnterminatedString: {
		code:     "ZIV-1002",
		severity: Error,
		template: "unterminated string literal",
		hint:     "add a closing quotation mark",
		notes:    []string{"string literals must be closed with a matching quotation mark"},
		docPath:  "lexer/unterminated-string",
	},
	UnterminatedCharacter: {
		code:     "ZIV-1003",
		severity: Error,
		template: "unterminated character literal",
		hint:     "add a closing single quote",
		docPath:  "lexer/unterminated-character",
	},
	UnterminatedComment: {
		code:     "ZIV-1004",
		severity: Error,
		template: "unterminated block comment",
		hint:     "close the comment with --#",
		docPath:  "lexer/unterminated-comment",
	},
	InvalidEscapeSequence: {
		code:     "ZIV-1005",
		severity: Warning,
		template: "invalid escape sequence {0}",
		docPath:  "lexer/invalid-escape-sequence",
	},
	InvalidNumber: {
		code:     "ZIV-1006",
		severity: Error,
		template: "invalid numeric literal {0}",
		docPath:  "lexer/invalid-number",
	},
	InvalidIndentation: {
		code:     "ZIV-1007",
		severity: Error,
		template: "inconsistent indentation: expected a multiple of {0} spaces, found {1}",
		hint:     "align this line with an enclosing block",
		docPath:  "lexer/invalid-indentation",
	},
	TabInIndentation: {
		code:     "ZIV-1008",
		severity: Warning,
		template: "tab character in leading indentation",
		notes:    []string{"tabs are expanded to the next multiple of the indent width"},
		docPath:  "lexer/tab-in-indentation",
	},
	UnexpectedToken: {
		code:     "ZIV-2001",
		severity: Error,
		template: "unexpected token {0}, expected {1}",
		docPath:  "parser/unexpected-token",
	},
	Ambiguous: {
		code:     "ZIV-2002",
		severity: Error,
		template: "ambiguous expression: {0}",
		hint:     "add parentheses to disambiguate",
		docPath:  "parser/ambiguous-expression",
	},
	VariableMissingType: {
		code:     "ZIV-2003",
		severity: Error,
		template: "variable {0} is missing a type annotation",
		docPath:  "parser/variable-missing-type",
	},
	VariableRedeclaration: {
		code:     "ZIV-3001",
		severity: Error,
		template: "variable {0} is already declared in this scope",
		docPath:  "semantics/variable-redeclaration",
	},
	FunctionMissingName: {
		code:     "ZIV-2004",
		severity: Error,
		template: "function declaration is missing a name",
		docPath:  "parser/function-missing-name",
	},
	TypeMismatch: {
		code:     "ZIV-3002",
		severity: Error,
		template: "type mismatch: expected {0}, found {1}",
		docPath:  "semantics/type-mismatch",
	},
	UndeclaredIdentifier: {
		code:     "ZIV-3003",
		severity: Error,
		template: "undeclared identifier {0}",
		docPath:  "semantics/undeclared-identifier",
	},
}

func (k Kind) Severity() Severity { return registry[k].severity }
func (k Kind) Code() string       { return registry[k].code }
