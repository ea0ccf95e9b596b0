package program

// tokenType identifies the lexical category of a token.
type tokenType string

const (
	tokenIllegal tokenType = "ILLEGAL"
	tokenEOF     tokenType = "EOF"

	tokenIdent  tokenType = "IDENT"
	tokenNumber tokenType = "NUMBER"

	tokenTilde     tokenType = "~"
	tokenMinus     tokenType = "-"
	tokenComma     tokenType = ","
	tokenSemicolon tokenType = ";"
	tokenLParen    tokenType = "("
	tokenRParen    tokenType = ")"
	tokenLBrace    tokenType = "{"
	tokenRBrace    tokenType = "}"
	tokenLBracket  tokenType = "["
	tokenRBracket  tokenType = "]"
)

// token is one lexeme with its source line for error reporting.
type token struct {
	typ     tokenType
	literal string
	line    int
}
