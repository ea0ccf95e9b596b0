package program

// lexer walks the program text rune by rune. The language is ASCII-only by
// construction, so byte-wise scanning is sufficient.
type lexer struct {
	input  string
	offset int
	line   int
	ch     byte
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1}
	l.readByte()
	return l
}

func (l *lexer) readByte() {
	if l.offset >= len(l.input) {
		l.ch = 0
		l.offset++
		return
	}
	l.ch = l.input[l.offset]
	l.offset++
	if l.ch == '\n' {
		l.line++
	}
}

func (l *lexer) peekByte() byte {
	if l.offset >= len(l.input) {
		return 0
	}
	return l.input[l.offset]
}

func (l *lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readByte()
		case l.ch == '/' && l.peekByte() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readByte()
			}
		default:
			return
		}
	}
}

func (l *lexer) next() token {
	l.skipSpaceAndComments()
	line := l.line
	switch {
	case l.ch == 0:
		return token{typ: tokenEOF, line: line}
	case isLetter(l.ch):
		return token{typ: tokenIdent, literal: l.readIdent(), line: line}
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekByte())):
		return token{typ: tokenNumber, literal: l.readNumber(), line: line}
	}
	tok := token{literal: string(l.ch), line: line}
	switch l.ch {
	case '~':
		tok.typ = tokenTilde
	case '-':
		tok.typ = tokenMinus
	case ',':
		tok.typ = tokenComma
	case ';':
		tok.typ = tokenSemicolon
	case '(':
		tok.typ = tokenLParen
	case ')':
		tok.typ = tokenRParen
	case '{':
		tok.typ = tokenLBrace
	case '}':
		tok.typ = tokenRBrace
	case '[':
		tok.typ = tokenLBracket
	case ']':
		tok.typ = tokenRBracket
	default:
		tok.typ = tokenIllegal
	}
	l.readByte()
	return tok
}

func (l *lexer) readIdent() string {
	start := l.offset - 1
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readByte()
	}
	return l.input[start : l.offset-1]
}

func (l *lexer) readNumber() string {
	start := l.offset - 1
	seenDot := false
	for isDigit(l.ch) || (l.ch == '.' && !seenDot) {
		if l.ch == '.' {
			seenDot = true
		}
		l.readByte()
	}
	return l.input[start : l.offset-1]
}

func isLetter(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }
