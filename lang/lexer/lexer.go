// Package lexer tokenizes MelodyScript source text for the parser to
// consume, using a single current-rune cursor with an advance/peek pair and
// a longest-match dispatch in Scan, trimmed to the much smaller character
// set this language needs: no strings, no unicode identifiers beyond ASCII
// letters, no block comments.
package lexer

import (
	"unicode/utf8"

	"github.com/syncali/melodyscript/lang/diag"
	"github.com/syncali/melodyscript/lang/token"
)

// Lex tokenizes the whole of src and returns the resulting token stream,
// always terminated by a single token.EOF. It stops at the first lexical
// error, matching the pipeline's fail-fast contract.
func Lex(src []byte) ([]token.Token, error) {
	var l lexer
	l.init(src)

	var toks []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

type lexer struct {
	src  []byte
	off  int // byte offset of cur
	roff int // byte offset just past cur

	cur  rune
	line int
	col  int
}

func (l *lexer) init(src []byte) {
	l.src = src
	l.off = 0
	l.roff = 0
	l.line = 1
	l.col = 0 // advance() bumps to 1 before reporting anything
	l.advance()
}

func (l *lexer) advance() {
	if l.cur == '\n' {
		l.line++
		l.col = 0
	}
	if l.roff >= len(l.src) {
		l.off = len(l.src)
		l.cur = -1
		return
	}

	l.off = l.roff
	r, w := rune(l.src[l.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(l.src[l.roff:])
	}
	l.roff += w
	l.cur = r
	l.col++
}

func (l *lexer) peekByte() byte {
	if l.roff < len(l.src) {
		return l.src[l.roff]
	}
	return 0
}

// next scans and returns the next token.
func (l *lexer) next() (token.Token, error) {
	l.skipSpaceAndComments()

	pos := token.MakePos(l.line, l.col)

	switch {
	case isNoteStart(l.cur):
		if lit, ok := l.tryNote(); ok {
			return token.Token{Kind: token.NOTE, Lexeme: lit, Pos: pos}, nil
		}
		// Falls through to identifier handling: a letter in A-G that isn't
		// followed by a valid note suffix is just an identifier.
		lit := l.ident()
		return token.Token{Kind: token.Lookup(lit), Lexeme: lit, Pos: pos}, nil

	case isLetter(l.cur):
		lit := l.ident()
		return token.Token{Kind: token.Lookup(lit), Lexeme: lit, Pos: pos}, nil

	case isDigit(l.cur):
		lit := l.number()
		return token.Token{Kind: token.INT, Lexeme: lit, Pos: pos}, nil

	case l.cur == -1:
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	}

	cur := l.cur
	l.advance()
	switch cur {
	case '=':
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.EQ, Lexeme: "==", Pos: pos}, nil
		}
		return token.Token{Kind: token.ASSIGN, Lexeme: "=", Pos: pos}, nil
	case '+':
		return token.Token{Kind: token.PLUS, Lexeme: "+", Pos: pos}, nil
	case '-':
		return token.Token{Kind: token.MINUS, Lexeme: "-", Pos: pos}, nil
	case '*':
		return token.Token{Kind: token.STAR, Lexeme: "*", Pos: pos}, nil
	case '/':
		return token.Token{Kind: token.SLASH, Lexeme: "/", Pos: pos}, nil
	case '>':
		return token.Token{Kind: token.GT, Lexeme: ">", Pos: pos}, nil
	case '<':
		return token.Token{Kind: token.LT, Lexeme: "<", Pos: pos}, nil
	case '(':
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Pos: pos}, nil
	case ')':
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Pos: pos}, nil
	case '{':
		return token.Token{Kind: token.LBRACE, Lexeme: "{", Pos: pos}, nil
	case '}':
		return token.Token{Kind: token.RBRACE, Lexeme: "}", Pos: pos}, nil
	case ',':
		return token.Token{Kind: token.COMMA, Lexeme: ",", Pos: pos}, nil
	case ';':
		return token.Token{Kind: token.SEMI, Lexeme: ";", Pos: pos}, nil
	}

	return token.Token{}, diag.New(diag.LexicalError, l.line, "unexpected character %q", cur)
}

func (l *lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.cur == ' ' || l.cur == '\t' || l.cur == '\n' || l.cur == '\r':
			l.advance()
		case l.cur == '/' && l.peekByte() == '/':
			for l.cur != '\n' && l.cur != -1 {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) ident() string {
	start := l.off
	for isLetter(l.cur) || isDigit(l.cur) {
		l.advance()
	}
	return string(l.src[start:l.off])
}

func (l *lexer) number() string {
	start := l.off
	for isDigit(l.cur) {
		l.advance()
	}
	return string(l.src[start:l.off])
}

// tryNote attempts to scan a note literal [A-G](#|b)?[0-9] starting at the
// current rune. It only consumes input and returns ok=true when the full
// pattern matches; on failure the lexer cursor is left untouched so the
// caller can fall back to identifier scanning (this is what makes ordering
// "note before identifier" safe: a bare "A" with no digit is still a valid
// identifier).
func (l *lexer) tryNote() (string, bool) {
	start := l.off

	// peek one or two runes ahead without committing.
	i := l.roff
	var accidental byte
	if i < len(l.src) && (l.src[i] == '#' || l.src[i] == 'b') {
		accidental = l.src[i]
		i++
	}
	if i >= len(l.src) || !isAsciiDigit(l.src[i]) {
		return "", false
	}

	l.advance() // letter
	if accidental != 0 {
		l.advance() // # or b
	}
	l.advance() // digit
	return string(l.src[start:l.off]), true
}

func isNoteStart(r rune) bool {
	return r >= 'A' && r <= 'G'
}

func isLetter(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAsciiDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
