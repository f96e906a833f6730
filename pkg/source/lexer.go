package source

import "bytes"

// TokenKind classifies a raw token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenWhitespace
	TokenIdent
	TokenNumber
	TokenString
	TokenChar
	TokenLineComment
	TokenBlockComment
	TokenPunct
	TokenDirective
	TokenUnknown
)

var tokenKindNames = [...]string{
	TokenEOF:          "eof",
	TokenWhitespace:   "whitespace",
	TokenIdent:        "ident",
	TokenNumber:       "number",
	TokenString:       "string",
	TokenChar:         "char",
	TokenLineComment:  "line-comment",
	TokenBlockComment: "block-comment",
	TokenPunct:        "punct",
	TokenDirective:    "directive",
	TokenUnknown:      "unknown",
}

// String returns the name of the token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "unknown"
}

// IsComment reports whether the kind is either comment form.
func (k TokenKind) IsComment() bool {
	return k == TokenLineComment || k == TokenBlockComment
}

// Token is a raw lexeme covering bytes [Start, End).
type Token struct {
	Kind  TokenKind
	Start int
	End   int
}

// Text returns the token's bytes within content.
func (t Token) Text(content []byte) []byte {
	if t.Start < 0 || t.End > len(content) || t.Start > t.End {
		return nil
	}
	return content[t.Start:t.End]
}

// Len returns the token length in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Punctuators ordered longest first for maximal munch.
var punctuators = []string{
	">>=", "<<=", "<=>", "->*", "...",
	"::", "->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", ".*", "##",
}

// Identifier prefixes that turn a following quote into an encoded literal.
var literalPrefixes = map[string]bool{
	"L": true, "u": true, "U": true, "u8": true,
	"R": true, "LR": true, "uR": true, "UR": true, "u8R": true,
}

// IsIdentStart reports whether ch can begin an identifier.
func IsIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

// IsIdentChar reports whether ch can continue an identifier.
func IsIdentChar(ch byte) bool {
	return IsIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// IsHorizontalSpace reports whether ch is a space, tab, vertical tab or form feed.
func IsHorizontalSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f'
}

// IsNewline reports whether ch terminates a line.
func IsNewline(ch byte) bool {
	return ch == '\n' || ch == '\r'
}

// LexAt lexes the single raw token that starts at offset.
//
// No preprocessing happens: macros are ordinary identifiers and a line
// beginning with '#' is one directive token including continuations.
func LexAt(content []byte, offset int) Token {
	n := len(content)
	if offset < 0 || offset >= n {
		return Token{Kind: TokenEOF, Start: offset, End: offset}
	}

	ch := content[offset]
	switch {
	case IsHorizontalSpace(ch) || IsNewline(ch):
		end := offset
		for end < n && (IsHorizontalSpace(content[end]) || IsNewline(content[end])) {
			end++
		}
		return Token{Kind: TokenWhitespace, Start: offset, End: end}

	case ch == '/' && offset+1 < n && content[offset+1] == '/':
		return Token{Kind: TokenLineComment, Start: offset, End: lineCommentEnd(content, offset)}

	case ch == '/' && offset+1 < n && content[offset+1] == '*':
		end := bytes.Index(content[offset+2:], []byte("*/"))
		if end < 0 {
			return Token{Kind: TokenBlockComment, Start: offset, End: n}
		}
		return Token{Kind: TokenBlockComment, Start: offset, End: offset + 2 + end + 2}

	case ch == '#' && atLineStart(content, offset):
		return Token{Kind: TokenDirective, Start: offset, End: directiveEnd(content, offset)}

	case IsIdentStart(ch):
		end := offset
		for end < n && IsIdentChar(content[end]) {
			end++
		}
		if end < n && literalPrefixes[string(content[offset:end])] {
			switch content[end] {
			case '"':
				if content[end-1] == 'R' {
					return Token{Kind: TokenString, Start: offset, End: rawStringEnd(content, end)}
				}
				return Token{Kind: TokenString, Start: offset, End: quotedEnd(content, end, '"')}
			case '\'':
				if content[end-1] != 'R' {
					return Token{Kind: TokenChar, Start: offset, End: quotedEnd(content, end, '\'')}
				}
			}
		}
		return Token{Kind: TokenIdent, Start: offset, End: end}

	case isDigit(ch) || (ch == '.' && offset+1 < n && isDigit(content[offset+1])):
		return Token{Kind: TokenNumber, Start: offset, End: numberEnd(content, offset)}

	case ch == '"':
		return Token{Kind: TokenString, Start: offset, End: quotedEnd(content, offset, '"')}

	case ch == '\'':
		return Token{Kind: TokenChar, Start: offset, End: quotedEnd(content, offset, '\'')}
	}

	rest := content[offset:]
	for _, p := range punctuators {
		if bytes.HasPrefix(rest, []byte(p)) {
			return Token{Kind: TokenPunct, Start: offset, End: offset + len(p)}
		}
	}

	if ch < 0x20 || ch == 0x7f || ch == '\\' || ch == '@' || ch == '`' {
		return Token{Kind: TokenUnknown, Start: offset, End: offset + 1}
	}

	return Token{Kind: TokenPunct, Start: offset, End: offset + 1}
}

// Tokenize returns every token in content, whitespace excluded.
func Tokenize(content []byte) []Token {
	var toks []Token
	for offset := 0; offset < len(content); {
		tok := LexAt(content, offset)
		if tok.End <= offset {
			tok.End = offset + 1
		}
		if tok.Kind != TokenWhitespace {
			toks = append(toks, tok)
		}
		offset = tok.End
	}
	return toks
}

func lineCommentEnd(content []byte, offset int) int {
	end := offset
	for end < len(content) {
		if content[end] == '\n' {
			// A backslash-newline continues the comment.
			if end > offset && content[end-1] == '\\' {
				end++
				continue
			}
			if end > offset+1 && content[end-1] == '\r' && content[end-2] == '\\' {
				end++
				continue
			}
			break
		}
		end++
	}
	if end > offset && content[end-1] == '\r' {
		end--
	}
	return end
}

func atLineStart(content []byte, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch {
		case content[i] == '\n':
			return true
		case IsHorizontalSpace(content[i]):
			continue
		default:
			return false
		}
	}
	return true
}

func directiveEnd(content []byte, offset int) int {
	end := offset
	for end < len(content) {
		switch content[end] {
		case '\n':
			prev := end - 1
			if prev >= 0 && content[prev] == '\r' {
				prev--
			}
			if prev >= 0 && content[prev] == '\\' {
				end++
				continue
			}
			if end > offset && content[end-1] == '\r' {
				return end - 1
			}
			return end
		case '/':
			if end+1 < len(content) && content[end+1] == '*' {
				tok := LexAt(content, end)
				end = tok.End
				continue
			}
		}
		end++
	}
	return end
}

func quotedEnd(content []byte, open int, quote byte) int {
	for i := open + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(content)
}

func rawStringEnd(content []byte, quote int) int {
	paren := bytes.IndexByte(content[quote:], '(')
	if paren < 0 {
		return quotedEnd(content, quote, '"')
	}
	delim := content[quote+1 : quote+paren]
	closing := make([]byte, 0, len(delim)+2)
	closing = append(closing, ')')
	closing = append(closing, delim...)
	closing = append(closing, '"')
	end := bytes.Index(content[quote+paren:], closing)
	if end < 0 {
		return len(content)
	}
	return quote + paren + end + len(closing)
}

func numberEnd(content []byte, offset int) int {
	end := offset
	for end < len(content) {
		ch := content[end]
		switch {
		case IsIdentChar(ch) || ch == '.':
			end++
		case ch == '\'' && end+1 < len(content) && IsIdentChar(content[end+1]):
			end++
		case (ch == '+' || ch == '-') && end > offset && isExponent(content[end-1]):
			end++
		default:
			return end
		}
	}
	return end
}

func isExponent(ch byte) bool {
	return ch == 'e' || ch == 'E' || ch == 'p' || ch == 'P'
}
