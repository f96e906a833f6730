package source

// TokenAt lexes the raw token starting at a file location.
func (b *Buffer) TokenAt(loc Location) (Token, bool) {
	off := loc.Offset()
	if off < 0 || off >= len(b.Content) {
		return Token{}, false
	}
	return LexAt(b.Content, off), true
}

// TokenText returns the spelling of the raw token at loc.
func (b *Buffer) TokenText(loc Location) string {
	tok, ok := b.TokenAt(loc)
	if !ok {
		return ""
	}
	return string(tok.Text(b.Content))
}

// EndOfToken returns the location just past the token that starts at loc.
// Whitespace and invalid or macro locations yield loc unchanged.
func (b *Buffer) EndOfToken(loc Location) Location {
	tok, ok := b.TokenAt(loc)
	if !ok || tok.Kind == TokenWhitespace {
		return loc
	}
	return FileLocation(tok.End)
}

// SkipWhitespaceAndComments returns the first location at or after loc that
// is neither whitespace nor a comment.
func (b *Buffer) SkipWhitespaceAndComments(loc Location) Location {
	off := loc.Offset()
	if off < 0 {
		return NoLocation
	}
	for off < len(b.Content) {
		tok := LexAt(b.Content, off)
		if tok.Kind != TokenWhitespace && !tok.Kind.IsComment() {
			break
		}
		off = tok.End
	}
	return FileLocation(off)
}

// SkipHorizontalSpace returns the first location at or after loc that is not
// a space or tab. Newlines are not skipped.
func (b *Buffer) SkipHorizontalSpace(loc Location) Location {
	off := loc.Offset()
	if off < 0 {
		return NoLocation
	}
	for off < len(b.Content) && IsHorizontalSpace(b.Content[off]) {
		off++
	}
	return FileLocation(off)
}

// NextToken returns the first significant token at or after loc.
func (b *Buffer) NextToken(loc Location) (Token, bool) {
	return b.TokenAt(b.SkipWhitespaceAndComments(loc))
}

// FindMatchingParen scans forward from an opening parenthesis and returns
// the location of its balancing ')'. Comments, literals and directives are
// skipped as whole tokens.
func (b *Buffer) FindMatchingParen(open Location) (Location, bool) {
	tok, ok := b.TokenAt(open)
	if !ok || string(tok.Text(b.Content)) != "(" {
		return NoLocation, false
	}

	depth := 0
	for off := tok.Start; off < len(b.Content); {
		tok = LexAt(b.Content, off)
		if tok.End <= off {
			return NoLocation, false
		}
		if tok.Kind == TokenPunct {
			switch b.Content[tok.Start] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return FileLocation(tok.Start), true
				}
			}
		}
		off = tok.End
	}

	return NoLocation, false
}

// LineBounds returns the start of loc's line and the offset of its terminator.
func (b *Buffer) LineBounds(loc Location) (int, int) {
	line := b.Line(loc)
	if line < 1 {
		return -1, -1
	}
	info := b.Lines[line-1]
	return info.StartOffset, info.NewlineStart
}

// IsBlankBetween reports whether bytes [start, end) hold only horizontal
// whitespace.
func (b *Buffer) IsBlankBetween(start, end int) bool {
	if start < 0 || end > len(b.Content) {
		return false
	}
	for i := start; i < end; i++ {
		if !IsHorizontalSpace(b.Content[i]) {
			return false
		}
	}
	return true
}
