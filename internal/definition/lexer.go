package definition

// Tokenize lexes a raw KEGG module definition string into a flat token
// stream. Consecutive whitespace collapses into a single SPACE token.
// Minus signs are never collapsed, since "--" (two adjacent MINUS tokens)
// carries distinct meaning from a single MINUS (see Parse).
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	i := 0
	n := len(src)

	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			start := i
			for i < n && isSpace(src[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: SPACE, Pos: start})

		case c == '(':
			tokens = append(tokens, Token{Kind: LPAREN, Pos: i})
			i++

		case c == ')':
			tokens = append(tokens, Token{Kind: RPAREN, Pos: i})
			i++

		case c == ',':
			tokens = append(tokens, Token{Kind: COMMA, Pos: i})
			i++

		case c == '-':
			tokens = append(tokens, Token{Kind: MINUS, Pos: i})
			i++

		case c == 'K' && i+1 < n && isDigit(src[i+1]):
			start := i
			i++
			for i < n && isDigit(src[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: ATOM, Value: src[start:i], Pos: start})

		default:
			return nil, &LexError{Pos: i, Char: rune(c)}
		}
	}

	return tokens, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
