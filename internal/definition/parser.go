package definition

// Parse tokenizes and parses a raw KEGG module definition string into a
// canonical expression tree plus the set of KOs marked optional by a
// MINUS annotation anywhere in the definition.
func Parse(src string) (*Node, map[KO]struct{}, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, nil, err
	}

	p := &parser{tokens: tokens, end: len(src)}
	root, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	if p.pos != len(p.tokens) {
		trailing := p.tokens[p.pos]
		if trailing.Kind == RPAREN {
			return nil, nil, &UnbalancedParenError{Pos: trailing.Pos}
		}
		return nil, nil, &UnexpectedTokenError{Pos: trailing.Pos, Kind: trailing.Kind}
	}

	root = flatten(root)
	return root, OptionalKOs(root), nil
}

type parser struct {
	tokens []Token
	pos    int
	end    int // byte length of the source, for end-of-input error positions
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// parseExpr := parseSeq
func (p *parser) parseExpr() (*Node, error) {
	return p.parseSeq()
}

// seq := alt (SPACE alt)*
func (p *parser) parseSeq() (*Node, error) {
	first, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	children := []*Node{first}
	for {
		t, ok := p.peek()
		if !ok || t.Kind != SPACE {
			break
		}
		p.pos++
		next, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return seq(children), nil
}

// alt := unary (COMMA unary)*
func (p *parser) parseAlt() (*Node, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	children := []*Node{first}
	for {
		t, ok := p.peek()
		if !ok || t.Kind != COMMA {
			break
		}
		commaPos := t.Pos
		p.pos++
		if p.atGroupTerminator() {
			return nil, &EmptyGroupError{Pos: commaPos + 1}
		}
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return first, nil
	}
	return alt(children), nil
}

// atGroupTerminator reports whether the cursor sits at a token that can
// never start a unary: end of input, ')', ',', or ' '.
func (p *parser) atGroupTerminator() bool {
	t, ok := p.peek()
	if !ok {
		return true
	}
	switch t.Kind {
	case RPAREN, COMMA, SPACE:
		return true
	default:
		return false
	}
}

// unary := MINUS MINUS | MINUS atom_or_group | atom_or_group
func (p *parser) parseUnary() (*Node, error) {
	t, ok := p.peek()
	if !ok || t.Kind != MINUS {
		return p.parseAtomOrGroup()
	}
	p.pos++ // consume first MINUS

	if t2, ok2 := p.peek(); ok2 && t2.Kind == MINUS {
		p.pos++ // consume second MINUS
		return leaf(KO("K00000"), true), nil
	}

	child, err := p.parseAtomOrGroup()
	if err != nil {
		return nil, err
	}
	markOptional(child)
	return child, nil
}

// atom_or_group := group | ATOM
func (p *parser) parseAtomOrGroup() (*Node, error) {
	t, ok := p.peek()
	if !ok {
		return nil, &UnexpectedTokenError{Pos: p.end, Kind: -1}
	}
	switch t.Kind {
	case ATOM:
		p.pos++
		return leaf(KO(t.Value), false), nil
	case LPAREN:
		return p.parseGroup()
	case RPAREN:
		return nil, &UnbalancedParenError{Pos: t.Pos}
	default:
		return nil, &UnexpectedTokenError{Pos: t.Pos, Kind: t.Kind}
	}
}

// group := '(' expr ')'
func (p *parser) parseGroup() (*Node, error) {
	open, _ := p.peek()
	p.pos++ // consume '('

	if t, ok := p.peek(); ok && t.Kind == RPAREN {
		return nil, &EmptyGroupError{Pos: open.Pos + 1}
	}
	if _, ok := p.peek(); !ok {
		return nil, &UnbalancedParenError{Pos: open.Pos}
	}

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	t, ok := p.peek()
	if !ok || t.Kind != RPAREN {
		return nil, &UnbalancedParenError{Pos: open.Pos}
	}
	p.pos++ // consume ')'
	return inner, nil
}

// markOptional flags every leaf beneath n (inclusive) as optional.
func markOptional(n *Node) {
	if n == nil {
		return
	}
	if n.Kind == KindLeaf {
		n.Optional = true
		return
	}
	for _, c := range n.Children {
		markOptional(c)
	}
}
