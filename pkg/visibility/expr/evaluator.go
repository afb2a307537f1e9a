package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-sensenav/pkg/visibility"
)

// Evaluator evaluates panel show rules.
//
// Grammar:
//
//	rule    = or
//	or      = and { "||" and }
//	and     = unary { "&&" unary }
//	unary   = "!" unary | primary
//	primary = "(" or ")" | ident [ ("==" | "!=") literal | "in" "(" [ literal { "," literal } ] ")" ]
//	literal = string | "true" | "false"
//
// A bare identifier is true when its value is truthy. Identifiers read the
// layout document with dotted paths; the `item.` prefix reads the enclosing
// array item and `extras.` reads caller supplied extras.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator { return &Evaluator{} }

var _ visibility.Evaluator = (*Evaluator)(nil)

// Eval parses rule and evaluates it against ctx. An empty rule is true.
func (e *Evaluator) Eval(_ string, rule string, ctx visibility.Context) (bool, error) {
	if strings.TrimSpace(rule) == "" {
		return true, nil
	}
	parsed, err := Parse(rule)
	if err != nil {
		return false, err
	}
	return parsed.Eval(ctx), nil
}

// Rule is a parsed show rule.
type Rule struct {
	root node
}

// Eval evaluates the parsed rule.
func (r Rule) Eval(ctx visibility.Context) bool {
	if r.root == nil {
		return true
	}
	return r.root.eval(ctx)
}

// Parse parses rule without evaluating it.
func Parse(rule string) (Rule, error) {
	p := &parser{lex: lexer{src: rule}}
	p.advance()
	if p.tok.kind == tkEOF {
		return Rule{}, nil
	}
	root, err := p.or()
	if err != nil {
		return Rule{}, err
	}
	if p.err != nil {
		return Rule{}, p.err
	}
	if p.tok.kind != tkEOF {
		return Rule{}, fmt.Errorf("visibility/expr: unexpected %q at offset %d", p.tok.text, p.tok.pos)
	}
	return Rule{root: root}, nil
}

type node interface {
	eval(ctx visibility.Context) bool
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx visibility.Context) bool { return n.left.eval(ctx) || n.right.eval(ctx) }

type andNode struct{ left, right node }

func (n andNode) eval(ctx visibility.Context) bool { return n.left.eval(ctx) && n.right.eval(ctx) }

type notNode struct{ inner node }

func (n notNode) eval(ctx visibility.Context) bool { return !n.inner.eval(ctx) }

type truthyNode struct{ ident string }

func (n truthyNode) eval(ctx visibility.Context) bool {
	value, _ := lookup(ctx, n.ident)
	return truthy(value)
}

// compareNode covers ==, != and in: the value matches when it equals any of
// the literals.
type compareNode struct {
	ident    string
	literals []literal
	negate   bool
}

func (n compareNode) eval(ctx visibility.Context) bool {
	value, _ := lookup(ctx, n.ident)
	for _, lit := range n.literals {
		if lit.matches(value) {
			return !n.negate
		}
	}
	return n.negate
}

type literal struct {
	text   string
	isBool bool
}

func (l literal) matches(value any) bool {
	if l.isBool {
		return asBool(value) == (l.text == "true")
	}
	switch v := value.(type) {
	case nil:
		return l.text == ""
	case string:
		return v == l.text
	default:
		return fmt.Sprint(v) == l.text
	}
}

type parser struct {
	lex lexer
	tok token
	err error
}

func (p *parser) advance() {
	tok, err := p.lex.next()
	if err != nil && p.err == nil {
		p.err = err
		tok = token{kind: tkEOF}
	}
	p.tok = tok
}

func (p *parser) accept(kind tokenKind) bool {
	if p.tok.kind != kind {
		return false
	}
	p.advance()
	return true
}

func (p *parser) or() (node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept(tkOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) and() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept(tkAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.accept(tkNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.accept(tkLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.accept(tkRParen) {
			return nil, p.fail("missing closing ')'")
		}
		return inner, nil
	}
	if p.tok.kind != tkIdent {
		if p.tok.kind == tkEOF {
			return nil, p.fail("incomplete rule")
		}
		return nil, p.fail(fmt.Sprintf("expected identifier, got %q", p.tok.text))
	}
	ident := p.tok.text
	p.advance()

	switch {
	case p.accept(tkEq):
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compareNode{ident: ident, literals: []literal{lit}}, nil
	case p.accept(tkNeq):
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compareNode{ident: ident, literals: []literal{lit}, negate: true}, nil
	case p.accept(tkIn):
		lits, err := p.literalList()
		if err != nil {
			return nil, err
		}
		return compareNode{ident: ident, literals: lits}, nil
	}
	return truthyNode{ident: ident}, nil
}

func (p *parser) literal() (literal, error) {
	if p.err != nil {
		return literal{}, p.err
	}
	tok := p.tok
	switch tok.kind {
	case tkString:
		p.advance()
		return literal{text: tok.text}, nil
	case tkBool:
		p.advance()
		return literal{text: tok.text, isBool: true}, nil
	case tkEOF:
		return literal{}, p.fail("missing literal")
	}
	return literal{}, p.fail(fmt.Sprintf("expected string or bool literal, got %q", tok.text))
}

func (p *parser) literalList() ([]literal, error) {
	if !p.accept(tkLParen) {
		return nil, p.fail("expected '(' after 'in'")
	}
	var out []literal
	if p.accept(tkRParen) {
		return out, nil
	}
	for {
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
		if p.accept(tkComma) {
			continue
		}
		if p.accept(tkRParen) {
			return out, nil
		}
		return nil, p.fail("missing closing ')' in list")
	}
}

func (p *parser) fail(msg string) error {
	if p.err != nil {
		return p.err
	}
	return fmt.Errorf("visibility/expr: %s at offset %d", msg, p.tok.pos)
}

type tokenKind int

const (
	tkEOF tokenKind = iota
	tkIdent
	tkString
	tkBool
	tkEq
	tkNeq
	tkAnd
	tkOr
	tkNot
	tkIn
	tkComma
	tkLParen
	tkRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	src string
	pos int
}

var operators = []struct {
	text string
	kind tokenKind
}{
	{"==", tkEq}, {"!=", tkNeq}, {"&&", tkAnd}, {"||", tkOr},
	{"!", tkNot}, {",", tkComma}, {"(", tkLParen}, {")", tkRParen},
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tkEOF, pos: start}, nil
	}

	rest := l.src[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.text) {
			l.pos += len(op.text)
			return token{kind: op.kind, text: op.text, pos: start}, nil
		}
	}

	switch c := rest[0]; {
	case c == '"' || c == '\'':
		return l.quoted(c)
	case c == '=' || c == '&' || c == '|':
		return token{}, fmt.Errorf("visibility/expr: unexpected %q at offset %d", c, start)
	}

	for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		return token{}, fmt.Errorf("visibility/expr: unexpected %q at offset %d", l.src[start], start)
	}
	word := l.src[start:l.pos]
	switch word {
	case "true", "false":
		return token{kind: tkBool, text: word, pos: start}, nil
	case "in":
		return token{kind: tkIn, text: word, pos: start}, nil
	}
	return token{kind: tkIdent, text: word, pos: start}, nil
}

func (l *lexer) quoted(quote byte) (token, error) {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case quote:
			l.pos++
			raw := l.src[start:l.pos]
			if quote == '\'' {
				raw = `"` + strings.ReplaceAll(raw[1:len(raw)-1], `"`, `\"`) + `"`
			}
			text, err := strconv.Unquote(raw)
			if err != nil {
				return token{}, fmt.Errorf("visibility/expr: invalid string at offset %d: %w", start, err)
			}
			return token{kind: tkString, text: text, pos: start}, nil
		}
		l.pos++
	}
	return token{}, fmt.Errorf("visibility/expr: unterminated string at offset %d", start)
}

func isIdentByte(c byte) bool {
	return c == '.' || c == '_' || c == '-' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func lookup(ctx visibility.Context, ident string) (any, bool) {
	switch {
	case strings.HasPrefix(ident, "item."):
		return visibility.Lookup(ctx.Item, strings.TrimPrefix(ident, "item."))
	case strings.HasPrefix(ident, "extras."):
		return visibility.Lookup(ctx.Extras, strings.TrimPrefix(ident, "extras."))
	}
	return visibility.Lookup(ctx.Values, ident)
}

// asBool reads the layout's boolean settings; the host may store them as
// strings.
func asBool(value any) bool {
	if s, ok := value.(string); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return parsed
		}
	}
	return truthy(value)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	return true
}
