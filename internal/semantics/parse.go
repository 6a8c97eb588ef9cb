package semantics

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse builds a Form from the compact notation used by the lexicon and
// tests:
//
//	$x                  variable
//	leftonto($x)        predicate application (multi-arg forms are curried)
//	\$x.leftonto($x)    lambda abstraction; \$x,$y.e abbreviates \$x.\$y.e
//	[tonic, $x]         list
//	(e)                 grouping
//
// Categories coming out of a derivation may print forms this notation
// cannot express; the parser is an input format, not a round-trip codec.
func Parse(input string) (*Form, error) {
	p := &termParser{src: input}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("semantics: unexpected %q at offset %d in %q", p.src[p.pos:], p.pos, p.src)
	}
	return &Form{LF: t}, nil
}

// MustParse is Parse for tests and static initializers; it panics on error.
func MustParse(input string) *Form {
	f, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return f
}

type termParser struct {
	src string
	pos int
}

func (p *termParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *termParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *termParser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("semantics: %s at offset %d in %q", msg, p.pos, p.src)
}

func (p *termParser) parseTerm() (Term, error) {
	p.skipSpace()
	if p.peek() == '\\' {
		return p.parseAbstraction()
	}
	return p.parseAtom()
}

func (p *termParser) parseAbstraction() (Term, error) {
	p.pos++ // consume the backslash
	var vars []Variable
	for {
		p.skipSpace()
		if p.peek() != '$' {
			return nil, p.errorf("expected a $variable after \\")
		}
		v, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			continue
		case '.':
			p.pos++
		default:
			return nil, p.errorf("expected , or . after abstracted variable")
		}
		break
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	// Abstract over the variables right to left so \$x,$y.e is \$x.\$y.e.
	for i := len(vars) - 1; i >= 0; i-- {
		body = &Abstraction{Variable: vars[i], Body: body}
	}
	return body, nil
}

func (p *termParser) parseAtom() (Term, error) {
	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	// Any primary can head an application: f(x), $f(x), (\$x.$x)(y),
	// and curried chains like f(x)(y).
	for {
		p.skipSpace()
		if p.peek() != '(' {
			return t, nil
		}
		t, err = p.parseArguments(t)
		if err != nil {
			return nil, err
		}
	}
}

func (p *termParser) parsePrimary() (Term, error) {
	p.skipSpace()
	switch {
	case p.peek() == '$':
		return p.parseVariable()
	case p.peek() == '[':
		return p.parseList()
	case p.peek() == '(':
		p.pos++
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.errorf("expected )")
		}
		p.pos++
		return t, nil
	default:
		name := p.parseName()
		if name == "" {
			return nil, p.errorf("expected a term")
		}
		return Literal{Name: name}, nil
	}
}

// parseArguments consumes a parenthesized argument list and applies the
// functor to each argument in turn.
func (p *termParser) parseArguments(functor Term) (Term, error) {
	p.pos++ // consume the (
	for {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		functor = &Application{Functor: functor, Argument: arg}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return functor, nil
		default:
			return nil, p.errorf("expected , or ) in argument list")
		}
	}
}

func (p *termParser) parseVariable() (Variable, error) {
	p.pos++ // consume the $
	name := p.parseName()
	if name == "" {
		return Variable{}, p.errorf("expected a variable name after $")
	}
	// A trailing digit run is the variable's index.
	base := strings.TrimRightFunc(name, unicode.IsDigit)
	if base != "" && base != name {
		var index int
		fmt.Sscanf(name[len(base):], "%d", &index)
		return Variable{Name: base, Index: index}, nil
	}
	return Variable{Name: name}, nil
}

func (p *termParser) parseList() (Term, error) {
	p.pos++ // consume the [
	list := &List{}
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return list, nil
	}
	for {
		item, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return list, nil
		default:
			return nil, p.errorf("expected , or ] in list")
		}
	}
}

func (p *termParser) parseName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
