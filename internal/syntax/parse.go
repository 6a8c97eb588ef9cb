package syntax

import (
	"fmt"
	"strings"

	"github.com/jward/cadenza/internal/semantics"
)

// Parse builds a Category from the compact notation used by the lexicon,
// tests and debugging:
//
//	I^T             atomic category with equal halves
//	V^D-I^T         atomic span
//	V^D/I^T         forward slash category
//	V^D/{c}I^T      slash with a modality
//	V^D\I^T         backward slash
//	(I^T/I^T)/I^D   nested complex categories, slashes associate left
//	?a^T            root variable; I^?f is a function variable
//
// Roots are roman-numeral symbols with optional accidentals (bVII);
// functions are single characters from T, D, S. Distinct variable names
// within one string share one variable id; every parse allocates fresh
// slash ids and variable ids starting at 1.
//
// A multi-function half such as I^DT denotes a set of alternatives and is
// rejected here; use ParseVariants to expand it.
func Parse(input string) (Category, error) {
	cats, err := ParseVariants(input)
	if err != nil {
		return nil, err
	}
	if len(cats) > 1 {
		return nil, fmt.Errorf("syntax: %q has %d function variants; use ParseVariants", input, len(cats))
	}
	return cats[0], nil
}

// MustParse is Parse for tests and static initializers; it panics on
// error.
func MustParse(input string) Category {
	c, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseVariants parses the notation, expanding every multi-function half
// into one category per function choice. V^D/I^DT yields V^D/I^D and
// V^D/I^T. The lexicon loader uses this to expand entries whose argument
// accepts several functions.
func ParseVariants(input string) ([]Category, error) {
	p := &catParser{src: input}
	proto, err := p.parseCategory()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing %q", p.src[p.pos:])
	}

	var cats []Category
	for _, choice := range enumerateChoices(proto) {
		b := &catBuilder{vars: make(map[varKey]int), choice: choice}
		cats = append(cats, b.build(proto))
	}
	return cats, nil
}

// ParseSign parses "<category> : <semantics>" into a Sign.
func ParseSign(input string) (*Sign, error) {
	catStr, semStr, found := strings.Cut(input, ":")
	if !found {
		return nil, fmt.Errorf("syntax: sign %q must be of the form <category> : <semantics>", input)
	}
	category, err := Parse(strings.TrimSpace(catStr))
	if err != nil {
		return nil, err
	}
	sem, err := semantics.Parse(strings.TrimSpace(semStr))
	if err != nil {
		return nil, err
	}
	return NewSign(category, sem), nil
}

// MustParseSign is ParseSign for tests; it panics on error.
func MustParseSign(input string) *Sign {
	s, err := ParseSign(input)
	if err != nil {
		panic(err)
	}
	return s
}

// protoCat is the pre-expansion parse tree: halves may still carry
// several function alternatives.
type protoCat interface{ proto() }

type protoAtomic struct {
	from protoHalf
	to   protoHalf
	// lone marks a category written as a single half: both halves are the
	// same and expand together.
	lone bool
}

func (*protoAtomic) proto() {}

type protoComplex struct {
	result   protoCat
	forward  bool
	modality string
	argument protoCat
}

func (*protoComplex) proto() {}

type protoValue struct {
	lit     string
	varName string
}

type protoHalf struct {
	root protoValue
	// funs holds the function alternatives; a variable function is a
	// single entry.
	funs []protoValue
}

type catParser struct {
	src string
	pos int
}

func (p *catParser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("syntax: %s at offset %d in %q", msg, p.pos, p.src)
}

func (p *catParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *catParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *catParser) parseCategory() (protoCat, error) {
	cat, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		c := p.peek()
		if c != '/' && c != '\\' {
			return cat, nil
		}
		forward := c == '/'
		p.pos++
		modality, err := p.parseModality()
		if err != nil {
			return nil, err
		}
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		cat = &protoComplex{result: cat, forward: forward, modality: modality, argument: arg}
	}
}

func (p *catParser) parseModality() (string, error) {
	p.skipSpace()
	if p.peek() != '{' {
		return "", nil
	}
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], '}')
	if end < 0 {
		return "", p.errorf("{ was not matched by a }")
	}
	modality := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return modality, nil
}

func (p *catParser) parseTerm() (protoCat, error) {
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		cat, err := p.parseCategory()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.errorf("expected )")
		}
		p.pos++
		return cat, nil
	}

	from, err := p.parseHalf()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == '-' {
		p.pos++
		to, err := p.parseHalf()
		if err != nil {
			return nil, err
		}
		return &protoAtomic{from: from, to: to}, nil
	}
	// A lone half is an atomic category with equal halves.
	return &protoAtomic{from: from, to: from, lone: true}, nil
}

func (p *catParser) parseHalf() (protoHalf, error) {
	p.skipSpace()
	root, err := p.parseRoot()
	if err != nil {
		return protoHalf{}, err
	}
	if p.peek() != '^' {
		return protoHalf{}, p.errorf("half category has no ^")
	}
	p.pos++
	funs, err := p.parseFunctions()
	if err != nil {
		return protoHalf{}, err
	}
	return protoHalf{root: root, funs: funs}, nil
}

func (p *catParser) parseRoot() (protoValue, error) {
	if p.peek() == '?' {
		name, err := p.parseVarName()
		if err != nil {
			return protoValue{}, err
		}
		return protoValue{varName: name}, nil
	}
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte("b#IVX", p.src[p.pos]) >= 0 {
		p.pos++
	}
	if p.pos == start {
		return protoValue{}, p.errorf("expected a chord root symbol")
	}
	return protoValue{lit: p.src[start:p.pos]}, nil
}

func (p *catParser) parseFunctions() ([]protoValue, error) {
	if p.peek() == '?' {
		name, err := p.parseVarName()
		if err != nil {
			return nil, err
		}
		return []protoValue{{varName: name}}, nil
	}
	var funs []protoValue
	for p.pos < len(p.src) && strings.IndexByte("TDS", p.src[p.pos]) >= 0 {
		funs = append(funs, protoValue{lit: string(p.src[p.pos])})
		p.pos++
	}
	if len(funs) == 0 {
		return nil, p.errorf("expected function characters (T, D or S)")
	}
	return funs, nil
}

func (p *catParser) parseVarName() (string, error) {
	p.pos++ // consume the ?
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", p.errorf("expected a variable name after ?")
	}
	return p.src[start:p.pos], nil
}

// enumerateChoices returns one function-choice map per expansion variant.
// Halves are numbered in depth-first order; a choice maps half ordinal to
// the index of its selected function.
func enumerateChoices(cat protoCat) []map[int]int {
	var halves []*protoHalf
	collectHalves(cat, &halves)

	choices := []map[int]int{{}}
	for ord, half := range halves {
		if len(half.funs) <= 1 {
			continue
		}
		var expanded []map[int]int
		for _, choice := range choices {
			for i := range half.funs {
				next := make(map[int]int, len(choice)+1)
				for k, v := range choice {
					next[k] = v
				}
				next[ord] = i
				expanded = append(expanded, next)
			}
		}
		choices = expanded
	}
	return choices
}

func collectHalves(cat protoCat, into *[]*protoHalf) {
	switch cat := cat.(type) {
	case *protoAtomic:
		*into = append(*into, &cat.from)
		if !cat.lone {
			*into = append(*into, &cat.to)
		}
	case *protoComplex:
		collectHalves(cat.result, into)
		collectHalves(cat.argument, into)
	}
}

type varKey struct {
	kind string
	name string
}

// catBuilder turns a proto tree into a Category for one function choice,
// allocating slash ids and variable ids as it goes. Variable names are
// scoped per kind: ?a in root position and ?a in function position are
// independent variables.
type catBuilder struct {
	vars      map[varKey]int
	choice    map[int]int
	nextVar   int
	nextSlash int
	halfOrd   int
}

func (b *catBuilder) build(cat protoCat) Category {
	switch cat := cat.(type) {
	case *protoAtomic:
		from := b.buildHalf(&cat.from)
		to := from
		if !cat.lone {
			to = b.buildHalf(&cat.to)
		}
		return &Atomic{From: from, To: to}
	case *protoComplex:
		result := b.build(cat.result)
		b.nextSlash++
		slash := Slash{Forward: cat.forward, Modality: cat.modality, ID: b.nextSlash}
		argument := b.build(cat.argument)
		return &Complex{Result: result, Slash: slash, Argument: argument}
	default:
		panic(fmt.Sprintf("syntax: unknown proto category %T", cat))
	}
}

func (b *catBuilder) buildHalf(half *protoHalf) Half {
	ord := b.halfOrd
	b.halfOrd++
	fun := half.funs[b.choice[ord]]
	return Half{
		Root:     b.buildValue(half.root, KindRoot),
		Function: b.buildValue(fun, KindFunction),
	}
}

func (b *catBuilder) buildValue(v protoValue, kind string) Value {
	if v.varName == "" {
		return Lit(v.lit)
	}
	key := varKey{kind: kind, name: v.varName}
	if id, ok := b.vars[key]; ok {
		return NamedVar(id, v.varName)
	}
	b.nextVar++
	b.vars[key] = b.nextVar
	return NamedVar(b.nextVar, v.varName)
}
