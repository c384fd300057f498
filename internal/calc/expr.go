// Package calc evaluates the small arithmetic expressions accepted by the
// adjustment form, e.g. "1500000+300000" or "24000000/8/12".
//
// Grammar:
//
//	expr   = term { ("+" | "-") term }
//	term   = number { ("*" | "/") number }
//	number = digits [ "." digits ]
//
// Whitespace is ignored. Parentheses, signs, identifiers and every other character
// are rejected.
package calc

import (
	"fmt"
	"strings"

	"belutin-web/internal/apperrors"

	"github.com/shopspring/decimal"
)

// maxLen bounds the input so a pasted blob cannot keep the parser busy.
const maxLen = 256

type parser struct {
	src string
	pos int
}

// Eval returns the value of expr. An empty or blank expression evaluates to zero.
func Eval(expr string) (decimal.Decimal, error) {
	if len(expr) > maxLen {
		return decimal.Zero, invalid(expr, "expression too long")
	}
	compact := strings.Join(strings.Fields(expr), "")
	if compact == "" {
		return decimal.Zero, nil
	}
	p := &parser{src: compact}
	v, err := p.expr()
	if err != nil {
		return decimal.Zero, invalid(expr, err.Error())
	}
	if p.pos != len(p.src) {
		return decimal.Zero, invalid(expr, fmt.Sprintf("unexpected %q at position %d", p.src[p.pos], p.pos+1))
	}
	return v, nil
}

func invalid(expr, reason string) error {
	return fmt.Errorf("%w: cannot evaluate %q: %s", apperrors.ErrValidation, expr, reason)
}

func (p *parser) expr() (decimal.Decimal, error) {
	left, err := p.term()
	if err != nil {
		return decimal.Zero, err
	}
	for p.pos < len(p.src) {
		op := p.src[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
	return left, nil
}

func (p *parser) term() (decimal.Decimal, error) {
	left, err := p.number()
	if err != nil {
		return decimal.Zero, err
	}
	for p.pos < len(p.src) {
		op := p.src[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++
		right, err := p.number()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '*' {
			left = left.Mul(right)
			continue
		}
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("division by zero")
		}
		left = left.Div(right)
	}
	return left, nil
}

func (p *parser) number() (decimal.Decimal, error) {
	start := p.pos
	seenDot := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	lit := p.src[start:p.pos]
	switch {
	case lit == "" && start < len(p.src):
		return decimal.Zero, fmt.Errorf("expected number at position %d, found %q", start+1, p.src[start])
	case lit == "":
		return decimal.Zero, fmt.Errorf("expected number at end of input")
	case strings.HasPrefix(lit, ".") || strings.HasSuffix(lit, "."):
		return decimal.Zero, fmt.Errorf("malformed number %q", lit)
	}
	return decimal.NewFromString(lit)
}
