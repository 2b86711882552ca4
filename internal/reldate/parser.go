package reldate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Parse compiles expr using the registry's units and actions. The empty
// expression yields an empty pipeline.
func (r *Registry) Parse(expr string) (*RelativeDate, error) {
	p := &parser{reg: r, src: expr}
	ops, err := p.sequence(0, len(expr))
	if err != nil {
		return nil, err
	}
	return &RelativeDate{expression: expr, ops: ops}, nil
}

// parser scans src[pos:end] one operation at a time. Branch bodies are
// parsed recursively over their sub-slice so positions in errors always
// refer to the full expression.
type parser struct {
	reg *Registry
	src string
	pos int
}

func (p *parser) fail(pos int, symbol string, err error) error {
	return &ExpressionError{Expression: p.src, Symbol: symbol, Pos: pos, Err: err}
}

func (p *parser) sequence(start, end int) ([]Operation, error) {
	var ops []Operation
	p.pos = start
	for p.pos < end {
		op, err := p.operation(end)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (p *parser) operation(end int) (Operation, error) {
	actionPos := p.pos
	if p.src[p.pos] == config.SymbolBranchClose {
		return Operation{}, p.fail(actionPos, string(config.SymbolBranchClose), fmt.Errorf("%w: %s", ErrSyntax, config.ErrUnbalancedBranch))
	}
	action, ok := p.reg.Action(p.src[p.pos])
	if !ok {
		return Operation{}, p.fail(actionPos, p.src[p.pos:p.pos+1], ErrUnknownAction)
	}
	p.pos++

	number, err := p.number(end)
	if err != nil {
		return Operation{}, err
	}

	unitPos := p.pos
	if unitPos == end {
		return Operation{}, p.fail(unitPos, action.String(), fmt.Errorf("%w: %s", ErrSyntax, config.ErrMissingUnit))
	}
	unit, ok := p.reg.matchUnit(p.src[unitPos:end])
	if !ok {
		return Operation{}, p.fail(unitPos, p.word(unitPos, end), ErrUnknownUnit)
	}
	p.pos += len(unit.Key)

	if err := action.check(unit, false); err != nil {
		return Operation{}, p.fail(unitPos, unit.Key, err)
	}

	op := Operation{Action: action, Unit: unit, Number: number}
	if err := p.branches(&op, end); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// number reads an optional run of digits. Absent digits mean 1.
func (p *parser) number(end int) (int, error) {
	start := p.pos
	for p.pos < end && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return 1, nil
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.fail(start, p.src[start:p.pos], fmt.Errorf("%w: %s", ErrSyntax, config.ErrNumberRange))
	}
	return n, nil
}

// branches attaches up to two "{...}" bodies to a conditional.
func (p *parser) branches(op *Operation, end int) error {
	for i := 0; p.pos < end && p.src[p.pos] == config.SymbolBranchOpen; i++ {
		open := p.pos
		if !op.Action.Branches() {
			return p.fail(open, op.Action.String(), fmt.Errorf("%w: %s", ErrSyntax, config.ErrBranchNotAllowed))
		}
		if i == 2 {
			return p.fail(open, string(config.SymbolBranchOpen), fmt.Errorf("%w: %s", ErrSyntax, config.ErrTooManyBranches))
		}
		closing, err := p.matchingBrace(open, end)
		if err != nil {
			return err
		}

		sub := &parser{reg: p.reg, src: p.src}
		ops, err := sub.sequence(open+1, closing)
		if err != nil {
			return err
		}
		branch := &RelativeDate{expression: p.src[open+1 : closing], ops: ops}
		if i == 0 {
			op.Then = branch
		} else {
			op.Else = branch
		}
		p.pos = closing + 1
	}
	return nil
}

func (p *parser) matchingBrace(open, end int) (int, error) {
	depth := 0
	for i := open; i < end; i++ {
		switch p.src[i] {
		case config.SymbolBranchOpen:
			depth++
		case config.SymbolBranchClose:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, p.fail(open, string(config.SymbolBranchOpen), fmt.Errorf("%w: %s", ErrSyntax, config.ErrUnbalancedBranch))
}

// word returns the unrecognized text at pos for error messages: everything
// up to the next action symbol or brace.
func (p *parser) word(pos, end int) string {
	i := pos
	for i < end {
		c := p.src[i]
		if _, isAction := p.reg.Action(c); isAction || c == config.SymbolBranchOpen || c == config.SymbolBranchClose {
			break
		}
		i++
	}
	if i == pos {
		i++
	}
	return p.src[pos:i]
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsExpressionError reports whether err came from parsing an expression.
func IsExpressionError(err error) bool {
	var exprErr *ExpressionError
	return errors.As(err, &exprErr)
}
