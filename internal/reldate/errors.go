package reldate

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Error kinds. Use errors.Is to test for them.
var (
	ErrUnknownUnit          = errors.New(config.ErrUnknownUnit)
	ErrUnknownAction        = errors.New(config.ErrUnknownAction)
	ErrUnsupportedPeriod    = errors.New(config.ErrUnsupportedPeriod)
	ErrUnsupportedOperation = errors.New(config.ErrUnsupportedOperation)
	ErrInvalidDate          = errors.New(config.ErrInvalidDate)
	ErrSyntax               = errors.New(config.ErrSyntax)
)

// ExpressionError reports a failure to parse an expression. Pos is the byte
// offset of Symbol within Expression.
type ExpressionError struct {
	Expression string
	Symbol     string
	Pos        int
	Err        error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf(config.FormatExpressionError, e.Err, e.Symbol, e.Pos, e.Expression)
}

func (e *ExpressionError) Unwrap() error { return e.Err }
