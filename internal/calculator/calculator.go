package calculator

import (
	"encoding/json"
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Operation string

const (
	Add      Operation = "add"
	Subtract Operation = "subtract"
	Multiply Operation = "multiply"
	Divide   Operation = "divide"
)

var (
	ErrOperandsNotNumbers = errors.New("calculator: operands must be numbers")
	ErrDivideByZero       = errors.New("calculator: divide by zero")
	ErrInvalidOperation   = errors.New("calculator: invalid operation")
)

// Operations lists every supported operation in dispatch order.
func Operations() []Operation {
	return []Operation{Add, Subtract, Multiply, Divide}
}

// ParseOperation accepts a decoded JSON value and returns the matching
// Operation. Non-string and unknown values yield ErrInvalidOperation.
func ParseOperation(value interface{}) (Operation, error) {
	name, ok := value.(string)
	if !ok {
		return "", ErrInvalidOperation
	}

	err := validation.Validate(name,
		validation.Required,
		validation.In(string(Add), string(Subtract), string(Multiply), string(Divide)),
	)
	if err != nil {
		return "", ErrInvalidOperation
	}

	return Operation(name), nil
}

// Calculate applies op to a and b.
func Calculate(a, b float64, op Operation) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	default:
		return 0, ErrInvalidOperation
	}
}

// Evaluate validates loosely typed operands before the operation is looked
// at, so a non-numeric operand always wins over an unknown operation.
// Operands may be float64 or json.Number.
func Evaluate(a, b, op interface{}) (float64, error) {
	x, okA := operand(a)
	y, okB := operand(b)
	if !okA || !okB {
		return 0, ErrOperandsNotNumbers
	}

	operation, err := ParseOperation(op)
	if err != nil {
		return 0, err
	}

	return Calculate(x, y, operation)
}

// operand accepts a JSON number. Literals beyond float64 range saturate to
// ±Inf instead of being rejected.
func operand(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
