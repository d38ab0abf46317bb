package predicate

import (
	"math"
	"strconv"
	"strings"

	"github.com/ar90n/partition/number"
	"github.com/pkg/errors"
)

var (
	ErrUnknownPredicate = errors.New("unknown predicate")
	ErrInvalidArgument  = errors.New("invalid predicate argument")
)

func True[T any](T) bool  { return true }
func False[T any](T) bool { return false }

func Even[T number.Integer](v T) bool { return number.IsEven(v) }
func Odd[T number.Integer](v T) bool  { return number.IsOdd(v) }

func Less[T number.Number](pivot T) func(T) bool {
	return func(v T) bool {
		return v < pivot
	}
}

func Not[T any](p func(T) bool) func(T) bool {
	return func(v T) bool {
		return !p(v)
	}
}

// Parse builds a predicate from a short expression: true, false, even, odd,
// lt:<n> or ge:<n>, optionally prefixed with ! to negate it.
func Parse[T number.Number](expr string) (func(T) bool, error) {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "!") {
		p, err := Parse[T](expr[1:])
		if err != nil {
			return nil, err
		}
		return Not(p), nil
	}

	name, arg, hasArg := strings.Cut(expr, ":")
	switch name {
	case "true":
		return True[T], nil
	case "false":
		return False[T], nil
	case "even":
		return func(v T) bool {
			even, integral := number.Parity(v)
			return integral && even
		}, nil
	case "odd":
		return func(v T) bool {
			even, integral := number.Parity(v)
			return integral && !even
		}, nil
	case "lt", "ge":
		if !hasArg {
			return nil, errors.Wrapf(ErrInvalidArgument, "%s requires a value", name)
		}
		pivot, err := parseValue[T](arg)
		if err != nil {
			return nil, err
		}
		if name == "lt" {
			return Less(pivot), nil
		}
		return Not(Less(pivot)), nil
	default:
		return nil, errors.Wrapf(ErrUnknownPredicate, "%q", expr)
	}
}

// parseValue parses s as a T, rejecting values T cannot represent.
func parseValue[T number.Number](s string) (T, error) {
	switch {
	case number.IsIntegral[T]() && number.IsSigned[T]():
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidArgument, "%q: %v", s, err)
		}
		if int64(T(v)) != v {
			return 0, errors.Wrapf(ErrInvalidArgument, "%q out of range", s)
		}
		return T(v), nil
	case number.IsIntegral[T]():
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidArgument, "%q: %v", s, err)
		}
		if uint64(T(v)) != v {
			return 0, errors.Wrapf(ErrInvalidArgument, "%q out of range", s)
		}
		return T(v), nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidArgument, "%q: %v", s, err)
		}
		if f := float64(T(v)); math.IsInf(f, 0) && !math.IsInf(v, 0) {
			return 0, errors.Wrapf(ErrInvalidArgument, "%q out of range", s)
		}
		return T(v), nil
	}
}
