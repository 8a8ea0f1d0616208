package condition

import (
	"fmt"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// DefaultMaxConditions максимальное число условий в правиле по умолчанию
const DefaultMaxConditions = 20

// Evaluate вычисляет список условий слева направо
//
// Аккумулятор стартует с true, связка первого условия игнорируется,
// negated применяется до объединения с аккумулятором. Приоритетов нет: a OR b AND c = (a OR b) AND c
func Evaluate(conditions []domain.Condition, bindings map[string]domain.Value, maxConditions int) (bool, error) {
	if maxConditions <= 0 {
		maxConditions = DefaultMaxConditions
	}
	if len(conditions) > maxConditions {
		return false, fmt.Errorf("%w: rule exceeds maximum of %d conditions", ErrLimitExceeded, maxConditions)
	}

	acc := true
	for i, c := range conditions {
		result, err := evaluateOne(c, bindings)
		if err != nil {
			return false, fmt.Errorf("condition #%d: %w", i+1, err)
		}
		if c.Negated {
			result = !result
		}

		if i == 0 {
			acc = result
			continue
		}

		switch c.Connector {
		case domain.ConnectorAnd:
			acc = acc && result
		case domain.ConnectorOr:
			acc = acc || result
		default:
			return false, fmt.Errorf("condition #%d: %w: connector %q must be %q or %q",
				i+1, ErrInvalidCondition, c.Connector, domain.ConnectorAnd, domain.ConnectorOr)
		}
	}

	return acc, nil
}

func evaluateOne(c domain.Condition, bindings map[string]domain.Value) (bool, error) {
	if !c.Comparator.IsValid() {
		return false, fmt.Errorf("%w: unknown comparator %q", ErrInvalidCondition, c.Comparator)
	}

	left, err := resolve(c.Left, c.Type, bindings)
	if err != nil {
		return false, err
	}

	// Без явного типа сравнения ориентируемся на левый операнд
	typ := c.Type
	if typ == "" {
		typ = left.Type
	}
	if !typ.IsValid() {
		return false, fmt.Errorf("%w: unknown comparison type %q", ErrInvalidCondition, typ)
	}

	right, err := resolve(c.Right, typ, bindings)
	if err != nil {
		return false, err
	}

	if left, err = coerce(left, typ); err != nil {
		return false, err
	}
	if right, err = coerce(right, typ); err != nil {
		return false, err
	}

	return compare(left, right, c.Comparator), nil
}

func resolve(op domain.Operand, typ domain.ValueType, bindings map[string]domain.Value) (domain.Value, error) {
	switch op.Kind {
	case domain.OperandVariable:
		v, ok := bindings[op.Key]
		if !ok {
			return domain.Value{}, fmt.Errorf("%w: %q", ErrUnknownVariable, op.Key)
		}
		return v, nil
	case domain.OperandLiteral:
		// Литералы проверяются при сохранении правила, но правило читается из хранилища
		// и здесь разбирается повторно
		litType := op.Type
		if litType == "" {
			litType = typ
		}
		v, err := domain.ParseLiteral(litType, op.Value, op.Meridiem)
		if err != nil {
			return domain.Value{}, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
		}
		return v, nil
	default:
		return domain.Value{}, fmt.Errorf("%w: unknown operand kind %q", ErrInvalidCondition, op.Kind)
	}
}

// coerce приводит значение к типу сравнения
// Допускается только сужение datetime до date/time и расширение date до полуночи UTC
func coerce(v domain.Value, typ domain.ValueType) (domain.Value, error) {
	if v.Type == typ {
		return v, nil
	}

	switch {
	case v.Type == domain.TypeDateTime && len(v.Text) != len(domain.DateTimeFormat):
		// значение не в нормализованной форме
	case v.Type == domain.TypeDateTime && typ == domain.TypeDate:
		return domain.Value{Type: typ, Text: v.Text[:len(domain.DateFormat)]}, nil
	case v.Type == domain.TypeDateTime && typ == domain.TypeTime:
		start := len(domain.DateFormat) + 1
		return domain.Value{Type: typ, Text: v.Text[start : start+len(domain.TimeFormat)]}, nil
	case v.Type == domain.TypeDate && typ == domain.TypeDateTime:
		return domain.Value{Type: typ, Text: v.Text + "T00:00:00Z"}, nil
	}

	return domain.Value{}, fmt.Errorf("%w: cannot compare %s value %q as %s", ErrTypeMismatch, v.Type, v.String(), typ)
}

func compare(left, right domain.Value, cmp domain.Comparator) bool {
	var c int
	if left.Type == domain.TypeNumber {
		switch {
		case left.Number < right.Number:
			c = -1
		case left.Number > right.Number:
			c = 1
		}
	} else {
		// Нормализованные формы фиксированной ширины, поэтому лексикографический порядок совпадает с хронологическим
		switch {
		case left.Text < right.Text:
			c = -1
		case left.Text > right.Text:
			c = 1
		}
	}

	switch cmp {
	case domain.CmpLess:
		return c < 0
	case domain.CmpLessOrEq:
		return c <= 0
	case domain.CmpGreater:
		return c > 0
	case domain.CmpGreaterOrEq:
		return c >= 0
	case domain.CmpEqual:
		return c == 0
	case domain.CmpNotEqual:
		return c != 0
	}
	return false
}
