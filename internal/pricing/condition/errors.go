package condition

import "errors"

var (
	// ErrLimitExceeded слишком много условий в правиле
	ErrLimitExceeded = errors.New("condition: limit exceeded")

	// ErrUnknownVariable условие ссылается на переменную, которой нет в таблице значений
	ErrUnknownVariable = errors.New("condition: unknown variable")

	// ErrTypeMismatch значение нельзя привести к типу сравнения
	ErrTypeMismatch = errors.New("condition: type mismatch")

	// ErrInvalidCondition некорректный оператор, связка или литерал
	ErrInvalidCondition = errors.New("condition: invalid condition")
)
