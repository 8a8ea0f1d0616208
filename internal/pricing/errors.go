package pricing

import "errors"

var (
	// ErrInvalidVariableValue значение override или initialValue не разбирается по типу переменной
	ErrInvalidVariableValue = errors.New("pricing: invalid variable value")

	// ErrUnexpected ошибка вычисления вне известной таксономии
	ErrUnexpected = errors.New("pricing: unexpected evaluation error")
)
