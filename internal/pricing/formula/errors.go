package formula

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFormula возвращается для пустой формулы или формулы из одних пробелов
	// Это не ошибка синтаксиса: вызывающий код трактует её как "цена не задана"
	ErrNoFormula = errors.New("formula: no formula")

	// ErrSyntax возвращается для синтаксически некорректной формулы
	ErrSyntax = errors.New("formula: syntax error")

	// ErrUnknownVariable возвращается, когда идентификатор отсутствует в таблице значений
	ErrUnknownVariable = errors.New("formula: unknown variable")

	// ErrDivisionByZero возвращается, когда делитель равен ровно 0
	ErrDivisionByZero = errors.New("formula: division by zero")

	// ErrLimitExceeded возвращается при превышении длины или глубины вложенности
	ErrLimitExceeded = errors.New("formula: limit exceeded")

	// ErrNotFinite возвращается, когда результат переполняет float64
	ErrNotFinite = errors.New("formula: result is not a finite number")
)

// UnknownVariableError несет имя неизвестной переменной
type UnknownVariableError struct {
	Key string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownVariable, e.Key)
}

func (e *UnknownVariableError) Unwrap() error {
	return ErrUnknownVariable
}

// SyntaxError указывает позицию ошибки в исходной строке
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at position %d: %s", ErrSyntax, e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
