package pricingrules

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

var (
	// ErrRuleNotFound возвращается, когда у зоны нет правила
	ErrRuleNotFound = errors.New("pricingrules: pricing rule not found")

	// ErrAreaNotFound возвращается, когда зона не найдена
	ErrAreaNotFound = errors.New("pricingrules: area not found")

	// ErrAccessDenied возвращается, когда пользователь не является хостом зоны
	ErrAccessDenied = errors.New("pricingrules: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricingrules: invalid input data")

	// ErrInvalidRule возвращается, когда описание правила не прошло проверку
	ErrInvalidRule = errors.New("pricingrules: invalid rule definition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricingrules: internal error")
)

// ValidationFailedError содержит все найденные ошибки описания правила
type ValidationFailedError struct {
	Result pricing.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%v: %d problem(s)", ErrInvalidRule, len(e.Result.Errors))
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrInvalidRule
}
