package models

import (
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

// Request модели

// SaveRuleRequest запрос на сохранение правила зоны
type SaveRuleRequest struct {
	UserID     int64                 `json:"-"`
	AreaID     int64                 `json:"-"`
	Active     *bool                 `json:"active,omitempty"` // по умолчанию true
	Definition domain.RuleDefinition `json:"definition"`
}

// Response модели

// RuleResponse ответ с данными правила
type RuleResponse struct {
	ID         int64                 `json:"id"`
	AreaID     int64                 `json:"areaId"`
	Version    int                   `json:"version"`
	Active     bool                  `json:"active"`
	Definition domain.RuleDefinition `json:"definition"`
	CreatedBy  int64                 `json:"createdBy"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// FieldError ошибка конкретного поля описания правила
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse результат проверки описания правила
type ValidationResponse struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.PricingRule) *RuleResponse {
	if r == nil {
		return nil
	}

	return &RuleResponse{
		ID:         r.ID,
		AreaID:     r.AreaID,
		Version:    r.Version,
		Active:     r.Active,
		Definition: r.Definition,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromValidationResult конвертирует результат проверки в DTO
func FromValidationResult(result pricing.ValidationResult) *ValidationResponse {
	resp := &ValidationResponse{
		Valid:  result.Valid,
		Errors: make([]FieldError, 0, len(result.Errors)),
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, FieldError{Field: e.Field, Message: e.Message})
	}
	return resp
}
