package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing/condition"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing/formula"
)

// Branch какая часть формулы была вычислена
type Branch string

const (
	BranchUnconditional Branch = "unconditional"
	BranchThen          Branch = "then"
	BranchElse          Branch = "else"
	BranchNoMatch       Branch = "no-match"
)

// EvaluationInput параметры вычисления цены
type EvaluationInput struct {
	BookingHours      int
	Now               time.Time // опорный момент для day_of_week/time/date/datetime, нулевое значение = текущее время
	VariableOverrides map[string]string
}

// PriceResult результат вычисления цены
// Price == nil означает "цена недоступна"; Failure заполнен, если причиной стала ошибка
type PriceResult struct {
	Price               *float64 `json:"price"`
	Branch              Branch   `json:"branch"`
	ConditionsSatisfied bool     `json:"conditionsSatisfied"`
	UsedVariables       []string `json:"usedVariables"`
	Failure             error    `json:"-"`
}

// Priced возвращает true, если цена вычислена
func (r PriceResult) Priced() bool {
	return r.Price != nil
}

// UsesVariable сообщает, использовала ли вычисленная ветка переменную key
func (r PriceResult) UsesVariable(key string) bool {
	for _, used := range r.UsedVariables {
		if used == key {
			return true
		}
	}
	return false
}

// Evaluator вычисляет цену по определению правила
// Не хранит изменяемого состояния и безопасен для конкурентного использования
type Evaluator struct {
	limits Limits
	now    func() time.Time
}

// NewEvaluator создает вычислитель цены
func NewEvaluator(limits Limits) *Evaluator {
	return &Evaluator{limits: limits.withDefaults(), now: time.Now}
}

// EvaluatePriceRule никогда не возвращает ошибку: любые сбои вычисления превращаются в Price == nil
func (e *Evaluator) EvaluatePriceRule(def domain.RuleDefinition, in EvaluationInput) PriceResult {
	result := PriceResult{Branch: BranchUnconditional, UsedVariables: []string{}}
	if len(def.Conditions) > 0 {
		result.Branch = BranchNoMatch
	}

	ref := in.Now
	if ref.IsZero() {
		ref = e.now()
	}

	bindings, err := BuildBindings(def, in.BookingHours, ref, in.VariableOverrides)
	if err != nil {
		result.Failure = degrade(err)
		return result
	}

	if len(def.Conditions) == 0 {
		result.ConditionsSatisfied = true
		e.evaluateBranch(&result, def.Formula, bindings)
		return result
	}

	satisfied, err := condition.Evaluate(def.Conditions, bindings.Typed, e.limits.MaxConditions)
	if err != nil {
		result.Failure = degrade(err)
		return result
	}
	result.ConditionsSatisfied = satisfied

	then, otherwise, found := SplitElse(def.Formula)
	switch {
	case satisfied:
		result.Branch = BranchThen
		e.evaluateBranch(&result, then, bindings)
	case found && strings.TrimSpace(otherwise) != "":
		result.Branch = BranchElse
		e.evaluateBranch(&result, otherwise, bindings)
	default:
		result.Branch = BranchNoMatch
	}

	return result
}

func (e *Evaluator) evaluateBranch(result *PriceResult, src string, bindings *Bindings) {
	seen := make(map[string]struct{})
	price, err := formula.Evaluate(src, bindings.Numeric, func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		result.UsedVariables = append(result.UsedVariables, key)
	}, e.limits.FormulaLimits())
	if err != nil {
		result.Failure = degrade(err)
		return
	}
	result.Price = &price
}

// degrade сопоставляет ошибку с известной таксономией
// Пустая ветка формулы это объявленный результат "без цены", а не сбой
func degrade(err error) error {
	switch {
	case errors.Is(err, formula.ErrNoFormula):
		return nil
	case errors.Is(err, formula.ErrSyntax),
		errors.Is(err, formula.ErrUnknownVariable),
		errors.Is(err, formula.ErrDivisionByZero),
		errors.Is(err, formula.ErrLimitExceeded),
		errors.Is(err, formula.ErrNotFinite),
		errors.Is(err, condition.ErrLimitExceeded),
		errors.Is(err, condition.ErrUnknownVariable),
		errors.Is(err, condition.ErrTypeMismatch),
		errors.Is(err, condition.ErrInvalidCondition),
		errors.Is(err, ErrInvalidVariableValue):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
}
