package pricing

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing/formula"
)

var variableKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FieldError ошибка, привязанная к полю определения правила
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult результат статической проверки правила
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

// Validator статическая проверка определения правила перед сохранением
// Формула никогда не вычисляется, проверяются только структура и идентификаторы
type Validator struct {
	limits Limits
}

// NewValidator создает валидатор
func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits.withDefaults()}
}

type validation struct {
	errors []FieldError
}

func (v *validation) add(field, format string, args ...interface{}) {
	v.errors = append(v.errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate проверяет определение правила; каждая проблема сообщается отдельно
// Проверка строже вычисления: условия без ветки ELSE отклоняются
func (val *Validator) Validate(def domain.RuleDefinition) ValidationResult {
	v := &validation{errors: []FieldError{}}

	val.validateName(v, def.Name)
	declared := val.validateVariables(v, def.Variables)
	val.validateConditions(v, def.Conditions, declared)
	val.validateFormula(v, def.Formula, len(def.Conditions) > 0, declared)

	return ValidationResult{Valid: len(v.errors) == 0, Errors: v.errors}
}

func (val *Validator) validateName(v *validation, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		v.add("name", "name is required")
		return
	}
	if utf8.RuneCountInString(name) > domain.MaxRuleNameLength {
		v.add("name", "name exceeds maximum length of %d characters", domain.MaxRuleNameLength)
	}
}

// validateVariables возвращает типы объявленных переменных
func (val *Validator) validateVariables(v *validation, variables []domain.Variable) map[string]domain.ValueType {
	declared := make(map[string]domain.ValueType, len(variables))

	for i, variable := range variables {
		field := fmt.Sprintf("variables[%d]", i)

		switch {
		case variable.Key == "":
			v.add(field+".key", "key is required")
		case !variableKeyPattern.MatchString(variable.Key):
			v.add(field+".key", "key %q must start with a letter or underscore and contain only letters, digits and underscores", variable.Key)
		case domain.IsBuiltinVariable(variable.Key):
			v.add(field+".key", "key %q is reserved for a built-in variable", variable.Key)
		default:
			if _, dup := declared[variable.Key]; dup {
				v.add(field+".key", "duplicate variable key %q", variable.Key)
			} else {
				declared[variable.Key] = variable.Type
			}
		}

		if variable.ClientEditable && variable.Key == GuestCountVariable {
			v.add(field+".clientEditable", "%q is filled from the guest count and cannot be client editable", GuestCountVariable)
		}

		if !variable.Type.IsValid() {
			v.add(field+".type", "type %q must be one of number, time, date, datetime", variable.Type)
			continue
		}
		if variable.InitialValue != nil {
			if _, err := domain.ParseValue(variable.Type, *variable.InitialValue); err != nil {
				v.add(field+".initialValue", "initial value %q is not a valid %s", *variable.InitialValue, variable.Type)
			}
		}
	}

	return declared
}

func (val *Validator) validateConditions(v *validation, conditions []domain.Condition, declared map[string]domain.ValueType) {
	if len(conditions) > val.limits.MaxConditions {
		v.add("conditions", "rule exceeds maximum of %d conditions", val.limits.MaxConditions)
	}

	for i, c := range conditions {
		field := fmt.Sprintf("conditions[%d]", i)

		if !c.Comparator.IsValid() {
			v.add(field+".comparator", "comparator %q must be one of <, <=, >, >=, =, !=", c.Comparator)
		}

		switch {
		case i == 0 && c.Connector != domain.ConnectorNone:
			v.add(field+".connector", "the first condition must not have a connector")
		case i > 0 && c.Connector != domain.ConnectorAnd && c.Connector != domain.ConnectorOr:
			v.add(field+".connector", "connector must be %q or %q", domain.ConnectorAnd, domain.ConnectorOr)
		}

		if !c.Type.IsValid() {
			v.add(field+".type", "type %q must be one of number, time, date, datetime", c.Type)
			continue
		}

		validateOperand(v, field+".left", c.Left, c.Type, declared)
		validateOperand(v, field+".right", c.Right, c.Type, declared)
	}
}

func validateOperand(v *validation, field string, op domain.Operand, typ domain.ValueType, declared map[string]domain.ValueType) {
	switch op.Kind {
	case domain.OperandVariable:
		varType, ok := resolveVariableType(op.Key, declared)
		if !ok {
			v.add(field, "references undeclared variable %q", op.Key)
			return
		}
		if !coercible(varType, typ) {
			v.add(field, "variable %q of type %s cannot be compared as %s", op.Key, varType, typ)
		}
	case domain.OperandLiteral:
		litType := op.Type
		if litType == "" {
			litType = typ
		}
		if litType != typ {
			v.add(field, "literal of type %s cannot be compared as %s", litType, typ)
			return
		}
		if _, err := domain.ParseLiteral(litType, op.Value, op.Meridiem); err != nil {
			v.add(field, "value %q is not a valid %s", op.Value, litType)
		}
	default:
		v.add(field, "operand kind %q must be %q or %q", op.Kind, domain.OperandVariable, domain.OperandLiteral)
	}
}

func (val *Validator) validateFormula(v *validation, src string, conditional bool, declared map[string]domain.ValueType) {
	if strings.TrimSpace(src) == "" {
		v.add("formula", "formula is required")
		return
	}
	if len(src) > val.limits.MaxFormulaLength {
		v.add("formula", "formula exceeds maximum length of %d characters", val.limits.MaxFormulaLength)
		return
	}

	elseCount := CountElse(src)
	halves := []string{src}
	switch {
	case conditional && elseCount == 0:
		v.add("formula", "formula must contain an %s branch when conditions are present", ElseKeyword)
	case conditional && elseCount > 1:
		v.add("formula", "formula must contain exactly one %s", ElseKeyword)
	case !conditional && elseCount > 0:
		v.add("formula", "%s is only allowed when conditions are present", ElseKeyword)
	}
	if elseCount > 0 {
		then, otherwise, _ := SplitElse(src)
		halves = []string{then, otherwise}
		if conditional && elseCount == 1 && strings.TrimSpace(otherwise) == "" {
			v.add("formula", "%s branch must not be empty", ElseKeyword)
		}
	}

	reported := make(map[string]struct{})
	for _, half := range halves {
		if strings.TrimSpace(half) == "" {
			continue
		}
		if _, err := formula.Parse(half, val.limits.FormulaLimits()); err != nil {
			v.add("formula", "%s", formulaErrorMessage(err))
		}

		idents, err := formula.ReferencedIdentifiers(half)
		if err != nil {
			continue
		}
		for _, ident := range idents {
			if _, done := reported[ident]; done || ident == ElseKeyword {
				continue
			}
			varType, ok := resolveVariableType(ident, declared)
			switch {
			case !ok:
				reported[ident] = struct{}{}
				v.add("formula", "references undeclared variable %q", ident)
			case varType != domain.TypeNumber:
				reported[ident] = struct{}{}
				v.add("formula", "variable %q of type %s cannot be used in arithmetic", ident, varType)
			}
		}
	}
}

func formulaErrorMessage(err error) string {
	var syntaxErr *formula.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("syntax error at position %d: %s", syntaxErr.Pos, syntaxErr.Msg)
	}
	return strings.TrimPrefix(err.Error(), "formula: ")
}

func resolveVariableType(key string, declared map[string]domain.ValueType) (domain.ValueType, bool) {
	if t, ok := domain.BuiltinVariables[key]; ok {
		return t, true
	}
	t, ok := declared[key]
	return t, ok
}

// coercible повторяет правила приведения типов вычислителя условий
func coercible(from, to domain.ValueType) bool {
	if from == to {
		return true
	}
	switch {
	case from == domain.TypeDateTime && (to == domain.TypeDate || to == domain.TypeTime):
		return true
	case from == domain.TypeDate && to == domain.TypeDateTime:
		return true
	}
	return false
}
