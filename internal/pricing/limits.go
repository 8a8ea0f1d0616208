package pricing

import (
	"github.com/m04kA/SMC-CoworkingService/internal/pricing/condition"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing/formula"
)

// Limits ограничения, защищающие движок от произвольно больших правил
// Значения приходят из конфигурации, нули заменяются значениями по умолчанию
type Limits struct {
	MaxFormulaLength int
	MaxNestingDepth  int
	MaxConditions    int
}

// DefaultLimits 1000 символов, 32 уровня скобок, 20 условий
func DefaultLimits() Limits {
	return Limits{
		MaxFormulaLength: formula.DefaultMaxLength,
		MaxNestingDepth:  formula.DefaultMaxDepth,
		MaxConditions:    condition.DefaultMaxConditions,
	}
}

// FormulaLimits лимиты парсера формул
func (l Limits) FormulaLimits() formula.Limits {
	return formula.Limits{MaxLength: l.MaxFormulaLength, MaxDepth: l.MaxNestingDepth}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxFormulaLength <= 0 {
		l.MaxFormulaLength = d.MaxFormulaLength
	}
	if l.MaxNestingDepth <= 0 {
		l.MaxNestingDepth = d.MaxNestingDepth
	}
	if l.MaxConditions <= 0 {
		l.MaxConditions = d.MaxConditions
	}
	return l
}
