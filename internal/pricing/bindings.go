package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

const (
	hoursPerDay   = 24
	hoursPerWeek  = 168
	hoursPerMonth = 720 // месяц считается за 30 дней
)

// Bindings таблица значений переменных для одного вычисления
type Bindings struct {
	// Typed все переменные, для условий
	Typed map[string]domain.Value
	// Numeric только числовые переменные, для формулы
	Numeric map[string]float64
}

// BuildBindings собирает встроенные и объявленные переменные
//
// time и date берутся в часовом поясе ref, datetime всегда в UTC.
// Значение объявленной переменной: override > initialValue > 0.
// Overrides для необъявленных ключей игнорируются, встроенные переменные переопределить нельзя
func BuildBindings(def domain.RuleDefinition, bookingHours int, ref time.Time, overrides map[string]string) (*Bindings, error) {
	hours := float64(bookingHours)

	typed := map[string]domain.Value{
		domain.VarBookingHours:  domain.NumberValue(hours),
		domain.VarBookingDays:   domain.NumberValue(math.Ceil(hours / hoursPerDay)),
		domain.VarBookingWeeks:  domain.NumberValue(math.Ceil(hours / hoursPerWeek)),
		domain.VarBookingMonths: domain.NumberValue(math.Ceil(hours / hoursPerMonth)),
		domain.VarDayOfWeek:     domain.NumberValue(float64(DayOfWeek(ref))),
		domain.VarTime:          {Type: domain.TypeTime, Text: ref.Format(domain.TimeFormat)},
		domain.VarDate:          {Type: domain.TypeDate, Text: ref.Format(domain.DateFormat)},
		domain.VarDateTime:      {Type: domain.TypeDateTime, Text: domain.FormatDateTime(ref)},
	}

	for _, v := range def.Variables {
		if domain.IsBuiltinVariable(v.Key) {
			continue
		}

		raw, ok := overrides[v.Key]
		source := "override"
		if !ok && v.InitialValue != nil {
			raw, ok = *v.InitialValue, true
			source = "initial value"
		}
		if !ok {
			typed[v.Key] = domain.NumberValue(0)
			continue
		}

		value, err := domain.ParseValue(v.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s of %q: %v", ErrInvalidVariableValue, source, v.Key, err)
		}
		typed[v.Key] = value
	}

	numeric := make(map[string]float64, len(typed))
	for key, value := range typed {
		if value.Type == domain.TypeNumber {
			numeric[key] = value.Number
		}
	}

	return &Bindings{Typed: typed, Numeric: numeric}, nil
}

// DayOfWeek день недели с понедельника: 0 = понедельник, 6 = воскресенье
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// BookingHours длительность окна в часах, неполный час округляется вверх
func BookingHours(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours()))
}
