package pricing

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// GuestCountVariable переменная, через которую формула может сама учитывать число гостей
const GuestCountVariable = "guest_count"

// moneyPlaces точность денежных сумм
const moneyPlaces = 2

// CheckoutOverrides значения переменных для расчета цены по запросу клиента
// Клиент может задать только переменные, объявленные хостом как clientEditable,
// остальные ключи отбрасываются. guest_count всегда берется из числа гостей
func CheckoutOverrides(def domain.RuleDefinition, client map[string]string, guests int) map[string]string {
	result := make(map[string]string, len(client)+1)
	for _, v := range def.Variables {
		if !v.ClientEditable || v.Key == GuestCountVariable {
			continue
		}
		if raw, ok := client[v.Key]; ok {
			result[v.Key] = raw
		}
	}
	result[GuestCountVariable] = strconv.Itoa(guests)
	return result
}

// TotalPrice цена за единицу и итоговая сумма
// Если формула уже использовала guest_count, итог не умножается на число гостей повторно.
// Отрицательная цена считается отсутствующей (ok=false)
func TotalPrice(result PriceResult, guests int) (unit, total decimal.Decimal, ok bool) {
	if result.Price == nil {
		return decimal.Zero, decimal.Zero, false
	}

	unit = decimal.NewFromFloat(*result.Price).Round(moneyPlaces)
	if unit.IsNegative() {
		return decimal.Zero, decimal.Zero, false
	}
	if result.UsesVariable(GuestCountVariable) || guests <= 1 {
		return unit, unit, true
	}
	return unit, unit.Mul(decimal.NewFromInt(int64(guests))).Round(moneyPlaces), true
}
