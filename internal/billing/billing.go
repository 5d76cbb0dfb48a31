// Package billing содержит денежную арифметику: суммы строк, тарифы комнат, комиссии и выручку.
package billing

import (
	"time"

	"github.com/mmeshcher/venueops/internal/model"
)

const (
	// ServiceChargeRate доля сервисного сбора от текущей суммы счёта.
	ServiceChargeRate = 0.10
	// CommissionPerUnit выплата за каждый напиток сверх нормы.
	CommissionPerUnit = 5.0
	// BonusUnitValue стоимость одного бонуса.
	BonusUnitValue = 20.0
)

// Tolerance допустимая погрешность сравнения денежных сумм с плавающей точкой.
const Tolerance = 1e-9

// LineTotal возвращает сумму одной строки.
func LineTotal(item model.LineItem) float64 {
	return float64(item.Quantity) * item.UnitPrice
}

// Total возвращает сумму всех строк.
func Total(items []model.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += LineTotal(item)
	}
	return total
}

// ServiceCharge возвращает сервисный сбор, начисляемый на сумму до его добавления.
func ServiceCharge(currentTotal float64) float64 {
	return currentTotal * ServiceChargeRate
}

type tierInfo struct {
	price    float64
	duration time.Duration
}

var tiers = map[model.DurationTier]tierInfo{
	model.Tier25Minutes:   {price: 50, duration: 25 * time.Minute},
	model.Tier40Minutes:   {price: 50, duration: 40 * time.Minute},
	model.TierHour:        {price: 100, duration: time.Hour},
	model.TierHourPremium: {price: 150, duration: time.Hour},
	model.TierFree:        {price: 0, duration: 0},
}

// Tiers возвращает все известные ступени в порядке отображения.
func Tiers() []model.DurationTier {
	return []model.DurationTier{
		model.Tier25Minutes,
		model.Tier40Minutes,
		model.TierHour,
		model.TierHourPremium,
		model.TierFree,
	}
}

// KnownTier сообщает, есть ли ступень в тарифной таблице.
func KnownTier(tier model.DurationTier) bool {
	_, ok := tiers[tier]
	return ok
}

// TierPrice возвращает цену ступени. Свободное время и неизвестные ступени не тарифицируются.
func TierPrice(tier model.DurationTier) float64 {
	return tiers[tier].price
}

// TierDuration возвращает номинальную длительность ступени; ноль означает отсутствие лимита.
func TierDuration(tier model.DurationTier) time.Duration {
	return tiers[tier].duration
}

// SessionRevenue возвращает вклад сеанса в выручку.
// Учитываются только завершённые сеансы; активные и отменённые дают ноль.
func SessionRevenue(s model.RoomSession) float64 {
	if s.Status != model.RoomStatusFinalized {
		return 0
	}
	return s.BilledAmount
}

// Revenue суммирует выручку по сеансам.
func Revenue(sessions []model.RoomSession) float64 {
	var total float64
	for _, s := range sessions {
		total += SessionRevenue(s)
	}
	return total
}

// Commission возвращает комиссию за напитки сверх нормы.
func Commission(quantity, goal int) float64 {
	extra := quantity - goal
	if extra < 0 {
		extra = 0
	}
	return float64(extra) * CommissionPerUnit
}

// BonusValue возвращает стоимость накопленных бонусов.
func BonusValue(bonusCount int) float64 {
	return float64(bonusCount) * BonusUnitValue
}

// NetBalance возвращает итоговый баланс сотрудницы.
func NetBalance(commission, bonusValue, consumptionTotal float64) float64 {
	return commission + bonusValue - consumptionTotal
}

// BonusCount возвращает количество бонусов в списке строк.
func BonusCount(items []model.LineItem) int {
	for _, item := range items {
		if item.ProductID == model.BonusProductID {
			return item.Quantity
		}
	}
	return 0
}

// ConsumptionTotal суммирует потребление, исключая псевдопозицию бонуса.
func ConsumptionTotal(items []model.LineItem) float64 {
	var total float64
	for _, item := range items {
		if item.ProductID == model.BonusProductID {
			continue
		}
		total += LineTotal(item)
	}
	return total
}

// Summarize вычисляет производные показатели записи напитков.
func Summarize(r model.DrinkRecord) model.DrinkSummary {
	commission := Commission(r.Quantity, r.Goal)
	bonusCount := BonusCount(r.Items)
	bonusValue := BonusValue(bonusCount)
	consumption := ConsumptionTotal(r.Items)

	return model.DrinkSummary{
		Commission:       commission,
		BonusCount:       bonusCount,
		BonusValue:       bonusValue,
		ConsumptionTotal: consumption,
		NetBalance:       NetBalance(commission, bonusValue, consumption),
	}
}

// DrinkTotals сводит количество, комиссию и потребление по всем записям.
func DrinkTotals(records []model.DrinkRecord) model.DrinkTotals {
	var totals model.DrinkTotals
	for _, r := range records {
		totals.Quantity += r.Quantity
		totals.Commission += Commission(r.Quantity, r.Goal)
		totals.Consumption += ConsumptionTotal(r.Items)
	}
	return totals
}
