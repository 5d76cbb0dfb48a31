package drink

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/venueops/internal/model"
)

var (
	now        = time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)
	weekStart  = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	weekEnd    = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	portion    = model.Product{ID: "portion", Name: "Porção", UnitPrice: 20}
	softDrink  = model.Product{ID: "soda", Name: "Refrigerante", UnitPrice: 6}
	bonusAlias = model.Product{ID: model.BonusProductID, Name: "Fake bonus", UnitPrice: 1}
)

func newRecord(t *testing.T, quantity int) model.DrinkRecord {
	t.Helper()
	r, err := NewWeek(NewWeekInput{
		EmployeeName:    "Luiza",
		InitialQuantity: quantity,
		PeriodStart:     weekStart,
		PeriodEnd:       weekEnd,
	}, now)
	require.NoError(t, err)
	return r
}

func TestNewWeek(t *testing.T) {
	r := newRecord(t, 3)

	assert.Equal(t, "Luiza", r.EmployeeName)
	assert.Equal(t, 3, r.Quantity)
	assert.Equal(t, model.DefaultGoal, r.Goal)
	assert.Empty(t, r.Items)
}

func TestNewWeek_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   NewWeekInput
	}{
		{name: "missing name", in: NewWeekInput{PeriodStart: weekStart, PeriodEnd: weekEnd}},
		{name: "missing period", in: NewWeekInput{EmployeeName: "Luiza"}},
		{name: "reversed period", in: NewWeekInput{EmployeeName: "Luiza", PeriodStart: weekEnd, PeriodEnd: weekStart}},
		{name: "negative quantity", in: NewWeekInput{EmployeeName: "Luiza", PeriodStart: weekStart, PeriodEnd: weekEnd, InitialQuantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeek(tt.in, now)
			assert.True(t, errors.Is(err, model.ErrValidation))
		})
	}
}

func TestQuantityFloorsAtZero(t *testing.T) {
	r := newRecord(t, 1)

	r = DecrementQuantity(r)
	r = DecrementQuantity(r)
	assert.Equal(t, 0, r.Quantity)

	r = IncrementQuantity(r)
	assert.Equal(t, 1, r.Quantity)
}

func TestCommissionFollowsGoal(t *testing.T) {
	r := newRecord(t, 25)
	assert.Equal(t, 25.0, Summary(r).Commission)

	r, err := SetGoal(r, 30)
	require.NoError(t, err)
	assert.Zero(t, Summary(r).Commission)

	_, err = SetGoal(r, -1)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestBonus(t *testing.T) {
	r := newRecord(t, 0)

	r = AddBonus(r)
	r = AddBonus(r)
	r = AddBonus(r)
	assert.Equal(t, 3, Summary(r).BonusCount)
	assert.Equal(t, 60.0, Summary(r).BonusValue)

	r = RemoveBonus(r)
	r = RemoveBonus(r)
	require.Len(t, r.Items, 1)

	r = RemoveBonus(r)
	assert.Empty(t, r.Items)

	r = RemoveBonus(r)
	assert.Empty(t, r.Items)
}

func TestConsumptionExcludesBonusFromMatching(t *testing.T) {
	r := AddBonus(newRecord(t, 0))

	r, err := AddConsumptionItem(r, portion)
	require.NoError(t, err)
	r, err = AddConsumptionItem(r, portion)
	require.NoError(t, err)

	require.Len(t, r.Items, 2)
	assert.Equal(t, 1, r.Items[0].Quantity)
	assert.Equal(t, 2, r.Items[1].Quantity)

	_, err = AddConsumptionItem(r, bonusAlias)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestNetBalanceScenario(t *testing.T) {
	r := newRecord(t, 25)
	r = AddBonus(AddBonus(AddBonus(r)))
	r, _ = AddConsumptionItem(r, portion)
	r, _ = AddConsumptionItem(r, portion)

	s := Summary(r)

	assert.Equal(t, 25.0, s.Commission)
	assert.Equal(t, 60.0, s.BonusValue)
	assert.Equal(t, 40.0, s.ConsumptionTotal)
	assert.Equal(t, 45.0, s.NetBalance)
}

func TestConsumptionItemQuantityRules(t *testing.T) {
	r := newRecord(t, 0)
	r, _ = AddConsumptionItem(r, softDrink)
	r, _ = AddConsumptionItem(r, portion)

	up, err := IncrementConsumptionItem(r, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, up.Items[0].Quantity)

	viaDecrement, err := DecrementConsumptionItem(r, 0)
	require.NoError(t, err)
	viaRemove, err := RemoveConsumptionItem(r, 0)
	require.NoError(t, err)
	assert.Equal(t, viaRemove, viaDecrement)

	_, err = RemoveConsumptionItem(r, 7)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestApplyPatchAndDiff(t *testing.T) {
	prev := newRecord(t, 10)
	prev.Version = 4

	next := IncrementQuantity(prev)
	next, _ = SetGoal(next, 15)
	next, _ = AddConsumptionItem(next, softDrink)

	patch := Diff(prev, next)

	assert.Nil(t, patch.EmployeeName)
	assert.Nil(t, patch.PeriodStart)
	require.NotNil(t, patch.Quantity)
	require.NotNil(t, patch.Goal)
	require.NotNil(t, patch.Items)
	require.NotNil(t, patch.Version)
	assert.Equal(t, int64(4), *patch.Version)

	merged, err := ApplyPatch(prev, patch)
	require.NoError(t, err)
	assert.Equal(t, next.Quantity, merged.Quantity)
	assert.Equal(t, next.Goal, merged.Goal)
	assert.Equal(t, next.Items, merged.Items)
}

func TestApplyPatch_Rejects(t *testing.T) {
	r := newRecord(t, 1)
	empty := " "
	negative := -3
	badItems := []model.LineItem{{Description: "x", Quantity: 0}}

	tests := []struct {
		name  string
		patch model.DrinkPatch
	}{
		{name: "blank name", patch: model.DrinkPatch{EmployeeName: &empty}},
		{name: "negative quantity", patch: model.DrinkPatch{Quantity: &negative}},
		{name: "zero quantity item", patch: model.DrinkPatch{Items: &badItems}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyPatch(r, tt.patch)
			assert.True(t, errors.Is(err, model.ErrValidation))
			assert.Equal(t, r, got)
		})
	}
}

func TestFilterEmployee(t *testing.T) {
	records := []model.DrinkRecord{{EmployeeName: "Luiza"}, {EmployeeName: "Bia"}, {EmployeeName: "Luana"}}

	assert.Len(t, FilterEmployee(records, "lu"), 2)
	assert.Len(t, FilterEmployee(records, ""), 3)
}
