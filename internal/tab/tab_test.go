package tab

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/model"
)

var (
	now   = time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	beer  = model.Product{ID: "beer", Name: "Beer", UnitPrice: 10}
	water = model.Product{ID: "water", Name: "Água", UnitPrice: 4.5}
)

func newTab(t *testing.T) model.Tab {
	t.Helper()
	tb, err := New(LabelForTable("12"), "", now)
	require.NoError(t, err)
	return tb
}

func TestNew(t *testing.T) {
	tb := newTab(t)

	assert.Equal(t, "Comanda #12", tb.Label)
	assert.Equal(t, model.TabStatusOpen, tb.Status)
	assert.Empty(t, tb.Items)
	assert.Zero(t, tb.Total)
	assert.Equal(t, now, tb.CreatedAt)

	_, err := New("  ", "", now)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestBeerScenario(t *testing.T) {
	tb := newTab(t)

	tb, err := AddItem(tb, beer)
	require.NoError(t, err)
	tb, err = AddItem(tb, beer)
	require.NoError(t, err)

	require.Len(t, tb.Items, 1)
	assert.Equal(t, 2, tb.Items[0].Quantity)
	assert.Equal(t, 20.0, tb.Total)

	tb, err = AddServiceCharge(tb)
	require.NoError(t, err)

	require.Len(t, tb.Items, 2)
	assert.Equal(t, model.ServiceChargeDescription, tb.Items[1].Description)
	assert.InDelta(t, 2.0, tb.Items[1].UnitPrice, billing.Tolerance)
	assert.InDelta(t, 22.0, tb.Total, billing.Tolerance)
}

func TestServiceChargeIsLabelledAndNeverMerges(t *testing.T) {
	tb := newTab(t)
	tb, _ = AddItem(tb, beer)

	tb, err := AddServiceCharge(tb)
	require.NoError(t, err)
	tb, err = AddItem(tb, model.Product{ID: "servico-extra", Name: model.ServiceChargeDescription, UnitPrice: 5})
	require.NoError(t, err)

	require.Len(t, tb.Items, 3)
	assert.Equal(t, "Serviço", tb.Items[1].Description)
	assert.Empty(t, tb.Items[1].ProductID)
	assert.Equal(t, 1, tb.Items[1].Quantity)
	assert.Equal(t, "servico-extra", tb.Items[2].ProductID)
	assert.InDelta(t, 16.0, tb.Total, billing.Tolerance)
}

func TestDecrementAtOneRemovesItem(t *testing.T) {
	tb := newTab(t)
	tb, _ = AddItem(tb, beer)
	tb, _ = AddItem(tb, water)

	viaDecrement, err := DecrementItem(tb, 0)
	require.NoError(t, err)
	viaRemove, err := RemoveItem(tb, 0)
	require.NoError(t, err)

	assert.Equal(t, viaRemove, viaDecrement)
	assert.Equal(t, 4.5, viaDecrement.Total)
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	tb := newTab(t)
	tb, _ = AddItem(tb, beer)

	_, err := IncrementItem(tb, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, tb.Items[0].Quantity)
	assert.Equal(t, 10.0, tb.Total)
}

func TestTotalMatchesItemsAfterRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	products := []model.Product{beer, water, {ID: "gin", Name: "Gin", UnitPrice: 27.9}}
	tb := newTab(t)

	for i := 0; i < 500; i++ {
		var err error
		n := len(tb.Items)
		switch op := rng.Intn(5); {
		case op == 0 || n == 0:
			tb, err = AddItem(tb, products[rng.Intn(len(products))])
		case op == 1:
			tb, err = IncrementItem(tb, rng.Intn(n))
		case op == 2:
			tb, err = DecrementItem(tb, rng.Intn(n))
		case op == 3:
			tb, err = RemoveItem(tb, rng.Intn(n))
		default:
			tb, err = AddServiceCharge(tb)
		}
		require.NoError(t, err)

		assert.InDelta(t, billing.Total(tb.Items), tb.Total, 1e-6)
		for _, item := range tb.Items {
			assert.GreaterOrEqual(t, item.Quantity, 1)
		}
	}
}

func TestClose(t *testing.T) {
	tb := newTab(t)
	tb, _ = AddItem(tb, beer)

	closedAt := now.Add(time.Hour)
	closed, err := Close(tb, closedAt)
	require.NoError(t, err)

	assert.Equal(t, model.TabStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, closedAt, *closed.ClosedAt)

	_, err = AddItem(closed, beer)
	assert.True(t, errors.Is(err, model.ErrInvalidTransition))

	_, err = Close(closed, closedAt)
	assert.True(t, errors.Is(err, model.ErrInvalidTransition))
}

func TestSetOwner(t *testing.T) {
	tb := SetOwner(newTab(t), "Marcos")
	assert.Equal(t, "Marcos", tb.OwnerName)
}

func TestOpenClosedFilters(t *testing.T) {
	tabs := []model.Tab{
		{ID: "1", Status: model.TabStatusOpen},
		{ID: "2", Status: model.TabStatusClosed},
		{ID: "3", Status: model.TabStatusOpen},
	}

	assert.Len(t, Open(tabs), 2)
	assert.Equal(t, "2", Closed(tabs)[0].ID)
}

func TestItemIndexOutOfRange(t *testing.T) {
	_, err := IncrementItem(newTab(t), 0)
	assert.True(t, errors.Is(err, model.ErrValidation))
}
