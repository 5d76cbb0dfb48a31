package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmeshcher/venueops/internal/gateway/mocks"
	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/venue"
)

const tenant = "bar-centro"

func newTestVenue(t *testing.T) (*venue.Venue, *mocks.MockGateway) {
	t.Helper()

	gw := mocks.NewMockGateway(gomock.NewController(t))
	v, err := venue.New(venue.Session{TenantID: tenant}, gw, nil)
	require.NoError(t, err)
	return v, gw
}

func expectLoad(gw *mocks.MockGateway, tabs []model.Tab, rooms []model.RoomSession) {
	gw.EXPECT().ListProducts(gomock.Any()).Return([]model.Product{{ID: "beer", Name: "Beer", UnitPrice: 10}}, nil)
	gw.EXPECT().ListTabs(gomock.Any(), tenant).Return(tabs, nil)
	gw.EXPECT().ListRooms(gomock.Any(), tenant).Return(rooms, nil)
	gw.EXPECT().ListDrinks(gomock.Any(), tenant, gomock.Any()).Return(nil, nil)
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	v, _ := newTestVenue(t)
	var out bytes.Buffer

	err := run(context.Background(), v, nil, &out)

	assert.True(t, errors.Is(err, errUsage))
	assert.Contains(t, out.String(), "usage: venuectl")
}

func TestRun_OpenTab(t *testing.T) {
	v, gw := newTestVenue(t)
	expectLoad(gw, nil, nil)
	gw.EXPECT().CreateTab(gomock.Any(), tenant, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, tab model.Tab) (model.Tab, error) {
			tab.Version = 1
			return tab, nil
		})
	var out bytes.Buffer

	err := run(context.Background(), v, []string{"tabs", "open", "3", "Ana"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Comanda #3")
	assert.Contains(t, out.String(), `owner="Ana"`)
}

func TestRun_AddItemToTab(t *testing.T) {
	v, gw := newTestVenue(t)
	expectLoad(gw, []model.Tab{{ID: "t1", Label: "Comanda #1", Status: model.TabStatusOpen, Items: []model.LineItem{}}}, nil)
	gw.EXPECT().ReplaceTab(gomock.Any(), tenant, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, tab model.Tab) (model.Tab, error) {
			tab.Version++
			return tab, nil
		})
	var out bytes.Buffer

	err := run(context.Background(), v, []string{"tabs", "add", "t1", "beer"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "total=10.00")
}

func TestRun_RoomAvailability(t *testing.T) {
	v, gw := newTestVenue(t)
	expectLoad(gw, nil, []model.RoomSession{
		{ID: "s1", Room: "Quarto 2", Tier: model.TierHour, Status: model.RoomStatusActive, CreatedAt: time.Now()},
	})
	var out bytes.Buffer

	err := run(context.Background(), v, []string{"rooms", "availability"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Quarto 2  occupied")
	assert.Contains(t, out.String(), "Quarto 7  free")
}

func TestRun_InvalidIndex(t *testing.T) {
	v, gw := newTestVenue(t)
	expectLoad(gw, nil, nil)
	var out bytes.Buffer

	err := run(context.Background(), v, []string{"tabs", "inc", "t1", "first"}, &out)

	assert.True(t, errors.Is(err, errUsage))
}

func TestRun_LoadFailure(t *testing.T) {
	v, gw := newTestVenue(t)
	gw.EXPECT().ListProducts(gomock.Any()).Return(nil, errors.New("connection refused"))

	err := run(context.Background(), v, []string{"products"}, &bytes.Buffer{})

	assert.Error(t, err)
}
