package venue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	clockmocks "github.com/mmeshcher/venueops/internal/common/clock/mocks"
	uuidmocks "github.com/mmeshcher/venueops/internal/common/uuid/mocks"
	"github.com/mmeshcher/venueops/internal/drink"
	"github.com/mmeshcher/venueops/internal/gateway/mocks"
	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/optimistic"
	"github.com/mmeshcher/venueops/internal/room"
)

const tenant = "tenant-1"

var (
	now        = time.Date(2026, 10, 16, 22, 0, 0, 0, time.UTC)
	errOffline = errors.New("connection refused")
	beer       = model.Product{ID: "beer", Name: "Beer", UnitPrice: 10}
)

type fixture struct {
	gw    *mocks.MockGateway
	ids   *uuidmocks.MockUUID
	venue *Venue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	clk := clockmocks.NewMockClock(ctrl)
	ids := uuidmocks.NewMockUUID(ctrl)
	clk.EXPECT().Now().Return(now).AnyTimes()

	v, err := New(Session{TenantID: tenant}, gw, nil, WithClock(clk), WithUUID(ids))
	require.NoError(t, err)

	return &fixture{gw: gw, ids: ids, venue: v}
}

func echoTab(_ context.Context, _ string, t model.Tab) (model.Tab, error) {
	t.Version++
	return t, nil
}

func TestNew_RequiresTenant(t *testing.T) {
	_, err := New(Session{}, nil, nil)

	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestTabScenario_MergeAndServiceCharge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gw.EXPECT().ListProducts(gomock.Any()).Return([]model.Product{beer}, nil)
	require.NoError(t, f.venue.LoadProducts(ctx))

	f.ids.EXPECT().NewUUID().Return("t1")
	f.gw.EXPECT().CreateTab(gomock.Any(), tenant, gomock.Any()).DoAndReturn(echoTab)
	f.gw.EXPECT().ReplaceTab(gomock.Any(), tenant, gomock.Any()).DoAndReturn(echoTab).Times(3)

	created, err := f.venue.CreateTableTab(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Comanda #1", created.Label)

	_, err = f.venue.AddTabItem(ctx, "t1", "beer")
	require.NoError(t, err)
	got, err := f.venue.AddTabItem(ctx, "t1", "beer")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 20.0, got.Total)

	got, err = f.venue.AddServiceCharge(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.InDelta(t, 2.0, got.Items[1].UnitPrice, 1e-9)
	assert.InDelta(t, 22.0, got.Total, 1e-9)
	assert.Equal(t, int64(4), got.Version)
}

func TestTab_PersistFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gw.EXPECT().ListTabs(gomock.Any(), tenant).Return([]model.Tab{{
		ID:     "t1",
		Label:  "Comanda #1",
		Status: model.TabStatusOpen,
		Items:  []model.LineItem{{ProductID: "beer", Description: "Beer", Quantity: 2, UnitPrice: 10}},
		Total:  20,
	}}, nil)
	require.NoError(t, f.venue.LoadTabs(ctx))
	before, _ := f.venue.Tab("t1")

	f.gw.EXPECT().ReplaceTab(gomock.Any(), tenant, gomock.Any()).Return(model.Tab{}, errOffline)

	_, err := f.venue.CloseTab(ctx, "t1")

	var perr *optimistic.PersistError
	require.ErrorAs(t, err, &perr)
	assert.True(t, errors.Is(err, errOffline))
	after, _ := f.venue.Tab("t1")
	assert.Equal(t, before, after)
	assert.Len(t, f.venue.Tabs(), 1)
	assert.Empty(t, f.venue.ClosedTabs())
}

func TestTab_OverlappingChangesKeepServerVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stored := model.Tab{
		ID:      "t1",
		Label:   "Comanda #1",
		Status:  model.TabStatusOpen,
		Items:   []model.LineItem{{ProductID: "beer", Description: "Beer", Quantity: 1, UnitPrice: 10}},
		Total:   10,
		Version: 1,
	}
	f.gw.EXPECT().ListTabs(gomock.Any(), tenant).Return([]model.Tab{stored}, nil)
	require.NoError(t, f.venue.LoadTabs(ctx))

	ownerSent, ownerRelease := make(chan struct{}), make(chan struct{})
	incSent, incRelease := make(chan struct{}), make(chan struct{})
	var serverTab model.Tab

	gomock.InOrder(
		f.gw.EXPECT().ReplaceTab(gomock.Any(), tenant, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, next model.Tab) (model.Tab, error) {
				close(ownerSent)
				<-ownerRelease
				next.Version = 2
				serverTab = next
				return next, nil
			}),
		f.gw.EXPECT().ReplaceTab(gomock.Any(), tenant, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, next model.Tab) (model.Tab, error) {
				close(incSent)
				<-incRelease
				return model.Tab{}, fmt.Errorf("stored 2, got %d: %w", next.Version, model.ErrVersionConflict)
			}),
	)

	ownerDone := make(chan error, 1)
	go func() {
		_, err := f.venue.SetTabOwner(ctx, "t1", "Ana")
		ownerDone <- err
	}()
	<-ownerSent

	incDone := make(chan error, 1)
	go func() {
		_, err := f.venue.IncrementTabItem(ctx, "t1", 0)
		incDone <- err
	}()
	<-incSent

	close(ownerRelease)
	require.NoError(t, <-ownerDone)

	f.gw.EXPECT().ListTabs(gomock.Any(), tenant).DoAndReturn(
		func(context.Context, string) ([]model.Tab, error) {
			return []model.Tab{serverTab}, nil
		})
	close(incRelease)
	err := <-incDone
	assert.True(t, errors.Is(err, model.ErrVersionConflict))

	got, _ := f.venue.Tab("t1")
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, "Ana", got.OwnerName)
	assert.Equal(t, 1, got.Items[0].Quantity)

	f.gw.EXPECT().ReplaceTab(gomock.Any(), tenant, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, next model.Tab) (model.Tab, error) {
			if next.Version != 2 {
				return model.Tab{}, fmt.Errorf("stored 2, got %d: %w", next.Version, model.ErrVersionConflict)
			}
			next.Version = 3
			return next, nil
		})

	got, err = f.venue.SetTabOwner(ctx, "t1", "Bia")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Version)
}

func TestTab_VersionConflictReloadFailureIsStaleView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gw.EXPECT().ListTabs(gomock.Any(), tenant).Return([]model.Tab{{
		ID: "t1", Label: "Comanda #1", Status: model.TabStatusOpen, Items: []model.LineItem{}, Version: 1,
	}}, nil)
	require.NoError(t, f.venue.LoadTabs(ctx))

	f.gw.EXPECT().ReplaceTab(gomock.Any(), tenant, gomock.Any()).Return(model.Tab{}, model.ErrVersionConflict)
	f.gw.EXPECT().ListTabs(gomock.Any(), tenant).Return(nil, errOffline)

	_, err := f.venue.SetTabOwner(ctx, "t1", "Ana")

	assert.True(t, errors.Is(err, model.ErrVersionConflict))
	assert.True(t, errors.Is(err, ErrStaleView))
	got, _ := f.venue.Tab("t1")
	assert.Empty(t, got.OwnerName)
}

func TestTab_ClosedTabRejectsItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gw.EXPECT().ListTabs(gomock.Any(), tenant).Return([]model.Tab{{ID: "t1", Label: "Comanda #1", Status: model.TabStatusClosed}}, nil)
	f.gw.EXPECT().ListProducts(gomock.Any()).Return([]model.Product{beer}, nil)
	require.NoError(t, f.venue.LoadTabs(ctx))
	require.NoError(t, f.venue.LoadProducts(ctx))

	_, err := f.venue.AddTabItem(ctx, "t1", "beer")

	assert.True(t, errors.Is(err, model.ErrInvalidTransition))
}

func TestRoomScenario_FinalizeThenCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ids.EXPECT().NewUUID().Return("s1")
	f.gw.EXPECT().CreateRoom(gomock.Any(), tenant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, s model.RoomSession) (model.RoomSession, error) {
			s.Version = 1
			return s, nil
		})

	started, err := f.venue.StartRoom(ctx, room.NewSessionInput{
		GuestName: "Carlos",
		Tier:      model.TierHour,
		Room:      "Quarto 1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusActive, started.Status)

	f.gw.EXPECT().FinalizeRoom(gomock.Any(), tenant, "s1").
		DoAndReturn(func(context.Context, string, string) (model.RoomSession, error) {
			return room.Finalize(started, now)
		})

	finalized, err := f.venue.FinalizeRoom(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, finalized.BilledAmount)
	assert.Equal(t, 100.0, f.venue.RoomsRevenue())

	canceled, _ := room.Cancel(finalized)
	f.gw.EXPECT().CancelRoom(gomock.Any(), tenant, "s1").Return(canceled, nil)
	f.gw.EXPECT().ListRooms(gomock.Any(), tenant).Return([]model.RoomSession{canceled}, nil)

	got, err := f.venue.CancelRoom(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, got.BilledAmount)
	assert.Equal(t, model.RoomStatusCanceled, got.Status)
	assert.Zero(t, f.venue.RoomsRevenue())
}

func TestCancelRoom_FailureRestoresBilledAmountAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	closed := now.Add(-time.Minute)

	f.gw.EXPECT().ListRooms(gomock.Any(), tenant).Return([]model.RoomSession{{
		ID:           "s1",
		Room:         "Quarto 2",
		Tier:         model.TierHour,
		Status:       model.RoomStatusFinalized,
		BilledAmount: 100,
		CreatedAt:    now.Add(-time.Hour),
		ClosedAt:     &closed,
	}}, nil)
	require.NoError(t, f.venue.LoadRooms(ctx))

	f.gw.EXPECT().CancelRoom(gomock.Any(), tenant, "s1").
		DoAndReturn(func(context.Context, string, string) (model.RoomSession, error) {
			visible := f.venue.Rooms()
			assert.Equal(t, model.RoomStatusCanceled, visible[0].Status)
			assert.Zero(t, visible[0].BilledAmount)
			return model.RoomSession{}, errOffline
		})

	_, err := f.venue.CancelRoom(ctx, "s1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errOffline))
	got := f.venue.Rooms()
	require.Len(t, got, 1)
	assert.Equal(t, model.RoomStatusFinalized, got[0].Status)
	assert.Equal(t, 100.0, got[0].BilledAmount)
	assert.Empty(t, got[0].Note)
}

func TestStartRoom_OccupiedRejectedBeforeGateway(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gw.EXPECT().ListRooms(gomock.Any(), tenant).Return([]model.RoomSession{
		{ID: "s1", Room: "Quarto 3", Tier: model.TierHour, Status: model.RoomStatusActive, CreatedAt: now},
	}, nil)
	require.NoError(t, f.venue.LoadRooms(ctx))

	_, err := f.venue.StartRoom(ctx, room.NewSessionInput{Tier: model.Tier25Minutes, Room: "Quarto 3"})

	assert.True(t, errors.Is(err, room.ErrRoomOccupied))
	assert.Len(t, f.venue.ActiveRooms(), 1)
	assert.True(t, f.venue.Availability()["Quarto 3"])
}

func TestStartRoom_ConcurrentCallsOccupyRoomOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var (
		mu  sync.Mutex
		seq int
	)
	f.ids.EXPECT().NewUUID().DoAndReturn(func() string {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return fmt.Sprintf("s%d", seq)
	}).AnyTimes()
	f.gw.EXPECT().CreateRoom(gomock.Any(), tenant, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, s model.RoomSession) (model.RoomSession, error) {
			s.Version = 1
			return s, nil
		}).AnyTimes()

	const callers = 16
	var (
		wg       sync.WaitGroup
		occupied int
		started  int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.venue.StartRoom(ctx, room.NewSessionInput{Tier: model.TierHour, Room: "Quarto 5"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				started++
			case errors.Is(err, room.ErrRoomOccupied):
				occupied++
			default:
				t.Errorf("start room: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, started)
	assert.Equal(t, callers-1, occupied)
	assert.Len(t, f.venue.ActiveRooms(), 1)
}

func TestStartRoom_ServerRejectsOccupiedRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ids.EXPECT().NewUUID().Return("s2")
	f.gw.EXPECT().CreateRoom(gomock.Any(), tenant, gomock.Any()).Return(model.RoomSession{}, model.ErrRoomOccupied)

	_, err := f.venue.StartRoom(ctx, room.NewSessionInput{Tier: model.TierHour, Room: "Quarto 4"})

	assert.True(t, errors.Is(err, model.ErrRoomOccupied))
	assert.Empty(t, f.venue.Rooms())
}

func TestDeleteRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gw.EXPECT().ListRooms(gomock.Any(), tenant).Return([]model.RoomSession{
		{ID: "s1", Room: "Quarto 1", Status: model.RoomStatusFinalized},
		{ID: "s2", Room: "Quarto 2", Status: model.RoomStatusCanceled},
	}, nil)
	require.NoError(t, f.venue.LoadRooms(ctx))

	err := f.venue.DeleteRoom(ctx, "s2")
	assert.True(t, errors.Is(err, model.ErrInvalidTransition))

	f.gw.EXPECT().DeleteRoom(gomock.Any(), tenant, "s1", "Quarto 1").Return(nil)
	require.NoError(t, f.venue.DeleteRoom(ctx, "s1"))
	assert.Len(t, f.venue.Rooms(), 1)
}

func loadDrink(t *testing.T, f *fixture, r model.DrinkRecord) {
	t.Helper()

	f.gw.EXPECT().ListDrinks(gomock.Any(), tenant, model.DrinkFilter{}).Return([]model.DrinkRecord{r}, nil)
	require.NoError(t, f.venue.LoadDrinks(context.Background(), model.DrinkFilter{}))
}

func weekRecord() model.DrinkRecord {
	return model.DrinkRecord{
		ID:           "d1",
		EmployeeName: "Luiza",
		Quantity:     24,
		Goal:         20,
		PeriodStart:  time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Version:      3,
	}
}

func TestDrink_IncrementReloadsAfterWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := weekRecord()
	loadDrink(t, f, r)

	server := r
	server.Quantity = 25
	server.Version = 4
	f.gw.EXPECT().AddDrinkUnit(gomock.Any(), tenant, "d1").Return(server, nil)
	f.gw.EXPECT().ListDrinks(gomock.Any(), tenant, model.DrinkFilter{}).Return([]model.DrinkRecord{server}, nil)

	got, err := f.venue.IncrementDrinkQuantity(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)
	assert.Equal(t, 25.0, drink.Summary(got).Commission)
	assert.Equal(t, 25, f.venue.DrinkTotals().Quantity)
}

func TestDrink_ReloadFailureIsStaleView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := weekRecord()
	loadDrink(t, f, r)

	f.gw.EXPECT().PatchDrink(gomock.Any(), tenant, "d1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, p model.DrinkPatch) (model.DrinkRecord, error) {
			require.NotNil(t, p.Items)
			require.NotNil(t, p.Version)
			assert.Equal(t, int64(3), *p.Version)
			assert.Nil(t, p.Quantity)
			out, err := drink.ApplyPatch(r, p)
			out.Version = 4
			return out, err
		})
	f.gw.EXPECT().ListDrinks(gomock.Any(), tenant, model.DrinkFilter{}).Return(nil, errOffline)

	got, err := f.venue.AddBonus(ctx, "d1")

	assert.True(t, errors.Is(err, ErrStaleView))
	assert.Equal(t, 1, drink.Summary(got).BonusCount)
	stored, _ := f.venue.Drink("d1")
	assert.Equal(t, 1, drink.Summary(stored).BonusCount)
}

func TestDrink_VersionConflictRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	loadDrink(t, f, weekRecord())

	f.gw.EXPECT().PatchDrink(gomock.Any(), tenant, "d1", gomock.Any()).Return(model.DrinkRecord{}, model.ErrVersionConflict)

	_, err := f.venue.SetDrinkGoal(ctx, "d1", 30)

	assert.True(t, errors.Is(err, model.ErrVersionConflict))
	stored, _ := f.venue.Drink("d1")
	assert.Equal(t, 20, stored.Goal)
}

func TestDrink_ValidationNeverReachesGateway(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.venue.CreateDrinkWeek(ctx, drink.NewWeekInput{EmployeeName: "Luiza"})
	assert.True(t, errors.Is(err, model.ErrValidation))

	loadDrink(t, f, weekRecord())
	_, err = f.venue.RemoveConsumptionItem(ctx, "d1", 3)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestDrink_DeleteFailureRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	loadDrink(t, f, weekRecord())

	f.gw.EXPECT().DeleteDrink(gomock.Any(), tenant, "d1").Return(errOffline)

	err := f.venue.DeleteDrink(ctx, "d1")

	assert.True(t, errors.Is(err, errOffline))
	_, ok := f.venue.Drink("d1")
	assert.True(t, ok)
}
