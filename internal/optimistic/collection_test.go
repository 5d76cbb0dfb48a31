package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/venueops/internal/model"
)

var errOffline = errors.New("gateway offline")

func tabKey(t model.Tab) string { return t.ID }

func seeded() *Collection[model.Tab] {
	c := New(tabKey, model.Tab.Clone)
	c.Replace([]model.Tab{
		{ID: "t1", Label: "Comanda #1", Total: 10, Items: []model.LineItem{{ProductID: "beer", Description: "Beer", Quantity: 1, UnitPrice: 10}}},
		{ID: "t2", Label: "Comanda #2"},
		{ID: "t3", Label: "Comanda #3"},
	})
	return c
}

func setTotal(v float64) func(model.Tab) (model.Tab, error) {
	return func(t model.Tab) (model.Tab, error) {
		t.Total = v
		return t, nil
	}
}

func echo(_ context.Context, t model.Tab) (model.Tab, error) { return t, nil }

func fail(_ context.Context, _ model.Tab) (model.Tab, error) { return model.Tab{}, errOffline }

func TestMutate_Success(t *testing.T) {
	c := seeded()

	got, err := c.Mutate(context.Background(), "t1", setTotal(30), func(_ context.Context, next model.Tab) (model.Tab, error) {
		next.Version = 2
		return next, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	stored, _ := c.Get("t1")
	assert.Equal(t, 30.0, stored.Total)
	assert.Equal(t, int64(2), stored.Version)
}

func TestMutate_FailureRestoresExactSnapshot(t *testing.T) {
	c := seeded()
	before := c.List()

	_, err := c.Mutate(context.Background(), "t1", func(t model.Tab) (model.Tab, error) {
		t.Total = 0
		t.Items = nil
		t.Status = model.TabStatusClosed
		return t, nil
	}, fail)

	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.RolledBack)
	assert.Equal(t, "update", perr.Op)
	assert.True(t, errors.Is(err, errOffline))
	assert.Equal(t, before, c.List())
}

func TestMutate_TransitionErrorSkipsPersist(t *testing.T) {
	c := seeded()
	before := c.List()
	called := false

	_, err := c.Mutate(context.Background(), "t2", func(model.Tab) (model.Tab, error) {
		return model.Tab{}, model.ErrValidation
	}, func(ctx context.Context, next model.Tab) (model.Tab, error) {
		called = true
		return next, nil
	})

	assert.True(t, errors.Is(err, model.ErrValidation))
	assert.False(t, called)
	assert.Equal(t, before, c.List())
}

func TestMutate_NotFound(t *testing.T) {
	c := seeded()

	_, err := c.Mutate(context.Background(), "missing", setTotal(1), echo)

	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestMutate_PublishedBeforePersist(t *testing.T) {
	c := seeded()

	_, err := c.Mutate(context.Background(), "t2", setTotal(5), func(_ context.Context, next model.Tab) (model.Tab, error) {
		visible, ok := c.Get("t2")
		require.True(t, ok)
		assert.Equal(t, 5.0, visible.Total)
		return next, nil
	})

	require.NoError(t, err)
}

func TestMutate_LaterChangeIsNotOverwrittenByRollback(t *testing.T) {
	c := seeded()

	_, err := c.Mutate(context.Background(), "t2", setTotal(5), func(ctx context.Context, _ model.Tab) (model.Tab, error) {
		_, innerErr := c.Mutate(ctx, "t2", setTotal(7), echo)
		require.NoError(t, innerErr)
		return model.Tab{}, errOffline
	})

	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.False(t, perr.RolledBack)
	got, _ := c.Get("t2")
	assert.Equal(t, 7.0, got.Total)
}

func TestMutate_ReplaceDuringPersistWins(t *testing.T) {
	c := seeded()

	_, err := c.Mutate(context.Background(), "t1", setTotal(99), func(context.Context, model.Tab) (model.Tab, error) {
		c.Replace([]model.Tab{{ID: "t1", Total: 42}})
		return model.Tab{}, errOffline
	})

	require.Error(t, err)
	got, _ := c.Get("t1")
	assert.Equal(t, 42.0, got.Total)
}

func TestInsert(t *testing.T) {
	c := seeded()

	saved, err := c.Insert(context.Background(), model.Tab{ID: "t4", Label: "Comanda #4"}, func(_ context.Context, next model.Tab) (model.Tab, error) {
		next.Version = 1
		return next, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)
	assert.Equal(t, 4, c.Len())

	_, err = c.Insert(context.Background(), model.Tab{ID: "t5"}, fail)
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.RolledBack)
	assert.Equal(t, 4, c.Len())
	_, ok := c.Get("t5")
	assert.False(t, ok)

	_, err = c.Insert(context.Background(), model.Tab{ID: "t1"}, echo)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestDelete(t *testing.T) {
	c := seeded()
	before := c.List()

	err := c.Delete(context.Background(), "t2", func(context.Context, model.Tab) error { return errOffline })
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.RolledBack)
	assert.Equal(t, before, c.List())

	err = c.Delete(context.Background(), "t2", func(context.Context, model.Tab) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	err = c.Delete(context.Background(), "t2", func(context.Context, model.Tab) error { return nil })
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestList_ReturnsIndependentCopies(t *testing.T) {
	c := seeded()

	snapshot := c.List()
	snapshot[0].Items[0].Quantity = 100

	got, _ := c.Get("t1")
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestConcurrentReadersNeverSeePartialState(t *testing.T) {
	c := seeded()
	allowed := map[float64]bool{10: true, 20: true}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snapshot := c.List()
				if !assert.Len(t, snapshot, 3) {
					return
				}
				assert.True(t, allowed[snapshot[0].Total], "unexpected total %v", snapshot[0].Total)
			}
		}()
	}

	for range 200 {
		_, _ = c.Mutate(context.Background(), "t1", setTotal(20), fail)
	}
	close(stop)
	wg.Wait()

	got, _ := c.Get("t1")
	assert.Equal(t, 10.0, got.Total)
}

func TestMutate_RollbackRestoresConfirmationOfEarlierChange(t *testing.T) {
	c := New(tabKey, model.Tab.Clone)
	c.Replace([]model.Tab{{ID: "t1", Total: 10, Version: 1}})
	ctx := context.Background()

	firstSent, firstRelease := make(chan struct{}), make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		_, err := c.Mutate(ctx, "t1", setTotal(20), func(_ context.Context, next model.Tab) (model.Tab, error) {
			close(firstSent)
			<-firstRelease
			next.Version = 2
			return next, nil
		})
		firstDone <- err
	}()
	<-firstSent

	secondSent, secondRelease := make(chan struct{}), make(chan struct{})
	secondDone := make(chan error, 1)
	go func() {
		_, err := c.Mutate(ctx, "t1", setTotal(30), func(_ context.Context, next model.Tab) (model.Tab, error) {
			close(secondSent)
			<-secondRelease
			return model.Tab{}, model.ErrVersionConflict
		})
		secondDone <- err
	}()
	<-secondSent

	close(firstRelease)
	require.NoError(t, <-firstDone)
	visible, _ := c.Get("t1")
	assert.Equal(t, 30.0, visible.Total)

	close(secondRelease)
	err := <-secondDone

	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.RolledBack)
	got, _ := c.Get("t1")
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, 20.0, got.Total)

	_, err = c.Mutate(ctx, "t1", setTotal(40), fail)
	require.Error(t, err)
	got, _ = c.Get("t1")
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, 20.0, got.Total)
}

func TestInsertFunc(t *testing.T) {
	c := seeded()

	t.Run("build sees current items", func(t *testing.T) {
		got, err := c.InsertFunc(context.Background(), func(items []model.Tab) (model.Tab, error) {
			return model.Tab{ID: "t4", Total: float64(len(items))}, nil
		}, echo)

		require.NoError(t, err)
		assert.Equal(t, 3.0, got.Total)
		assert.Equal(t, 4, c.Len())
	})

	t.Run("build error skips persist", func(t *testing.T) {
		errBusy := errors.New("busy")
		_, err := c.InsertFunc(context.Background(), func([]model.Tab) (model.Tab, error) {
			return model.Tab{}, errBusy
		}, func(context.Context, model.Tab) (model.Tab, error) {
			t.Fatal("persist must not be called")
			return model.Tab{}, nil
		})

		assert.ErrorIs(t, err, errBusy)
		assert.Equal(t, 4, c.Len())
	})
}
