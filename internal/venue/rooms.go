package venue

import (
	"context"
	"fmt"
	"time"

	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/room"
)

// LoadRooms перезагружает сеансы арендатора.
func (v *Venue) LoadRooms(ctx context.Context) error {
	sessions, err := v.gw.ListRooms(ctx, v.session.TenantID)
	if err != nil {
		return err
	}
	v.rooms.Replace(sessions)
	return nil
}

// Rooms возвращает все сеансы.
func (v *Venue) Rooms() []model.RoomSession {
	return v.rooms.List()
}

// ActiveRooms возвращает активные сеансы.
func (v *Venue) ActiveRooms() []model.RoomSession {
	return room.Active(v.rooms.List())
}

// ClosedRooms возвращает завершённые и отменённые сеансы с учётом фильтра.
func (v *Venue) ClosedRooms(f room.ClosedFilter) []model.RoomSession {
	return room.FilterClosed(v.rooms.List(), f)
}

// Availability возвращает занятость комнат.
func (v *Venue) Availability() map[string]bool {
	return room.Availability(v.rooms.List(), v.roomCount)
}

// Overruns возвращает активные сеансы, превысившие свою ступень.
func (v *Venue) Overruns(now time.Time) []model.RoomSession {
	return room.Overruns(v.rooms.List(), now)
}

// StartRoom создаёт сеанс. Занятая видимым активным сеансом комната отклоняется до обращения к хранилищу;
// проверка и публикация выполняются атомарно относительно других вызовов.
func (v *Venue) StartRoom(ctx context.Context, in room.NewSessionInput) (model.RoomSession, error) {
	var id string
	build := func(current []model.RoomSession) (model.RoomSession, error) {
		s, err := room.New(in, current, v.roomCount, v.clock.Now())
		if err != nil {
			return model.RoomSession{}, err
		}
		s.ID = v.ids.NewUUID()
		s.TenantID = v.session.TenantID
		id = s.ID
		return s, nil
	}

	saved, err := v.rooms.InsertFunc(ctx, build, func(ctx context.Context, next model.RoomSession) (model.RoomSession, error) {
		return v.gw.CreateRoom(ctx, v.session.TenantID, next)
	})
	if err != nil {
		if id == "" {
			return model.RoomSession{}, err
		}
		return model.RoomSession{}, v.persistFailed("start room", id, err)
	}
	return saved, nil
}

// FinalizeRoom завершает активный сеанс и выставляет сумму по ступени.
func (v *Venue) FinalizeRoom(ctx context.Context, id string) (model.RoomSession, error) {
	saved, err := v.rooms.Mutate(ctx, id,
		func(s model.RoomSession) (model.RoomSession, error) {
			return room.Finalize(s, v.clock.Now())
		},
		func(ctx context.Context, next model.RoomSession) (model.RoomSession, error) {
			return v.gw.FinalizeRoom(ctx, v.session.TenantID, next.ID)
		},
	)
	if err != nil {
		return model.RoomSession{}, v.persistFailed("finalize room", id, err)
	}
	return saved, nil
}

// CancelRoom отменяет завершённый сеанс. При ошибке восстанавливаются прежние статус и сумма,
// после успеха коллекция перезагружается.
func (v *Venue) CancelRoom(ctx context.Context, id string) (model.RoomSession, error) {
	saved, err := v.rooms.Mutate(ctx, id, room.Cancel,
		func(ctx context.Context, next model.RoomSession) (model.RoomSession, error) {
			return v.gw.CancelRoom(ctx, v.session.TenantID, next.ID)
		},
	)
	if err != nil {
		return model.RoomSession{}, v.persistFailed("cancel room", id, err)
	}

	if err := v.LoadRooms(ctx); err != nil {
		return saved, v.stale("cancel room", err)
	}
	return saved, nil
}

// DeleteRoom удаляет сеанс вместе с подписью комнаты для однозначного поиска.
func (v *Venue) DeleteRoom(ctx context.Context, id string) error {
	s, ok := v.rooms.Get(id)
	if !ok {
		return fmt.Errorf("delete room %s: %w", id, model.ErrNotFound)
	}
	if err := room.CheckDelete(s); err != nil {
		return err
	}

	err := v.rooms.Delete(ctx, id, func(ctx context.Context, prev model.RoomSession) error {
		return v.gw.DeleteRoom(ctx, v.session.TenantID, prev.ID, prev.Room)
	})
	if err != nil {
		return v.persistFailed("delete room", id, err)
	}
	return nil
}
