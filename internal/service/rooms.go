package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/room"
)

// ListRooms возвращает сеансы арендатора.
func (s *Service) ListRooms(ctx context.Context, tenantID string) ([]model.RoomSession, error) {
	return s.repo.ListRooms(ctx, tenantID)
}

// CreateRoom сохраняет новый активный сеанс. Занятость комнаты проверяет уникальный индекс хранилища.
func (s *Service) CreateRoom(ctx context.Context, tenantID string, rs model.RoomSession) (model.RoomSession, error) {
	rs.TenantID = tenantID
	if rs.ID == "" {
		rs.ID = s.ids.NewUUID()
	}
	rs.GuestName = strings.TrimSpace(rs.GuestName)
	rs.Status = model.RoomStatusActive
	rs.BilledAmount = 0
	rs.ClosedAt = nil
	rs.Note = ""
	if rs.CreatedAt.IsZero() {
		rs.CreatedAt = s.clock.Now()
	}

	if err := s.validate.Struct(rs); err != nil {
		return model.RoomSession{}, err
	}
	return s.repo.CreateRoom(ctx, rs)
}

// FinalizeRoom завершает активный сеанс и фиксирует сумму по тарифу.
func (s *Service) FinalizeRoom(ctx context.Context, tenantID, id string) (model.RoomSession, error) {
	stored, err := s.repo.GetRoom(ctx, tenantID, id)
	if err != nil {
		return model.RoomSession{}, err
	}
	next, err := room.Finalize(stored, s.clock.Now())
	if err != nil {
		return model.RoomSession{}, err
	}
	return s.repo.UpdateRoom(ctx, next)
}

// CancelRoom отменяет завершённый сеанс.
func (s *Service) CancelRoom(ctx context.Context, tenantID, id string) (model.RoomSession, error) {
	stored, err := s.repo.GetRoom(ctx, tenantID, id)
	if err != nil {
		return model.RoomSession{}, err
	}
	next, err := room.Cancel(stored)
	if err != nil {
		return model.RoomSession{}, err
	}
	return s.repo.UpdateRoom(ctx, next)
}

// DeleteRoom удаляет активный или завершённый сеанс. Непустой label должен совпадать с комнатой сеанса.
func (s *Service) DeleteRoom(ctx context.Context, tenantID, id, label string) error {
	stored, err := s.repo.GetRoom(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if label != "" && stored.Room != label {
		return fmt.Errorf("room session %s in %s: %w", id, label, model.ErrNotFound)
	}
	if err := room.CheckDelete(stored); err != nil {
		return err
	}
	return s.repo.DeleteRoom(ctx, tenantID, id, label)
}
