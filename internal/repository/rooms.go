package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/venueops/internal/model"
)

const roomColumns = `id, tenant_id, guest_name, room, duration_tier, payment_method, status, billed_amount, note, created_at, closed_at, version`

func scanRoom(row pgx.Row) (model.RoomSession, error) {
	var (
		s       model.RoomSession
		tier    string
		payment string
		status  string
	)
	err := row.Scan(&s.ID, &s.TenantID, &s.GuestName, &s.Room, &tier, &payment, &status,
		&s.BilledAmount, &s.Note, &s.CreatedAt, &s.ClosedAt, &s.Version)
	if err != nil {
		return model.RoomSession{}, err
	}
	s.Tier = model.DurationTier(tier)
	s.PaymentMethod = model.PaymentMethod(payment)
	s.Status = model.RoomStatus(status)
	return s, nil
}

// ListRooms возвращает сеансы арендатора в порядке создания.
func (r *PostgresRepository) ListRooms(ctx context.Context, tenantID string) ([]model.RoomSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+roomColumns+` FROM room_sessions WHERE tenant_id = $1 ORDER BY created_at, id`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("select rooms: %w", err)
	}
	return collect(rows, scanRoom)
}

// ActiveRooms возвращает активные сеансы всех арендаторов.
func (r *PostgresRepository) ActiveRooms(ctx context.Context) ([]model.RoomSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+roomColumns+` FROM room_sessions WHERE status = $1 ORDER BY created_at`,
		string(model.RoomStatusActive),
	)
	if err != nil {
		return nil, fmt.Errorf("select active rooms: %w", err)
	}
	return collect(rows, scanRoom)
}

// GetRoom возвращает сеанс арендатора.
func (r *PostgresRepository) GetRoom(ctx context.Context, tenantID, id string) (model.RoomSession, error) {
	s, err := scanRoom(r.pool.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM room_sessions WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err != nil {
		return model.RoomSession{}, notFound(err, "room session", id)
	}
	return s, nil
}

// CreateRoom сохраняет новый сеанс. Второй активный сеанс в той же комнате
// отклоняется уникальным индексом с ошибкой model.ErrRoomOccupied.
func (r *PostgresRepository) CreateRoom(ctx context.Context, s model.RoomSession) (model.RoomSession, error) {
	var created model.RoomSession
	err := r.withRetry(ctx, func() error {
		var scanErr error
		created, scanErr = scanRoom(r.pool.QueryRow(ctx,
			`INSERT INTO room_sessions (id, tenant_id, guest_name, room, duration_tier, payment_method, status, billed_amount, note, created_at, closed_at, version)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
			 RETURNING `+roomColumns,
			s.ID, s.TenantID, s.GuestName, s.Room, string(s.Tier), string(s.PaymentMethod), string(s.Status),
			s.BilledAmount, s.Note, s.CreatedAt, s.ClosedAt,
		))
		return scanErr
	})
	if err != nil {
		return model.RoomSession{}, mapWriteError(err, "room session")
	}
	return created, nil
}

// UpdateRoom сохраняет переход состояния сеанса, если версия совпадает с сохранённой.
func (r *PostgresRepository) UpdateRoom(ctx context.Context, s model.RoomSession) (model.RoomSession, error) {
	var saved model.RoomSession
	err := r.withRetry(ctx, func() error {
		var scanErr error
		saved, scanErr = scanRoom(r.pool.QueryRow(ctx,
			`UPDATE room_sessions
			 SET status = $3, billed_amount = $4, note = $5, closed_at = $6, payment_method = $7, version = version + 1
			 WHERE id = $1 AND tenant_id = $2 AND version = $8
			 RETURNING `+roomColumns,
			s.ID, s.TenantID, string(s.Status), s.BilledAmount, s.Note, s.ClosedAt, string(s.PaymentMethod), s.Version,
		))
		return scanErr
	})
	if err != nil {
		if isNoRows(err) {
			return model.RoomSession{}, r.missingOrConflict(ctx, "room_sessions", s.TenantID, s.ID)
		}
		return model.RoomSession{}, mapWriteError(err, "room session")
	}
	return saved, nil
}

// DeleteRoom удаляет сеанс; непустой room дополнительно сужает поиск.
func (r *PostgresRepository) DeleteRoom(ctx context.Context, tenantID, id, room string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM room_sessions WHERE id = $1 AND tenant_id = $2 AND ($3 = '' OR room = $3)`,
		id, tenantID, room,
	)
	if err != nil {
		return fmt.Errorf("delete room session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("room session %s: %w", id, model.ErrNotFound)
	}
	return nil
}
