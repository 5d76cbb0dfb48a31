package model

import "errors"

var (
	// ErrValidation возвращается, если входные данные не прошли проверку.
	ErrValidation = errors.New("validation error")
	// ErrNotFound возвращается, если агрегат не найден (в том числе удалён другим клиентом).
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict возвращается, если версия агрегата устарела.
	ErrVersionConflict = errors.New("version conflict")
	// ErrInvalidTransition возвращается при недопустимом переходе состояния.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrRoomOccupied возвращается, если в комнате уже есть активный сеанс.
	ErrRoomOccupied = errors.New("room already occupied")
)
