package models

import "errors"

// Таксономия ошибок ядра. Хэндлеры транслируют их в HTTP-статусы через errors.Is.
var (
	// ErrValidation - некорректный ввод, исправляется вызывающей стороной,
	// возвращается до каких-либо побочных эффектов
	ErrValidation = errors.New("validation error")

	// ErrNotFound - инцидент или район не существует
	ErrNotFound = errors.New("not found")

	// ErrDuplicateVote - повторный голос того же пользователя с тем же выбором
	ErrDuplicateVote = errors.New("duplicate vote")

	// ErrConflict - гонка конкурентной записи, не ушедшая после внутренних ретраев
	ErrConflict = errors.New("concurrent write conflict")

	// ErrStoreUnavailable - отказ хранилища, эквивалент 5xx
	ErrStoreUnavailable = errors.New("store unavailable")
)
