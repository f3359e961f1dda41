package domain

import "errors"

var (
	// ErrUnknownStage неизвестное имя стадии
	ErrUnknownStage = errors.New("unknown booking stage")

	// ErrBookingCanceled операция недопустима для отмененного бронирования
	ErrBookingCanceled = errors.New("booking is canceled")

	// ErrBookingCompleted операция недопустима для завершенного бронирования
	ErrBookingCompleted = errors.New("booking transaction is completed")

	// ErrStageOutOfOrder стадия не является следующей по порядку
	ErrStageOutOfOrder = errors.New("stage is not the next stage in sequence")
)
