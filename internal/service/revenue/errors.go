package revenue

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotCompleted возвращается при попытке записать выручку по незавершенному бронированию
	ErrBookingNotCompleted = errors.New("booking is not completed")

	// ErrAlreadyRecorded возвращается, когда выручка по бронированию уже записана
	ErrAlreadyRecorded = errors.New("revenue for this booking is already recorded")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
