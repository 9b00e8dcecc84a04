package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCustomerRequired возвращается, когда не указан ни существующий клиент,
	// ни данные нового клиента
	ErrCustomerRequired = errors.New("create_booking: customer is required")

	// ErrCustomerNotFound возвращается, когда указанный клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrServiceNotFound возвращается, когда хотя бы один из serviceIDs не разрешается
	// в существующую услугу — частичное разрешение набора считается жесткой ошибкой
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается при попытке забронировать выключенную услугу
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrTherapistNotFound возвращается, когда мастер не найден в филиале
	ErrTherapistNotFound = errors.New("create_booking: therapist not found in branch")

	// ErrTherapistUnavailable возвращается, когда у мастера есть пересекающееся
	// активное бронирование на запрошенный интервал
	ErrTherapistUnavailable = errors.New("create_booking: therapist is unavailable")

	// ErrRoomUnavailable возвращается, когда кабинет занят пересекающимся
	// активным бронированием на запрошенный интервал
	ErrRoomUnavailable = errors.New("create_booking: room is unavailable")

	// ErrBookingConflict возвращается, когда SERIALIZABLE транзакция проиграла
	// гонку конкурирующему созданию — вызывающий должен выбрать другое время
	ErrBookingConflict = errors.New("create_booking: booking conflict")

	// ErrAccessDenied возвращается, когда у actor нет прав на создание бронирования в филиале
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
