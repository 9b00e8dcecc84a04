package update_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrCustomerNotFound возвращается, когда новый клиент бронирования не найден
	ErrCustomerNotFound = errors.New("update_booking: customer not found")

	// ErrServiceNotFound возвращается, когда хотя бы один из serviceIDs не разрешается
	ErrServiceNotFound = errors.New("update_booking: service not found")

	// ErrServiceInactive возвращается при попытке добавить выключенную услугу
	ErrServiceInactive = errors.New("update_booking: service is inactive")

	// ErrTherapistNotFound возвращается, когда новый мастер не найден в филиале
	ErrTherapistNotFound = errors.New("update_booking: therapist not found in branch")

	// ErrTherapistUnavailable возвращается при пересечении с бронированием мастера
	ErrTherapistUnavailable = errors.New("update_booking: therapist is unavailable")

	// ErrRoomUnavailable возвращается при пересечении с бронированием кабинета
	ErrRoomUnavailable = errors.New("update_booking: room is unavailable")

	// ErrBookingConflict возвращается при проигрыше гонки SERIALIZABLE транзакций
	ErrBookingConflict = errors.New("update_booking: booking conflict")

	// ErrCannotUpdate возвращается, когда бронирование в статусе, не допускающем изменение расписания
	ErrCannotUpdate = errors.New("update_booking: booking cannot be updated")

	// ErrAccessDenied возвращается, когда у actor нет прав на изменение бронирования
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
