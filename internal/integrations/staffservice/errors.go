package staffservice

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден в филиале
	ErrEmployeeNotFound = errors.New("staffservice client: employee not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что StaffService недоступен и проверку принадлежности мастера
	// филиалу выполнить не удалось
	ErrServiceDegraded = errors.New("staffservice unavailable: graceful degradation applied")
)
