package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrServiceNotFound возвращается, когда хотя бы один из serviceIDs не разрешается
	ErrServiceNotFound = errors.New("check_availability: service not found")

	// ErrServiceInactive возвращается, когда среди услуг есть выключенная
	ErrServiceInactive = errors.New("check_availability: service is inactive")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
