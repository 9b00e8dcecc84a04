package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func validRequest() *Request {
	return &Request{
		Actor:      domain.Actor{UserID: 1, Role: domain.RoleManager, BranchID: 1},
		BranchID:   1,
		CustomerID: ptr.Ptr(int64(5)),
		ServiceIDs: []int64{10},
		StartTime:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "валидный запрос",
			mutate:  func(r *Request) {},
			wantErr: nil,
		},
		{
			name:    "пустой список услуг",
			mutate:  func(r *Request) { r.ServiceIDs = nil },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "дубликат услуги",
			mutate:  func(r *Request) { r.ServiceIDs = []int64{10, 10} },
			wantErr: ErrInvalidInput,
		},
		{
			name: "нет ни customerID ни нового клиента",
			mutate: func(r *Request) {
				r.CustomerID = nil
				r.NewCustomer = nil
			},
			wantErr: ErrCustomerRequired,
		},
		{
			name: "новый клиент без телефона",
			mutate: func(r *Request) {
				r.CustomerID = nil
				r.NewCustomer = &NewCustomer{Name: "Мария"}
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "роль therapist не создает бронирования",
			mutate:  func(r *Request) { r.Actor.Role = domain.RoleTherapist },
			wantErr: ErrAccessDenied,
		},
		{
			name:    "чужой филиал",
			mutate:  func(r *Request) { r.BranchID = 99 },
			wantErr: ErrAccessDenied,
		},
		{
			name:    "admin видит любой филиал",
			mutate:  func(r *Request) { r.Actor.Role = domain.RoleAdmin; r.BranchID = 99 },
			wantErr: nil,
		},
		{
			name:    "нулевое время начала",
			mutate:  func(r *Request) { r.StartTime = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "недопустимый начальный статус",
			mutate:  func(r *Request) { r.Status = ptr.Ptr(domain.StatusCompleted) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "начальный статус pending допустим",
			mutate:  func(r *Request) { r.Status = ptr.Ptr(domain.StatusPending) },
			wantErr: nil,
		},
		{
			name:    "отрицательный therapistID",
			mutate:  func(r *Request) { r.TherapistID = ptr.Ptr(int64(-1)) },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validateRequest(req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
