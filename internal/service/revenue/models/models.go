package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// RecordRevenueRequest запрос на запись выручки по завершенному бронированию
type RecordRevenueRequest struct {
	Actor     domain.Actor `json:"-"`
	BookingID int64        `json:"bookingId"`
	Amount    float64      `json:"amount"`
	Notes     *string      `json:"notes,omitempty"`
}

// GetBranchRevenueRequest запрос журнала выручки филиала за период
type GetBranchRevenueRequest struct {
	Actor    domain.Actor `json:"-"`
	BranchID int64        `json:"branchId"`
	From     *time.Time   `json:"from,omitempty"`
	To       *time.Time   `json:"to,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchRevenueRequest) ToDomainFilter() domain.RevenuePeriodFilter {
	return domain.RevenuePeriodFilter{
		BranchID: r.BranchID,
		From:     r.From,
		To:       r.To,
	}
}

// Response модели

// RevenueEntryResponse ответ с записью журнала выручки
type RevenueEntryResponse struct {
	ID         int64     `json:"id"`
	BranchID   int64     `json:"branchId"`
	BookingID  int64     `json:"bookingId"`
	Amount     float64   `json:"amount"`
	RecordedBy int64     `json:"recordedBy"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RevenueListResponse журнал выручки филиала с итоговой суммой
type RevenueListResponse struct {
	Entries []RevenueEntryResponse `json:"entries"`
	Total   float64                `json:"total"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.RevenueEntry) *RevenueEntryResponse {
	if e == nil {
		return nil
	}
	return &RevenueEntryResponse{
		ID:         e.ID,
		BranchID:   e.BranchID,
		BookingID:  e.BookingID,
		Amount:     e.Amount,
		RecordedBy: e.RecordedBy,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}

// FromDomainEntryList конвертирует список записей в DTO
func FromDomainEntryList(entries []*domain.RevenueEntry, total float64) *RevenueListResponse {
	resp := &RevenueListResponse{
		Entries: make([]RevenueEntryResponse, 0, len(entries)),
		Total:   total,
	}
	for _, entry := range entries {
		if entryResp := FromDomainEntry(entry); entryResp != nil {
			resp.Entries = append(resp.Entries, *entryResp)
		}
	}
	return resp
}
