package model

type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusAccepted SwapStatus = "ACCEPTED" // Терминальный
	SwapStatusRejected SwapStatus = "REJECTED" // Терминальный
)

// SwapRequest предложение обмена двух слотов между двумя пользователями
type SwapRequest struct {
	ID          string     `json:"id"`
	RequesterID string     `json:"requesterId"`
	ResponderID string     `json:"responderId"`
	MySlotID    string     `json:"mySlotId"`
	TheirSlotID string     `json:"theirSlotId"`
	Status      SwapStatus `json:"status"`
	CreatedAt   int64      `json:"createdAt"`

	// Дополнительные поля для списков (не из таблицы swap_requests)
	RequesterName string `json:"requesterName,omitempty"`
	ResponderName string `json:"responderName,omitempty"`
}
