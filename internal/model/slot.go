package model

type SlotStatus string

const (
	SlotStatusBusy        SlotStatus = "BUSY"
	SlotStatusSwappable   SlotStatus = "SWAPPABLE"
	SlotStatusSwapPending SlotStatus = "SWAP_PENDING"
)

// IsValid проверяет что статус один из известных
func (s SlotStatus) IsValid() bool {
	return s == SlotStatusBusy || s == SlotStatusSwappable || s == SlotStatusSwapPending
}

// Slot временной интервал пользователя. Время в epoch-миллисекундах.
type Slot struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Title     string     `json:"title"`
	StartTime int64      `json:"startTime"`
	EndTime   int64      `json:"endTime"`
	Status    SlotStatus `json:"status"`

	// Заполняется только в выдаче маркетплейса (join с users)
	OwnerName string `json:"ownerName,omitempty"`
}
