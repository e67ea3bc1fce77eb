package get_available_slots

import (
	"github.com/v1adych/SWB-OrderService/internal/domain"
	getAvailableSlots "github.com/v1adych/SWB-OrderService/internal/usecase/get_available_slots"
)

// SlotResponse слот с остатком вместимости в HTTP ответе
type SlotResponse struct {
	TimeSlotID     int64  `json:"timeSlotId"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string         `json:"date"`
	Location string         `json:"location"`
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			TimeSlotID:     slot.TimeSlotID,
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
		})
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Location: resp.Location,
		Slots:    slots,
	}
}
