package get_available_slots

import "time"

// Request запрос списка слотов на дату
type Request struct {
	Date time.Time
}

// SlotInfo информация о слоте с остатком вместимости
type SlotInfo struct {
	TimeSlotID     int64  `json:"time_slot_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	AvailableSpots int    `json:"available_spots"`
	TotalSpots     int    `json:"total_spots"`
}

// Response список слотов рабочего дня
type Response struct {
	Date     time.Time  `json:"date"`
	Location string     `json:"location"`
	Slots    []SlotInfo `json:"slots"`
}
