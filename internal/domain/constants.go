package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultCapacityPerSlot     = 5
	DefaultDeadlineMinutes     = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 240
	MinCapacityPerSlot     = 1
	MaxCapacityPerSlot     = 100
	MinDeadlineMinutes     = 0
	MaxDeadlineMinutes     = 1440 // 1 day
	MaxIngredientsPerOrder = 20
	MaxLocationLength      = 200
)

// Ingredient categories with special admission rules
const (
	CategoryBread = "bread"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses список всех статусов заказов
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusReady,
	StatusPickedUp,
	StatusRejected,
}

// CapacityStatuses список статусов, занимающих место в слоте
// Используется при подсчете занятости слота
var CapacityStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusReady,
	StatusPickedUp,
}
