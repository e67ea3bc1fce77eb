package create_order

import (
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/pkg/types"
)

// Request модель запроса на создание заказа
type Request struct {
	UserID        int64   // ID пользователя
	TimeSlotID    int64   // ID слота выдачи
	IngredientIDs []int64 // Идентификаторы выбранных ингредиентов
}

// IngredientResponse снапшот ингредиента в ответе
type IngredientResponse struct {
	IngredientID int64
	Name         string
	Category     string
}

// Response модель ответа с созданным заказом
type Response struct {
	ID           int64
	UserID       int64
	TimeSlotID   int64
	WorkingDayID int64
	DailyNumber  int // Номер заказа в пределах рабочего дня
	Status       string

	// Данные слота для отображения
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	Ingredients []IngredientResponse

	CreatedAt time.Time
	UpdatedAt time.Time
}

func buildResponse(o *domain.Order, slot *domain.TimeSlot, day *domain.WorkingDay) *Response {
	ingredients := make([]IngredientResponse, len(o.Ingredients))
	for i, ing := range o.Ingredients {
		ingredients[i] = IngredientResponse{
			IngredientID: ing.IngredientID,
			Name:         ing.Name,
			Category:     ing.Category,
		}
	}

	return &Response{
		ID:           o.ID,
		UserID:       o.UserID,
		TimeSlotID:   o.TimeSlotID,
		WorkingDayID: o.WorkingDayID,
		DailyNumber:  o.DailyNumber,
		Status:       string(o.Status),
		Date:         day.Date,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Ingredients:  ingredients,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
