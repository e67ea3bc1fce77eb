package update_order

import (
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
)

// Request модель запроса на изменение состава заказа
type Request struct {
	OrderID       int64   // ID заказа
	UserID        int64   // ID пользователя-владельца
	IngredientIDs []int64 // Новый набор ингредиентов
}

// IngredientResponse снапшот ингредиента в ответе
type IngredientResponse struct {
	IngredientID int64
	Name         string
	Category     string
}

// Response модель ответа с обновленным заказом
type Response struct {
	ID           int64
	UserID       int64
	TimeSlotID   int64
	WorkingDayID int64
	DailyNumber  int
	Status       string
	Ingredients  []IngredientResponse
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func buildResponse(o *domain.Order) *Response {
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
		Ingredients:  ingredients,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
