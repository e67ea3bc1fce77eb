package update_order

import (
	"time"

	updateOrder "github.com/v1adych/SWB-OrderService/internal/usecase/update_order"
)

// UpdateOrderRequest HTTP request model
type UpdateOrderRequest struct {
	IngredientIDs []int64 `json:"ingredientIds"`
}

// IngredientResponse снапшот ингредиента в HTTP ответе
type IngredientResponse struct {
	IngredientID int64  `json:"ingredientId"`
	Name         string `json:"name"`
	Category     string `json:"category"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID           int64                `json:"id"`
	UserID       int64                `json:"userId"`
	TimeSlotID   int64                `json:"timeSlotId"`
	WorkingDayID int64                `json:"workingDayId"`
	DailyNumber  int                  `json:"dailyNumber"`
	Status       string               `json:"status"`
	Ingredients  []IngredientResponse `json:"ingredients"`
	CreatedAt    string               `json:"createdAt"`
	UpdatedAt    string               `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateOrderRequest) ToUseCaseRequest(orderID, userID int64) *updateOrder.Request {
	return &updateOrder.Request{
		OrderID:       orderID,
		UserID:        userID,
		IngredientIDs: r.IngredientIDs,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateOrder.Response) *OrderResponse {
	ingredients := make([]IngredientResponse, 0, len(resp.Ingredients))
	for _, ing := range resp.Ingredients {
		ingredients = append(ingredients, IngredientResponse{
			IngredientID: ing.IngredientID,
			Name:         ing.Name,
			Category:     ing.Category,
		})
	}

	return &OrderResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		TimeSlotID:   resp.TimeSlotID,
		WorkingDayID: resp.WorkingDayID,
		DailyNumber:  resp.DailyNumber,
		Status:       resp.Status,
		Ingredients:  ingredients,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
