package create_order

import (
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	createOrder "github.com/v1adych/SWB-OrderService/internal/usecase/create_order"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	TimeSlotID    int64   `json:"timeSlotId"`
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
	Date         string               `json:"date"`
	StartTime    string               `json:"startTime"`
	EndTime      string               `json:"endTime"`
	Ingredients  []IngredientResponse `json:"ingredients"`
	CreatedAt    string               `json:"createdAt"`
	UpdatedAt    string               `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(userID int64) *createOrder.Request {
	return &createOrder.Request{
		UserID:        userID,
		TimeSlotID:    r.TimeSlotID,
		IngredientIDs: r.IngredientIDs,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *OrderResponse {
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
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Ingredients:  ingredients,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
