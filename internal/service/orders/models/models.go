package models

import (
	"errors"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid order status")
)

// Request модели

// GetUserOrdersRequest запрос на получение заказов пользователя
type GetUserOrdersRequest struct {
	UserID      int64   `json:"userId"`
	RequesterID int64   `json:"requesterId"`
	Status      *string `json:"status,omitempty"`
}

// GetDayOrdersRequest запрос на получение заказов рабочего дня
type GetDayOrdersRequest struct {
	Date   time.Time `json:"date"`
	UserID int64     `json:"userId"`
}

// ChangeStatusRequest запрос на смену статуса заказа
type ChangeStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// Response модели

// IngredientResponse снимок ингредиента в составе заказа
type IngredientResponse struct {
	IngredientID int64  `json:"ingredient_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
}

// OrderResponse заказ в ответе API
type OrderResponse struct {
	ID           int64                `json:"id"`
	UserID       int64                `json:"user_id"`
	TimeSlotID   int64                `json:"time_slot_id"`
	WorkingDayID int64                `json:"working_day_id"`
	DailyNumber  int                  `json:"daily_number"`
	Status       string               `json:"status"`
	Ingredients  []IngredientResponse `json:"ingredients"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// FromDomainOrder конвертирует domain заказ в response модель
func FromDomainOrder(o *domain.Order) *OrderResponse {
	ingredients := make([]IngredientResponse, 0, len(o.Ingredients))
	for _, ing := range o.Ingredients {
		ingredients = append(ingredients, IngredientResponse{
			IngredientID: ing.IngredientID,
			Name:         ing.Name,
			Category:     ing.Category,
		})
	}

	return &OrderResponse{
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

// FromDomainOrderList конвертирует список domain заказов
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  len(orders),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o))
	}
	return resp
}

// ToDomainOrderStatus конвертирует строку в domain статус
func ToDomainOrderStatus(s string) (domain.OrderStatus, error) {
	status := domain.OrderStatus(s)
	if !domain.IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
