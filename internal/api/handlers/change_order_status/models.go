package change_order_status

import "github.com/v1adych/SWB-OrderService/internal/service/orders/models"

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ChangeStatusRequest) ToServiceRequest(userID int64) *models.ChangeStatusRequest {
	return &models.ChangeStatusRequest{
		UserID: userID,
		Status: r.Status,
	}
}
