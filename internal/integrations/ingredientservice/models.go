package ingredientservice

// Ingredient модель ингредиента из каталога IngredientService
type Ingredient struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"` // bread, meat, cheese, vegetable, sauce, ...
	IsAvailable bool   `json:"is_available"`
}

// ErrorResponse модель ошибки от IngredientService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
