package userservice

// User модель пользователя из UserService
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IsOperator bool   `json:"is_operator"` // Оператор производственной линии
}

// ErrorResponse модель ошибки от UserService
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
