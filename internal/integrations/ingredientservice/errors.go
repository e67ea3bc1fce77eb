package ingredientservice

import "errors"

var (
	// ErrIngredientNotFound возвращается, когда ингредиент не найден в каталоге
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("ingredientservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("ingredientservice client: invalid response")
)
