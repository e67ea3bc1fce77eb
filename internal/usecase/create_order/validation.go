package create_order

import (
	"fmt"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/internal/integrations/ingredientservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotID must be positive", ErrInvalidInput)
	}

	if len(req.IngredientIDs) == 0 {
		return fmt.Errorf("%w: ingredient selection is empty", ErrValidation)
	}

	if len(req.IngredientIDs) > domain.MaxIngredientsPerOrder {
		return fmt.Errorf("%w: too many ingredients, max %d", ErrValidation, domain.MaxIngredientsPerOrder)
	}

	return nil
}

// validateSelection проверяет бизнес-правила набора ингредиентов:
// ровно один ингредиент категории "bread", без дубликатов, все доступны
func validateSelection(ingredients []ingredientservice.Ingredient) error {
	breadCount := 0
	for _, ing := range ingredients {
		if ing.Category == domain.CategoryBread {
			breadCount++
		}
	}
	if breadCount != 1 {
		return fmt.Errorf("%w: order must contain exactly one bread, got %d", ErrValidation, breadCount)
	}

	seen := make(map[int64]struct{}, len(ingredients))
	for _, ing := range ingredients {
		if _, ok := seen[ing.ID]; ok {
			return fmt.Errorf("%w: duplicate ingredient id=%d", ErrValidation, ing.ID)
		}
		seen[ing.ID] = struct{}{}
	}

	for _, ing := range ingredients {
		if !ing.IsAvailable {
			return fmt.Errorf("%w: ingredient %q is not available", ErrValidation, ing.Name)
		}
	}

	return nil
}

// toSnapshots превращает ингредиенты каталога в неизменяемые снапшоты заказа
func toSnapshots(ingredients []ingredientservice.Ingredient) []domain.IngredientSnapshot {
	snapshots := make([]domain.IngredientSnapshot, len(ingredients))
	for i, ing := range ingredients {
		snapshots[i] = domain.IngredientSnapshot{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Category:     ing.Category,
		}
	}
	return snapshots
}
