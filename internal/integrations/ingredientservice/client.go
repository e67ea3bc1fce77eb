package ingredientservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client клиент для работы с IngredientService (каталог ингредиентов)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента IngredientService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetIngredients получает ингредиенты каталога по списку идентификаторов
// Возвращает ErrIngredientNotFound, если хотя бы один из запрошенных
// идентификаторов не найден в каталоге
func (c *Client) GetIngredients(ctx context.Context, ids []int64) ([]Ingredient, error) {
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = strconv.FormatInt(id, 10)
	}

	url := fmt.Sprintf("%s/internal/ingredients?ids=%s", c.baseURL, strings.Join(idStrings, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid ingredient IDs format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrIngredientNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var ingredients []Ingredient
	if err := json.NewDecoder(resp.Body).Decode(&ingredients); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// Сервис мог вернуть не все запрошенные ингредиенты
	if len(ingredients) != len(ids) {
		c.log.Warn("GetIngredients: requested %d ingredients, got %d", len(ids), len(ingredients))
		return nil, ErrIngredientNotFound
	}

	return ingredients, nil
}
