package e

import "fmt"

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrInvalidCatalog       = fmt.Errorf("invalid catalog seed")

	// Ошибки денежных значений
	ErrInvalidPrice   = fmt.Errorf("invalid price")
	ErrPricePrecision = fmt.Errorf("price must have at most 2 decimal places")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidQuantity  = fmt.Errorf("quantity must be at least 1")
	ErrInvalidProductID = fmt.Errorf("invalid product id")
	ErrMissingFields    = fmt.Errorf("missing required fields")

	// 404 Not Found
	ErrProductNotFound      = fmt.Errorf("product not found")
	ErrSessionNotFound      = fmt.Errorf("session not found")
	ErrConfirmationNotFound = fmt.Errorf("confirmation not found")

	// 409 Conflict
	ErrEmptyCart          = fmt.Errorf("cart is empty")
	ErrProductUnavailable = fmt.Errorf("product is out of stock")
	ErrCartChanged        = fmt.Errorf("cart changed since confirmation was requested")

	// 429 Too Many Requests
	ErrTooManyRequests = fmt.Errorf("too many requests")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
