package domain

// Product описывает товар каталога. Неизменяем в течение жизни процесса.
type Product struct {
	ID                   int64
	Name                 string
	Category             string
	Price                Money // Цена хранится в сентаво
	Image                string
	Description          string
	PrescriptionRequired bool
	Stock                int
	Manufacturer         string
}

// InStock сообщает, есть ли товар на складе.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ClampQuantity приводит количество к диапазону [1, Stock].
// Для товара без остатка возвращает 1: решение о доступности принимает вызывающий код.
func (p Product) ClampQuantity(qty int) int {
	if qty > p.Stock {
		qty = p.Stock
	}

	return max(1, qty)
}
