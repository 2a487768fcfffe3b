// Package cart реализует корзину: упорядоченный список позиций с уникальным товаром в каждой.
//
// Корзина не ограничивает количество остатком на складе. Приведение к [1, Stock]
// выполняет вызывающий код до обращения к корзине.
package cart

import (
	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
)

// Cart хранит позиции в порядке первого добавления. Не потокобезопасна:
// владелец (сессия) сериализует доступ.
//
// Каждое изменение содержимого увеличивает ревизию. Отложенные действия
// сверяют её, чтобы не применяться к корзине, которую пользователь не видел.
type Cart struct {
	lines []domain.CartLine
	// born[i] — ревизия, на которой появилась lines[i]
	born     []uint64
	revision uint64
}

func New() *Cart {
	return &Cart{}
}

// AddItem добавляет товар. Если позиция уже есть, количество увеличивается на месте,
// иначе позиция добавляется в конец.
func (c *Cart) AddItem(product domain.Product, quantity int) error {
	const op = "Cart.AddItem"

	if quantity < 1 {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}

	c.revision++
	if i := c.indexOf(product.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		return nil
	}

	c.lines = append(c.lines, domain.NewCartLine(product, quantity))
	c.born = append(c.born, c.revision)
	return nil
}

// SetQuantity заменяет количество позиции, не меняя её место.
// Отсутствующая позиция — no-op.
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	const op = "Cart.SetQuantity"

	if quantity < 1 {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}

	if i := c.indexOf(productID); i >= 0 && c.lines[i].Quantity != quantity {
		c.lines[i].Quantity = quantity
		c.revision++
	}

	return nil
}

// RemoveItem удаляет позицию; отсутствующая позиция — no-op.
func (c *Cart) RemoveItem(productID int64) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.born = append(c.born[:i], c.born[i+1:]...)
	c.revision++
}

// Clear очищает корзину (после оформления заказа).
func (c *Cart) Clear() {
	if len(c.lines) > 0 {
		c.revision++
	}
	c.lines = nil
	c.born = nil
}

// Revision — счётчик изменений содержимого корзины.
func (c *Cart) Revision() uint64 {
	return c.revision
}

// LineRevision возвращает ревизию, на которой позиция была добавлена.
// Удалённая и добавленная заново позиция получает новое значение.
func (c *Cart) LineRevision(productID int64) (uint64, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return 0, false
	}

	return c.born[i], true
}

// Lines возвращает копию позиций в порядке корзины.
func (c *Cart) Lines() []domain.CartLine {
	return append([]domain.CartLine(nil), c.lines...)
}

// Line возвращает позицию по товару.
func (c *Cart) Line(productID int64) (domain.CartLine, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return domain.CartLine{}, false
	}

	return c.lines[i], true
}

// Len — количество различных позиций.
func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItemCount — сумма количеств по всем позициям.
func (c *Cart) TotalItemCount() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}

	return total
}

// TotalPrice — сумма price*quantity в сентаво.
func (c *Cart) TotalPrice() domain.Money {
	var total domain.Money
	for _, l := range c.lines {
		total += l.Subtotal()
	}

	return total
}

func (c *Cart) indexOf(productID int64) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}

	return -1
}
