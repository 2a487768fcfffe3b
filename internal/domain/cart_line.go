package domain

// CartLine — позиция корзины: товар и его количество.
type CartLine struct {
	Product  Product
	Quantity int
}

func NewCartLine(product Product, quantity int) CartLine {
	return CartLine{
		Product:  product,
		Quantity: quantity,
	}
}

// Subtotal возвращает стоимость позиции.
func (l CartLine) Subtotal() Money {
	return l.Product.Price.Mul(l.Quantity)
}
