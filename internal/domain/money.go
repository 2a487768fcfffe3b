package domain

import (
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/shopspring/decimal"
)

const minorUnitExp = -2

var hundred = decimal.NewFromInt(100)

// Money — денежная сумма в минимальных единицах валюты (сентаво).
// Вся арифметика целочисленная, в decimal переводится только на границе представления.
type Money int64

// MoneyFromDecimal переводит десятичную сумму вроде "12.50" в сентаво.
// Отрицательные значения и более двух знаков после запятой отклоняются.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return 0, e.ErrInvalidPrice
	}

	if !d.Mul(hundred).IsInteger() {
		return 0, e.ErrPricePrecision
	}

	return Money(d.Mul(hundred).IntPart()), nil
}

// ParseMoney разбирает строку с ценой.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.Wrap(s, e.ErrInvalidPrice)
	}

	return MoneyFromDecimal(d)
}

// Cents возвращает сумму в минимальных единицах.
func (m Money) Cents() int64 {
	return int64(m)
}

// Mul умножает цену на количество.
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// Decimal возвращает сумму в основных единицах.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), minorUnitExp)
}

// String форматирует сумму с двумя знаками: "33.90".
func (m Money) String() string {
	return m.Decimal().StringFixed(-minorUnitExp)
}
