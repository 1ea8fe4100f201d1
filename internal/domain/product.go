package domain

import "time"

// Product — товар каталога. Цена хранится в минимальных денежных единицах
// (копейки/центы), остаток — целым числом единиц.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceMinor  int64
	// StockQuantity никогда не опускается ниже нуля: UpdateStock отвергает
	// отрицательные значения, а workflow обязан заранее проверить остаток.
	StockQuantity int32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UpdateStock присваивает новый остаток. Дельту вычисляет вызывающая сторона.
func (p *Product) UpdateStock(quantity int32) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	p.StockQuantity = quantity
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdatePrice меняет цену товара. Снятые ранее снапшоты цен в заказах
// не пересчитываются.
func (p *Product) UpdatePrice(priceMinor int64) error {
	if priceMinor < 0 {
		return ErrProductPriceNegative
	}
	p.PriceMinor = priceMinor
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IsAvailable сообщает, остались ли единицы товара на складе.
func (p *Product) IsAvailable() bool {
	return p.StockQuantity > 0
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p *Product) ValidateInvariants() []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrProductPriceNegative)
	}
	if p.StockQuantity < 0 {
		errs = append(errs, ErrNegativeStock)
	}
	return errs
}
