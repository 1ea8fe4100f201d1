package domain

import "time"

// Customer — клиент магазина. Создаётся при регистрации; order workflow
// только проверяет его существование и никогда не мутирует.
type Customer struct {
	ID    string
	Name  string
	Email string
	// Phone и Address необязательны.
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateDetails обновляет контактные данные клиента. Пустые name/email
// игнорируются, phone/address перезаписываются переданными значениями.
func (c *Customer) UpdateDetails(name, email, phone, address string) {
	if name != "" {
		c.Name = name
	}
	if email != "" {
		c.Email = email
	}
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now().UTC()
}

// ValidateInvariants проверяет обязательные поля клиента.
func (c *Customer) ValidateInvariants() []error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if c.Email == "" {
		errs = append(errs, ErrCustomerEmailRequired)
	}
	return errs
}
