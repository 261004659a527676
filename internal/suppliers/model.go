package suppliers

import "time"

// Supplier es un proveedor. El ID lo elige el usuario (ej: "SUP-001").
type Supplier struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Contact   string    `db:"contact" json:"contact"`
	Email     string    `db:"email" json:"email"`
	City      string    `db:"city" json:"city"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateSupplierInput es el payload para dar de alta un proveedor.
type CreateSupplierInput struct {
	ID      string `json:"id" validate:"required,notblank,max=50"`
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Contact string `json:"contact" validate:"required,max=50"`
	Email   string `json:"email" validate:"required,email,max=254"`
	City    string `json:"city" validate:"required,max=100"`
	Address string `json:"address" validate:"required,notblank"`
}

// UpdateSupplierInput es un update parcial: solo se tocan los campos no nil.
// El ID no se puede cambiar.
type UpdateSupplierInput struct {
	Name    *string `json:"name" validate:"omitempty,notblank,max=100"`
	Contact *string `json:"contact" validate:"omitempty,notblank,max=50"`
	Email   *string `json:"email" validate:"omitempty,email,max=254"`
	City    *string `json:"city" validate:"omitempty,notblank,max=100"`
	Address *string `json:"address" validate:"omitempty,notblank"`
}

func (input UpdateSupplierInput) empty() bool {
	return input.Name == nil && input.Contact == nil && input.Email == nil && input.City == nil && input.Address == nil
}
