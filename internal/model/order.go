package model

import "time"

// Order is a purchase order placed by an admin with one of their
// suppliers. UserID is always the creating admin and SupplierId the
// assigned fulfiller; both are set server-side and never change.
// Status is a free-form progress note mutated only by the assigned
// supplier (e.g. "shipped", "in transit", "delivered").
type Order struct {
	ID             uint64    // orders.id
	ProductName    string    // orders.product_name
	Quantity       int       // orders.quantity
	PricePerUnit   int       // orders.price_per_unit (minor currency units)
	Currency       string    // orders.currency
	PickupLocation string    // orders.pickup_location
	Destination    string    // orders.destination
	OrderDate      time.Time // orders.order_date
	DueDate        time.Time // orders.due_date
	Status         string    // orders.status (may be empty)
	SupplierID     uint64    // assigned supplier (orders.supplier_id)
	UserID         uint64    // creating admin (orders.user_id)
	CreatedAt      time.Time // orders.created_at
	UpdatedAt      time.Time // orders.updated_at
}
