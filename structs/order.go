package structs

// BillingForm is the checkout contact block. Delivery details are agreed over
// email; there is no payment processing on the site.
type BillingForm struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
}

type OrderRequest struct {
	OrderID         string      `json:"orderId"`
	OrderDate       string      `json:"orderDate"`
	CartItems       []CartItem  `json:"cartItems" validate:"required,min=1"`
	BillingForm     BillingForm `json:"billingForm" validate:"required"`
	PaymentMethodID string      `json:"paymentMethodId"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}
