package domain

// Address is a postal address embedded in a Customer.
type Address struct {
	Street  string `json:"street" yaml:"street" validate:"required"`
	City    string `json:"city" yaml:"city" validate:"required"`
	State   string `json:"state" yaml:"state" validate:"required"`
	ZipCode string `json:"zipCode" yaml:"zipCode" validate:"required,zipcode"`
	Country string `json:"country" yaml:"country" validate:"required"`
}

// Customer is a billable party.
type Customer struct {
	Meta
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone,omitempty"`
	BillingAddress  Address `json:"billingAddress"`
	ShippingAddress Address `json:"shippingAddress"`
}

// PersonalInfo is the first step of customer entry.
type PersonalInfo struct {
	Name  string `json:"name" yaml:"name" validate:"min=2"`
	Email string `json:"email" yaml:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// AddressInfo is the second step of customer entry.
type AddressInfo struct {
	BillingAddress  Address `json:"billingAddress" yaml:"billingAddress"`
	ShippingAddress Address `json:"shippingAddress" yaml:"shippingAddress"`
	// SameAsShipping copies the billing address into the shipping address.
	SameAsShipping bool `json:"sameAsShipping,omitempty" yaml:"sameAsShipping,omitempty"`
}

// CustomerInput is everything needed to create a Customer.
type CustomerInput struct {
	Name            string  `json:"name" validate:"min=2"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone,omitempty"`
	BillingAddress  Address `json:"billingAddress"`
	ShippingAddress Address `json:"shippingAddress"`
}

// NewCustomerInput merges the two entry steps. When SameAsShipping is set the
// billing address is copied by value into the shipping address.
func NewCustomerInput(p PersonalInfo, a AddressInfo) CustomerInput {
	shipping := a.ShippingAddress
	if a.SameAsShipping {
		shipping = a.BillingAddress
	}
	return CustomerInput{
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		BillingAddress:  a.BillingAddress,
		ShippingAddress: shipping,
	}
}

// Personal returns the first-step view of the input.
func (in CustomerInput) Personal() PersonalInfo {
	return PersonalInfo{Name: in.Name, Email: in.Email, Phone: in.Phone}
}

// Customer builds the record to persist. Meta is left for the store.
func (in CustomerInput) Customer() Customer {
	return Customer{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		BillingAddress:  in.BillingAddress,
		ShippingAddress: in.ShippingAddress,
	}
}

// CustomerPatch lists the customer fields an update may change.
// A nil field is left untouched. ID and CreatedAt are not patchable.
type CustomerPatch struct {
	Name            *string  `json:"name,omitempty"`
	Email           *string  `json:"email,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	BillingAddress  *Address `json:"billingAddress,omitempty"`
	ShippingAddress *Address `json:"shippingAddress,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p CustomerPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.BillingAddress == nil && p.ShippingAddress == nil
}

// Apply merges the patch onto c.
func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.BillingAddress != nil {
		c.BillingAddress = *p.BillingAddress
	}
	if p.ShippingAddress != nil {
		c.ShippingAddress = *p.ShippingAddress
	}
}

// Input returns the customer's fields in input form, for re-validation.
func (c Customer) Input() CustomerInput {
	return CustomerInput{
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		BillingAddress:  c.BillingAddress,
		ShippingAddress: c.ShippingAddress,
	}
}
