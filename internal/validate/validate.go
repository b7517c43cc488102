package validate

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/rubico/internal/domain"
)

// zipCodePattern accepts six digits with an optional four-digit suffix.
var zipCodePattern = regexp.MustCompile(`^\d{6}(-\d{4})?$`)

// Tag names registered on top of the validator built-ins.
const (
	tagZipCode = "zipcode"
	tagDueDate = "duedate"
)

// Validator checks domain inputs. It is safe for concurrent use; build one
// per process and share it.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the rubico rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(tagZipCode, func(fl validator.FieldLevel) bool {
		return zipCodePattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(invoiceDates, domain.InvoiceInput{})
	return &Validator{v: v}
}

// PersonalInfo validates the first customer entry step. It does not check
// email uniqueness; see EmailAvailable.
func (val *Validator) PersonalInfo(p domain.PersonalInfo) error {
	return val.check(p)
}

// AddressInfo validates the second customer entry step. When SameAsShipping
// is set only the billing address is checked, since shipping will be a copy.
func (val *Validator) AddressInfo(a domain.AddressInfo) error {
	if !a.SameAsShipping {
		return val.check(a)
	}
	a.ShippingAddress = a.BillingAddress
	err := val.check(a)
	ve, ok := err.(*ValidationError)
	if !ok {
		return err
	}
	for path := range ve.Fields {
		if strings.HasPrefix(path, "shippingAddress.") {
			delete(ve.Fields, path)
		}
	}
	return ve.errOrNil()
}

// Customer validates a complete customer input.
func (val *Validator) Customer(in domain.CustomerInput) error {
	return val.check(in)
}

// Invoice validates an invoice input, including the due date rule.
func (val *Validator) Invoice(in domain.InvoiceInput) error {
	return val.check(in)
}

// Status validates an invoice status.
func (val *Validator) Status(s domain.InvoiceStatus) error {
	if s.Valid() {
		return nil
	}
	return NewFieldError("status", "Status must be one of draft, sent, paid, overdue")
}

// check runs the struct rules on v and converts failures to a
// ValidationError keyed by JSON field path.
func (val *Validator) check(v any) error {
	err := val.v.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: a programming error, not bad input.
		return err
	}

	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		ve.add(fieldPath(fe.Namespace()), message(fe))
	}
	return ve.errOrNil()
}

// invoiceDates enforces dueDate ≥ invoiceDate. It only compares dates that
// parse; unparsable ones are reported by their own field rules.
func invoiceDates(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.InvoiceInput)
	issued, err := time.Parse(domain.DateLayout, in.InvoiceDate)
	if err != nil {
		return
	}
	due, err := time.Parse(domain.DateLayout, in.DueDate)
	if err != nil {
		return
	}
	if due.Before(issued) {
		sl.ReportError(in.DueDate, "dueDate", "DueDate", tagDueDate, "")
	}
}

// jsonFieldName names fields by their json tag so error paths match the
// stored record shape.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// fieldPath drops the top-level struct name from a validator namespace:
// "InvoiceInput.items[0].price" becomes "items[0].price".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
