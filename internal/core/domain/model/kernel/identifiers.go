package kernel

import (
	"strings"

	"orders/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrOrderIDIsNotConstructed is returned when validating a zero-value OrderID.
	ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("OrderID must be created via NewOrderID or OrderIDFromString")

	// ErrCustomerIDIsNotConstructed is returned when validating a zero-value CustomerID.
	ErrCustomerIDIsNotConstructed = errs.NewValueIsRequiredError(
		"CustomerID must be created via NewCustomerID or CustomerIDFromString",
	)

	// ErrProductIDIsNotConstructed is returned when validating a zero-value ProductID.
	ErrProductIDIsNotConstructed = errs.NewValueIsRequiredError(
		"ProductID must be created via NewProductID or ProductIDFromString",
	)
)

// OrderID identifies an order. Identifiers are opaque non-blank strings: freshly generated ones
// are random UUIDs, but any non-blank value coming from outside is accepted as is.
//
// Identifiers compare with == and can be used as map keys.
//
// Example:
//
//	id := kernel.NewOrderID()
//	same, err := kernel.OrderIDFromString(id.String())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(id == same) // true
type OrderID struct {
	value string
}

// NewOrderID generates a random (version 4) UUID based identifier.
func NewOrderID() OrderID {
	return OrderID{value: uuid.NewString()}
}

// OrderIDFromString wraps an existing identifier. Blank strings are rejected.
func OrderIDFromString(s string) (OrderID, error) {
	v, err := parseIdentifier("orderId", s)
	if err != nil {
		return OrderID{}, err
	}
	return OrderID{value: v}, nil
}

func (id OrderID) String() string {
	return id.value
}

func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}

// CustomerID identifies the customer an order belongs to.
type CustomerID struct {
	value string
}

func NewCustomerID() CustomerID {
	return CustomerID{value: uuid.NewString()}
}

func CustomerIDFromString(s string) (CustomerID, error) {
	v, err := parseIdentifier("customerId", s)
	if err != nil {
		return CustomerID{}, err
	}
	return CustomerID{value: v}, nil
}

func (id CustomerID) String() string {
	return id.value
}

func (id CustomerID) IsEqual(other CustomerID) bool {
	return id.value == other.value
}

func (id CustomerID) Validate() error {
	if id.value == "" {
		return ErrCustomerIDIsNotConstructed
	}
	return nil
}

// ProductID identifies a product; an order keys its lines by it.
type ProductID struct {
	value string
}

func NewProductID() ProductID {
	return ProductID{value: uuid.NewString()}
}

func ProductIDFromString(s string) (ProductID, error) {
	v, err := parseIdentifier("productId", s)
	if err != nil {
		return ProductID{}, err
	}
	return ProductID{value: v}, nil
}

func (id ProductID) String() string {
	return id.value
}

func (id ProductID) IsEqual(other ProductID) bool {
	return id.value == other.value
}

func (id ProductID) Validate() error {
	if id.value == "" {
		return ErrProductIDIsNotConstructed
	}
	return nil
}

func parseIdentifier(paramName, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	return s, nil
}
