package kernel

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrQuantityIsNotConstructed = errors.New("Quantity must be created via NewQuantity")

// Quantity is a strictly positive item count. No operation can bring it to zero or below;
// removing every item of a product means removing its order line.
type Quantity struct {
	value int
	guard guard.ConstructorGuard
}

func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", value))
	}
	return Quantity{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

func (q Quantity) Value() int {
	return q.value
}

func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(q.value + other.value)
}

// Subtract fails when the result would not be positive.
func (q Quantity) Subtract(other Quantity) (Quantity, error) {
	return NewQuantity(q.value - other.value)
}

func (q Quantity) IsEqual(other Quantity) bool {
	return q.value == other.value
}
