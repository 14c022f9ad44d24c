package services

import (
	"errors"
	"slices"
	"strings"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const (
	DefaultPage     = 0
	DefaultPageSize = 20
)

var ErrOrderQueryIsNotConstructed = errors.New("OrderQuery must be created via NewOrderQuery")

// OrderFilter is the raw search input as it arrives from a front end.
// Blank fields mean "no filter"; a zero Size means DefaultPageSize.
type OrderFilter struct {
	CustomerID string
	Status     string
	From       *time.Time
	To         *time.Time
	Page       int
	Size       int
}

// OrderQuery is a validated OrderFilter.
//
// Filtering is permissive: a blank customer or an unrecognised status disables that criterion
// instead of failing. Dates bound createdAt inclusively.
type OrderQuery struct {
	customerID string
	status     order.Status
	from       *time.Time
	to         *time.Time
	page       int
	size       int

	guard guard.ConstructorGuard
}

// NewOrderQuery fails only on paging: Page and Size must not be negative. A zero Size selects
// DefaultPageSize.
func NewOrderQuery(filter OrderFilter) (OrderQuery, error) {
	if filter.Page < 0 {
		return OrderQuery{}, errs.NewValueIsOutOfRangeError("page", filter.Page, 0, "unbounded")
	}
	if filter.Size < 0 {
		return OrderQuery{}, errs.NewValueIsOutOfRangeError("size", filter.Size, 1, "unbounded")
	}

	size := filter.Size
	if size == 0 {
		size = DefaultPageSize
	}

	// an unknown status disables the criterion
	status, err := order.ParseStatus(filter.Status)
	if err != nil {
		status = order.Unknown
	}

	return OrderQuery{
		customerID: strings.TrimSpace(filter.CustomerID),
		status:     status,
		from:       filter.From,
		to:         filter.To,
		page:       filter.Page,
		size:       size,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q OrderQuery) Validate() error {
	return q.guard.Validate(ErrOrderQueryIsNotConstructed)
}

func (q OrderQuery) Page() int {
	return q.page
}

func (q OrderQuery) Size() int {
	return q.size
}

// Matches reports whether o passes every active criterion.
func (q OrderQuery) Matches(o *order.Order) bool {
	if q.customerID != "" && o.CustomerID().String() != q.customerID {
		return false
	}
	if q.status != order.Unknown && o.Status() != q.status {
		return false
	}
	if q.from != nil && o.CreatedAt().Before(*q.from) {
		return false
	}
	if q.to != nil && o.CreatedAt().After(*q.to) {
		return false
	}
	return true
}

// Apply filters orders and returns the requested page, keeping the input order.
// Pages past the end are empty. A zero OrderQuery returns the first DefaultPageSize orders.
func (q OrderQuery) Apply(orders []*order.Order) []*order.Order {
	matched := slices.DeleteFunc(slices.Clone(orders), func(o *order.Order) bool {
		return !q.Matches(o)
	})

	size := q.size
	if size <= 0 {
		size = DefaultPageSize
	}
	if q.page > len(matched)/size {
		return []*order.Order{}
	}
	offset := q.page * size
	end := min(offset+size, len(matched))
	return matched[offset:end]
}
