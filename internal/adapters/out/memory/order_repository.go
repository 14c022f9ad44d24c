package memory

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository. With a change set it reads its own writes
// and buffers new ones; without one it writes through to the Store.
type OrderRepository struct {
	store *Store
	tx    *changeSet
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Save(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snapshot, err := clone(aggregate)
	if err != nil {
		return err
	}

	id := snapshot.ID().String()
	if r.tx != nil {
		delete(r.tx.deleted, id)
		r.tx.saved[id] = snapshot
		return nil
	}

	r.store.mu.Lock()
	r.store.orders[id] = snapshot
	r.store.mu.Unlock()
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	o, ok := r.store.view(r.tx)[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return clone(o)
}

func (r *OrderRepository) FindByCustomerID(_ context.Context, customerID kernel.CustomerID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	return r.collect(func(o *order.Order) bool { return o.CustomerID().IsEqual(customerID) })
}

func (r *OrderRepository) FindAll(_ context.Context) ([]*order.Order, error) {
	return r.collect(func(*order.Order) bool { return true })
}

func (r *OrderRepository) DeleteByID(_ context.Context, id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if r.tx != nil {
		delete(r.tx.saved, id.String())
		r.tx.deleted[id.String()] = struct{}{}
		return nil
	}

	r.store.mu.Lock()
	delete(r.store.orders, id.String())
	r.store.mu.Unlock()
	return nil
}

func (r *OrderRepository) ExistsByID(_ context.Context, id kernel.OrderID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	_, ok := r.store.view(r.tx)[id.String()]
	return ok, nil
}

func (r *OrderRepository) collect(keep func(*order.Order) bool) ([]*order.Order, error) {
	result := make([]*order.Order, 0)
	for _, o := range r.store.view(r.tx) {
		if !keep(o) {
			continue
		}
		c, err := clone(o)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	sortOldestFirst(result)
	return result, nil
}
