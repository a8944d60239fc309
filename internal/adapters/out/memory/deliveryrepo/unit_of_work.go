package deliveryrepo

import (
	"context"

	"parceltrack/internal/core/ports"
)

// InMemoryUnitOfWorkFactory creates unit of work instances backed by a shared
// in-memory store. It satisfies the same factory port as the GORM
// implementation so command handlers can run against memory in tests.
type InMemoryUnitOfWorkFactory struct {
	store *Store
}

// NewInMemoryUnitOfWorkFactory creates a factory bound to the given store.
func NewInMemoryUnitOfWorkFactory(store *Store) *InMemoryUnitOfWorkFactory {
	return &InMemoryUnitOfWorkFactory{store: store}
}

// Create produces a new in-memory UnitOfWork instance.
func (f *InMemoryUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &InMemoryUnitOfWork{store: f.store}
}

// InMemoryUnitOfWork implements the UnitOfWork port without transactional
// semantics: repository writes are applied immediately under the store mutex,
// and Rollback cannot undo them. The guarded-update checks still hold because
// check and write happen under one lock, which is what the single-winner and
// conflict tests rely on.
type InMemoryUnitOfWork struct {
	store *Store
}

// Begin is a no-op; in-memory writes are applied immediately.
func (uow *InMemoryUnitOfWork) Begin(_ context.Context) error {
	return nil
}

// Commit is a no-op; in-memory writes are applied immediately.
func (uow *InMemoryUnitOfWork) Commit(_ context.Context) error {
	return nil
}

// Rollback is a no-op. Writes already applied are not undone.
func (uow *InMemoryUnitOfWork) Rollback(_ context.Context) error {
	return nil
}

// DeliveryRepository returns a repository bound to the shared store.
func (uow *InMemoryUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return NewInMemoryDeliveryRepository(uow.store)
}
