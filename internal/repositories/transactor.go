package repositories

import (
	"context"

	"gorm.io/gorm"
)

// TxRepositories are repositories bound to one open transaction.
type TxRepositories struct {
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
	Users    UserRepository
}

// Transactor runs fn as a single unit of work: it commits when fn returns nil
// and rolls back every write otherwise.
type Transactor interface {
	Transaction(ctx context.Context, fn func(repos TxRepositories) error) error
}

// GORMTransactor opens GORM transactions.
type GORMTransactor struct {
	db *gorm.DB
}

// NewGORMTransactor creates a new instance of GORMTransactor.
func NewGORMTransactor(db *gorm.DB) *GORMTransactor {
	return &GORMTransactor{db: db}
}

func (t *GORMTransactor) Transaction(ctx context.Context, fn func(repos TxRepositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxRepositories{
			Products: NewGORMProductRepository(tx),
			Carts:    NewGORMCartRepository(tx),
			Orders:   NewGORMOrderRepository(tx),
			Users:    NewGORMUserRepository(tx),
		})
	})
}
