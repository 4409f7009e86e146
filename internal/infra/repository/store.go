package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/filmapi/internal/domain"
)

type txKey struct{}

// conn returns the transaction bound to ctx, or a plain session on db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

func runInTransaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

var tables = map[domain.Kind]string{
	domain.KindCharacter: "characters",
	domain.KindMovie:     "movies",
	domain.KindFranchise: "franchises",
}

// Store owns the connection and the transaction scope shared by the repositories.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RunInTransaction runs fn in a transaction carried by the context. A call made
// while a transaction is already open joins it.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return runInTransaction(ctx, s.db, fn)
}

// Exists takes a shared lock on the row when called inside a transaction.
func (s *Store) Exists(ctx context.Context, kind domain.Kind, id int64) (bool, error) {
	return s.exists(ctx, kind, id, "SHARE")
}

func (s *Store) LockForUpdate(ctx context.Context, kind domain.Kind, id int64) (bool, error) {
	return s.exists(ctx, kind, id, "UPDATE")
}

func (s *Store) exists(ctx context.Context, kind domain.Kind, id int64, strength string) (bool, error) {
	table, ok := tables[kind]
	if !ok {
		return false, errors.Errorf("unknown kind %q", kind)
	}

	query := conn(ctx, s.db).Table(table).Where("id = ?", id).Limit(1)
	if inTransaction(ctx) {
		query = query.Clauses(clause.Locking{Strength: strength})
	}

	var ids []int64
	err := query.Pluck("id", &ids).Error
	if err != nil {
		return false, errors.Wrap(err, "Store.Exists")
	}
	return len(ids) > 0, nil
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
