package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	addresses repo.AddressRepository
	stores    repo.StoreRepository
	auditLogs repo.AuditLogRepository
}

func (r *txReposGorm) Addresses() repo.AddressRepository { return r.addresses }
func (r *txReposGorm) Stores() repo.StoreRepository      { return r.stores }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository {
	return r.auditLogs
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			addresses: NewAddressGormRepository(tx),
			stores:    NewStoreGormRepository(tx),
			auditLogs: NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
