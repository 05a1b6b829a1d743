package store

import (
	"context"
	"fmt"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/model"
	"github.com/redis/go-redis/v9"
)

// transactionStore はTransactionStoreインターフェースの実装。
type transactionStore struct {
	vc *ValkeyClient
}

// NewTransactionStore は新しいTransactionStoreを生成する。
func NewTransactionStore(vc *ValkeyClient) TransactionStore {
	return &transactionStore{vc: vc}
}

// Save はトランザクションを保存し、TTLを設定する。
func (s *transactionStore) Save(ctx context.Context, tx *model.Transaction) error {
	key := KeyPrefixTransaction + tx.ID
	_, err := s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, StructToMap(tx))
		pipe.Expire(ctx, key, config.TransactionTTL)
		return nil
	})
	if err != nil {
		return wrapErr("MULTI", key, err)
	}
	return nil
}

// Get はトランザクションを取得する。
func (s *transactionStore) Get(ctx context.Context, id string) (*model.Transaction, error) {
	key := KeyPrefixTransaction + id
	result, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, wrapErr("HGETALL", key, err)
	}
	if len(result) == 0 {
		return nil, apperr.ErrTransactionNotFound
	}

	tx := &model.Transaction{ID: id}
	if err := MapToStruct(result, tx); err != nil {
		return nil, fmt.Errorf("transaction %s: %w", id, err)
	}
	return tx, nil
}
