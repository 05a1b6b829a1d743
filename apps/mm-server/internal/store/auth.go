package store

import (
	"context"
	"fmt"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/model"
)

// authCache はAuthCacheインターフェースの実装。
type authCache struct {
	vc *ValkeyClient
}

// NewAuthCache は新しいAuthCacheを生成する。
func NewAuthCache(vc *ValkeyClient) AuthCache {
	return &authCache{vc: vc}
}

// Tokens は記憶済みのRAND/SRESを返す。RANDとSRESが揃っていない場合は未記憶として扱う。
func (a *authCache) Tokens(ctx context.Context, imsi string) (*model.AuthTokens, error) {
	key := KeyPrefixAuth + imsi
	result, err := a.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, wrapErr("HGETALL", key, err)
	}
	if len(result) == 0 {
		return nil, nil
	}

	var tokens model.AuthTokens
	if err := MapToStruct(result, &tokens); err != nil {
		return nil, fmt.Errorf("auth tokens %s: %w", imsi, err)
	}
	if !tokens.Complete() {
		return nil, nil
	}
	return &tokens, nil
}

// SaveTokens はRAND/SRESを記憶する。
func (a *authCache) SaveTokens(ctx context.Context, imsi string, tokens *model.AuthTokens) error {
	key := KeyPrefixAuth + imsi
	if err := a.vc.Client().HSet(ctx, key, StructToMap(tokens)).Err(); err != nil {
		return wrapErr("HSET", key, err)
	}
	return nil
}
