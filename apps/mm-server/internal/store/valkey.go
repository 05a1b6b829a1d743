// Package store はValkeyへのデータアクセスを提供する。
package store

import (
	"context"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// ValkeyClient はValkeyクライアントをラップする。
type ValkeyClient struct {
	client *redis.Client
}

// NewValkeyClient は新しいValkeyClientを生成する。接続確認に失敗した場合はエラーを返す。
func NewValkeyClient(ctx context.Context, cfg *config.Config) (*ValkeyClient, error) {
	opts := valkey.DefaultOptions().
		WithAddr(cfg.ValkeyAddr()).
		WithPassword(cfg.RedisPass).
		WithTimeouts(config.ValkeyConnectTimeout, config.ValkeyCommandTimeout).
		WithPool(config.ValkeyPoolSize, 2)

	client, err := valkey.NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ValkeyClient{client: client}, nil
}

// NewValkeyClientFrom は生成済みのredis.ClientをラップしたValkeyClientを返す。
func NewValkeyClientFrom(client *redis.Client) *ValkeyClient {
	return &ValkeyClient{client: client}
}

// Ping は接続確認を行う。
func (v *ValkeyClient) Ping(ctx context.Context) error {
	if err := valkey.Ping(ctx, v.client); err != nil {
		return wrapErr("PING", "", err)
	}
	return nil
}

// Close は接続を閉じる。
func (v *ValkeyClient) Close() error {
	return v.client.Close()
}

// Client は内部のredis.Clientを返す。
func (v *ValkeyClient) Client() *redis.Client {
	return v.client
}
