package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10
)

// 登録バックエンド接続設定
const (
	RegistrarConnectTimeout = 2 * time.Second
	RegistrarRequestTimeout = 5 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "registrar"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// トランザクション管理
const (
	TransactionTTL = 5 * time.Minute
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)

// 運用HTTPサーバー設定
const (
	OpsReadHeaderTimeout = 5 * time.Second
)
