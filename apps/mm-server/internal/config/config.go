package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/kelseyhightower/envconfig"
)

// Config はアプリケーション設定を保持する
type Config struct {
	// Valkey接続設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" required:"true"`

	// 登録バックエンド設定
	RegistrarURL string `envconfig:"REGISTRAR_URL" required:"true"`

	// サーバー設定
	ListenAddr    string `envconfig:"LISTEN_ADDR" default:":5062"`
	OpsListenAddr string `envconfig:"OPS_LISTEN_ADDR" default:":9090"`
	GinMode       string `envconfig:"GIN_MODE" default:"release"`

	// ログ設定
	LogLevel    string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskIMSI bool   `envconfig:"LOG_MASK_IMSI" default:"true"`

	// セル設定
	CellMCC string `envconfig:"CELL_MCC" default:"001"`
	CellMNC string `envconfig:"CELL_MNC" default:"01"`
	CellLAC uint16 `envconfig:"CELL_LAC" default:"1"`

	// 位置登録ポリシー
	OpenRegistration         bool          `envconfig:"LUR_OPEN_REGISTRATION" default:"false"`
	DefaultAuthAccept        bool          `envconfig:"LUR_DEFAULT_AUTH_ACCEPT" default:"true"`
	CachedAuth               bool          `envconfig:"LUR_CACHED_AUTH" default:"false"`
	QueryIMEI                bool          `envconfig:"LUR_QUERY_IMEI" default:"false"`
	QueryClassmark           bool          `envconfig:"LUR_QUERY_CLASSMARK" default:"false"`
	SendTMSIs                bool          `envconfig:"LUR_SEND_TMSIS" default:"false"`
	UnprovisionedRejectCause uint8         `envconfig:"LUR_UNPROVISIONED_REJECT_CAUSE" default:"4"`
	TimeoutHold              time.Duration `envconfig:"LUR_TIMEOUT_HOLD" default:"4s"`

	// MM Informationで通知する略称ネットワーク名（空の場合は送信しない）
	NetworkShortName string `envconfig:"NETWORK_SHORT_NAME" default:""`

	// 端末応答待ち
	ChannelRecvTimeout time.Duration `envconfig:"CHANNEL_RECV_TIMEOUT" default:"5s"`
	TMSIReallocTimeout time.Duration `envconfig:"TMSI_REALLOC_TIMEOUT" default:"1s"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

// LAI はセル自身の位置登録エリア識別子を返す
func (c *Config) LAI() l3.LocationAreaIdentity {
	return l3.LocationAreaIdentity{MCC: c.CellMCC, MNC: c.CellMNC, LAC: c.CellLAC}
}

// SlogLevel はLOG_LEVELに対応するslogのレベルを返す
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// validate は設定値のバリデーションを行う
func (c *Config) validate() error {
	if !strings.HasPrefix(c.RegistrarURL, "http://") && !strings.HasPrefix(c.RegistrarURL, "https://") {
		return fmt.Errorf("REGISTRAR_URL must start with http:// or https://")
	}
	if !isDigits(c.CellMCC) || len(c.CellMCC) != 3 {
		return fmt.Errorf("CELL_MCC must be 3 digits")
	}
	if !isDigits(c.CellMNC) || len(c.CellMNC) < 2 || len(c.CellMNC) > 3 {
		return fmt.Errorf("CELL_MNC must be 2-3 digits")
	}
	// LAC 0x0000 と 0xfffe は予約値
	if c.CellLAC == 0 || c.CellLAC == 0xfffe {
		return fmt.Errorf("CELL_LAC must not be a reserved value")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR")
	}
	if c.ChannelRecvTimeout <= 0 {
		return fmt.Errorf("CHANNEL_RECV_TIMEOUT must be positive")
	}
	if c.TMSIReallocTimeout <= 0 {
		return fmt.Errorf("TMSI_REALLOC_TIMEOUT must be positive")
	}
	if c.TimeoutHold < 0 {
		return fmt.Errorf("LUR_TIMEOUT_HOLD must not be negative")
	}
	// 符号化方式オクテットを含めてLV長さオクテットに収まること
	if name := (&l3.NetworkName{Name: c.NetworkShortName}); name.BitsV()/8 > l3.MaxLVLength {
		return fmt.Errorf("NETWORK_SHORT_NAME is too long to encode")
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
