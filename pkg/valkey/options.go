// Package valkey はValkeyクライアントの共通機能を提供する。
package valkey

import (
	"net"
	"strconv"
	"time"
)

// Options はValkeyクライアントの接続オプション。
type Options struct {
	Addr            string        // 接続先アドレス（host:port形式）
	Password        string        // 認証パスワード
	DB              int           // データベース番号
	ConnectTimeout  time.Duration // 接続タイムアウト
	CommandTimeout  time.Duration // 読み取り・書き込みタイムアウト
	PoolSize        int           // コネクションプールサイズ
	MinIdleConns    int           // 最小アイドルコネクション数
	MaxRetries      int           // コマンド再試行回数（-1で無効）
	MinRetryBackoff time.Duration // 再試行間隔の下限
	MaxRetryBackoff time.Duration // 再試行間隔の上限
}

// DefaultOptions はデフォルトのOptionsを返す。
// MM手順は端末応答待ちの間にValkeyを参照するため、コマンドタイムアウトは短めにする。
func DefaultOptions() *Options {
	return &Options{
		Addr:            "localhost:6379",
		ConnectTimeout:  3 * time.Second,
		CommandTimeout:  500 * time.Millisecond,
		PoolSize:        20,
		MinIdleConns:    2,
		MaxRetries:      2,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 200 * time.Millisecond,
	}
}

// WithAddr はアドレスを設定する。
func (o *Options) WithAddr(addr string) *Options {
	o.Addr = addr
	return o
}

// WithPassword はパスワードを設定する。
func (o *Options) WithPassword(password string) *Options {
	o.Password = password
	return o
}

// WithTimeouts はタイムアウトを設定する。
func (o *Options) WithTimeouts(connect, command time.Duration) *Options {
	o.ConnectTimeout = connect
	o.CommandTimeout = command
	return o
}

// WithPool はプール設定を変更する。
func (o *Options) WithPool(poolSize, minIdle int) *Options {
	o.PoolSize = poolSize
	o.MinIdleConns = minIdle
	return o
}

// WithRetry は再試行設定を変更する。
func (o *Options) WithRetry(maxRetries int, minBackoff, maxBackoff time.Duration) *Options {
	o.MaxRetries = maxRetries
	o.MinRetryBackoff = minBackoff
	o.MaxRetryBackoff = maxBackoff
	return o
}

// BuildAddr はホストとポートからアドレス文字列を生成する。
func BuildAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
