package store

import (
	"errors"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
)

var (
	// ErrValkeyUnavailable はValkeyへの接続が利用不可能な場合のエラー
	ErrValkeyUnavailable = apperr.ErrValkeyConnection

	// ErrKeyNotFound は指定されたキーが存在しない場合のエラー
	ErrKeyNotFound = errors.New("key not found")
)

// wrapErr はValkey操作エラーを ErrValkeyUnavailable に該当するエラーに変換する
func wrapErr(op, key string, err error) error {
	return apperr.NewValkeyError(op, key, err)
}
