// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// MM手順関連エラー
var (
	// ErrUnexpectedMessage は手順中に想定外のメッセージを受信した場合のエラー
	ErrUnexpectedMessage = errors.New("unexpected message")
	// ErrUnexpectedPrimitive は手順中に想定外のプリミティブを受信した場合のエラー
	ErrUnexpectedPrimitive = errors.New("unexpected primitive")
	// ErrUnexpectedIdentity は手順で扱えない識別子種別を受信した場合のエラー
	ErrUnexpectedIdentity = errors.New("unexpected mobile identity")
)

// 加入者関連エラー
var (
	// ErrIMSINotFound はIMSIが見つからない場合のエラー
	ErrIMSINotFound = errors.New("IMSI not found")
	// ErrTMSINotFound はTMSIが見つからない場合のエラー
	ErrTMSINotFound = errors.New("TMSI not found")
	// ErrTransactionNotFound はトランザクションが見つからない場合のエラー
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTMSIExhausted は未使用のTMSIを払い出せなかった場合のエラー
	ErrTMSIExhausted = errors.New("no free TMSI")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrRegistrarUnavailable は登録バックエンドに到達できない場合のエラー
	ErrRegistrarUnavailable = errors.New("registrar unavailable")
)

// バリデーション関連エラー
var (
	// ErrInvalidIMSI は不正なIMSI形式エラー
	ErrInvalidIMSI = errors.New("invalid IMSI format")
	// ErrInvalidTMSI は不正なTMSI形式エラー
	ErrInvalidTMSI = errors.New("invalid TMSI format")
	// ErrInvalidHex は不正な16進数文字列エラー
	ErrInvalidHex = errors.New("invalid hex string")
)
