package l3

import "errors"

// フレーム操作エラー
var (
	// ErrOutOfRange はフレーム長を超えて読み書きした場合のエラー
	ErrOutOfRange = errors.New("field out of range")

	// ErrInvalidWidth はフィールド幅が1〜64ビットの範囲外の場合のエラー
	ErrInvalidWidth = errors.New("invalid field width")
)

// 情報要素エラー
var (
	// ErrMalformedElement は宣言長と実際の消費長が一致しない場合のエラー
	ErrMalformedElement = errors.New("malformed information element")

	// ErrInvalidValue はエンコードできない値を持つ情報要素のエラー
	ErrInvalidValue = errors.New("invalid element value")
)

// メッセージコーデックエラー
var (
	// ErrEmptyFrame は空フレームを解析しようとした場合のエラー
	ErrEmptyFrame = errors.New("empty frame")

	// ErrUnsupportedProtocol は解析対象外のプロトコル識別子の場合のエラー
	ErrUnsupportedProtocol = errors.New("unsupported protocol discriminator")

	// ErrUnknownMessageType はデコードテーブルに無いメッセージ種別の場合のエラー
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrLengthMismatch は書き込みビット数が宣言長と一致しない場合のエラー
	ErrLengthMismatch = errors.New("encoded length mismatch")
)
