package channel

import "errors"

var (
	// ErrTimeout は受信待ちがタイムアウトした場合のエラー
	ErrTimeout = errors.New("channel receive timeout")

	// ErrClosed はハードリリース後のチャネルを使用した場合のエラー
	ErrClosed = errors.New("channel closed")

	// ErrServerClosed はShutdown後にServeが終了した場合のエラー
	ErrServerClosed = errors.New("channel transport closed")

	// ErrInvalidDatagram はヘッダに満たないデータグラムのエラー
	ErrInvalidDatagram = errors.New("invalid datagram")
)
