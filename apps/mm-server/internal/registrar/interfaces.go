package registrar

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_registrar.go -package=mocks

import "context"

// Registrar はSIP登録バックエンドとの通信インターフェースを定義する
type Registrar interface {
	// Register は端末のSIP登録を行う。到達不能時は ErrTimeout に該当するエラーを返す
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error)
	// Unregister は端末のSIP登録を解除する
	Unregister(ctx context.Context, imsi string) error
}
