package store

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_store.go -package=mocks

import (
	"context"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/model"
)

// SubscriberTable はTMSIテーブルへのアクセスを定義する。
// 同一IMSIに対する操作が並行しないことは呼び出し側が保証する。
type SubscriberTable interface {
	// AssignTMSI は新しいTMSI候補を採番して返す。
	// 加入者にTMSIが未割当の場合のみ、候補がその加入者のTMSIとして登録される。
	AssignTMSI(ctx context.Context, imsi string, lur *l3.LocationUpdatingRequest) (uint32, error)
	// TMSI は加入者に割当済みのTMSIを返す。未割当の場合は ok=false
	TMSI(ctx context.Context, imsi string) (tmsi uint32, ok bool, err error)
	// IMSI はTMSIに対応するIMSIを返す。未登録の場合は空文字列とnilを返す
	IMSI(ctx context.Context, tmsi uint32) (string, error)
	// SetIMEI は加入者のIMEIを記録する
	SetIMEI(ctx context.Context, imsi, imei string) error
	// SetClassmark は加入者のクラスマーク2を記録する
	SetClassmark(ctx context.Context, imsi string, cm l3.MobileStationClassmark2) error
	// Subscriber は加入者レコードを取得する。未登録の場合は apperr.ErrIMSINotFound
	Subscriber(ctx context.Context, imsi string) (*model.Subscriber, error)
}

// AuthCache はキャッシュ認証用トークンへのアクセスを定義する
type AuthCache interface {
	// Tokens は記憶済みのRAND/SRESを返す。未記憶の場合は nil と nil を返す
	Tokens(ctx context.Context, imsi string) (*model.AuthTokens, error)
	// SaveTokens はRAND/SRESを記憶する
	SaveTokens(ctx context.Context, imsi string, tokens *model.AuthTokens) error
}

// TransactionStore は発信トランザクションへのアクセスを定義する
type TransactionStore interface {
	// Save はトランザクションを保存しTTLを更新する
	Save(ctx context.Context, tx *model.Transaction) error
	// Get はトランザクションを取得する。未存在時は apperr.ErrTransactionNotFound
	Get(ctx context.Context, id string) (*model.Transaction, error)
}
