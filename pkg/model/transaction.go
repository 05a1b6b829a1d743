package model

// TransactionState はCMサービスで開始されたトランザクションの状態を表す定数。
type TransactionState string

const (
	// TransactionStarted はCMサービス受付直後
	TransactionStarted TransactionState = "started"
	// TransactionSetupReceived は発呼設定受信済み
	TransactionSetupReceived TransactionState = "setup_received"
	// TransactionReleased は解放済み
	TransactionReleased TransactionState = "released"
)

// Transaction は移動機発信トランザクションの記録を表す。
// Valkeyキー: tran:{ID}
// TTL: 5分
type Transaction struct {
	ID           string           `json:"id" redis:"-"`                  // トランザクション識別子（UUID）
	IMSI         string           `json:"imsi" redis:"imsi"`             // 発信加入者IMSI
	ServiceType  uint8            `json:"service_type" redis:"service"`  // CMサービス種別
	TI           uint8            `json:"ti" redis:"ti"`                 // CCトランザクション識別子
	CalledNumber string           `json:"called_number" redis:"called"`  // 着番号
	State        TransactionState `json:"state" redis:"state"`           // 状態
	Cause        uint8            `json:"cause,omitempty" redis:"cause"` // 解放理由
	CreatedAt    int64            `json:"created_at" redis:"created_at"` // 作成日時（Unix秒）
}

// NewTransaction は新しいTransactionを生成する。
func NewTransaction(id, imsi string, serviceType uint8, createdAt int64) *Transaction {
	return &Transaction{
		ID:          id,
		IMSI:        imsi,
		ServiceType: serviceType,
		State:       TransactionStarted,
		CreatedAt:   createdAt,
	}
}
