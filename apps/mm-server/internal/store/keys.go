package store

// Valkeyキープレフィックス
const (
	KeyPrefixSubscriber  = "sub:"  // TMSIテーブルの加入者レコード
	KeyPrefixTMSI        = "tmsi:" // TMSIからIMSIへの逆引き
	KeyPrefixAuth        = "auth:" // キャッシュ認証のRAND/SRES
	KeyPrefixTransaction = "tran:" // 発信トランザクション
)

// KeyTMSISequence はTMSI採番用カウンタのキー
const KeyTMSISequence = "tmsi:seq"
