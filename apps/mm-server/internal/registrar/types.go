package registrar

import (
	"strconv"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// RegisterRequest はSIP登録要求を表す
type RegisterRequest struct {
	IMSI string `json:"imsi"`
	// RAND は直前に受け取ったチャレンジ（Hex文字列、再登録時のみ）
	RAND string `json:"rand,omitempty"`
	// SRES は端末の署名応答（先頭ゼロを付けない小文字Hex、再登録時のみ）
	SRES string `json:"sres,omitempty"`
}

// NewChallengeResponse はチャレンジに対する再登録要求を生成する。
// SRESは既存のSIPバックエンドと同じく桁埋めせずに送る。
func NewChallengeResponse(imsi string, rand l3.RAND, sres l3.SRES) *RegisterRequest {
	return &RegisterRequest{
		IMSI: imsi,
		RAND: rand.Hex(),
		SRES: strconv.FormatUint(uint64(sres), 16),
	}
}

// RegisterResult はSIP登録の結果を表す
type RegisterResult struct {
	// Success は登録が受け付けられたかを示す
	Success bool
	// Challenge はバックエンドが認証を要求した場合のRAND。要求がない場合は nil。
	Challenge *l3.RAND
}

// registerResponseJSON はJSONパース用の内部構造体
type registerResponseJSON struct {
	Result string `json:"result"`
	RAND   string `json:"rand"`
}

// ProblemDetails はRFC 7807エラーレスポンスを表す
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}
