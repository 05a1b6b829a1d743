// Package model は共通データ構造体を提供する。
package model

import (
	"fmt"
	"strconv"
)

// Subscriber はTMSIテーブルの加入者レコードを表す。
// Valkeyキー: sub:{IMSI}
type Subscriber struct {
	IMSI       string `json:"imsi" redis:"-"`                          // 国際移動体加入者識別番号
	TMSI       string `json:"tmsi,omitempty" redis:"tmsi"`             // 割当済みTMSI（8文字16進数）
	IMEI       string `json:"imei,omitempty" redis:"imei"`             // 端末識別番号
	Classmark1 uint8  `json:"classmark1" redis:"classmark1"`           // 位置登録要求のクラスマーク1
	Classmark2 string `json:"classmark2,omitempty" redis:"classmark2"` // クラスマーク2（6文字16進数）
	LAI        string `json:"lai" redis:"lai"`                         // 最終登録LAI（MCC-MNC-LAC）
	UpdatedAt  int64  `json:"updated_at" redis:"updated_at"`           // 最終更新日時（Unix秒）
}

// NewSubscriber は新しいSubscriberを生成する。
func NewSubscriber(imsi, lai string, classmark1 uint8, updatedAt int64) *Subscriber {
	return &Subscriber{
		IMSI:       imsi,
		Classmark1: classmark1,
		LAI:        lai,
		UpdatedAt:  updatedAt,
	}
}

// HasTMSI はTMSIが割り当て済みかを返す。
func (s *Subscriber) HasTMSI() bool {
	return s.TMSI != ""
}

// TMSIValue は16進数表記のTMSIを数値で返す。
func (s *Subscriber) TMSIValue() (uint32, error) {
	return ParseTMSIHex(s.TMSI)
}

// FormatTMSIHex はTMSIを8文字の16進数表記に変換する。
func FormatTMSIHex(tmsi uint32) string {
	return fmt.Sprintf("%08x", tmsi)
}

// ParseTMSIHex は8文字以下の16進数表記をTMSIに変換する。
func ParseTMSIHex(s string) (uint32, error) {
	if s == "" || len(s) > 8 {
		return 0, fmt.Errorf("invalid TMSI %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid TMSI %q: %w", s, err)
	}
	return uint32(v), nil
}

// AuthTokens はキャッシュ認証で使用するRAND/SRESの組を表す。
// Valkeyキー: auth:{IMSI}
type AuthTokens struct {
	RANDUpper string `json:"rand_upper" redis:"rand_upper"` // RAND上位64ビット（16文字16進数）
	RANDLower string `json:"rand_lower" redis:"rand_lower"` // RAND下位64ビット（16文字16進数）
	SRES      string `json:"sres" redis:"sres"`             // 期待する応答（8文字16進数）
}

// RAND はRAND全体を32文字の16進数で返す。
func (a *AuthTokens) RAND() string {
	return a.RANDUpper + a.RANDLower
}

// Complete はRANDとSRESが揃っているかを返す。
func (a *AuthTokens) Complete() bool {
	return a.RANDUpper != "" && a.RANDLower != "" && a.SRES != ""
}
