// Package logging はログ関連のユーティリティを提供する。
package logging

import (
	"fmt"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// 識別子ごとに平文で残す桁数
const (
	// imsiKeepPrefix はMCC+MNC（最大6桁）
	imsiKeepPrefix = 6
	imsiKeepSuffix = 1
	// imeiKeepPrefix は端末型式を示すTAC
	imeiKeepPrefix = 8
)

const maskChar = '*'

// MaskIMSI はIMSIをマスキングする。
// 例: 001010123456789 → 001010********9
// enabled=false の場合はそのまま返す。
func MaskIMSI(imsi string, enabled bool) string {
	if !enabled {
		return imsi
	}
	return MaskPartial(imsi, imsiKeepPrefix, imsiKeepSuffix, maskChar)
}

// MaskIMEI はIMEI/IMEISVのTAC以降をマスキングする。
func MaskIMEI(imei string, enabled bool) string {
	if !enabled {
		return imei
	}
	return MaskPartial(imei, imeiKeepPrefix, 0, maskChar)
}

// MaskPartial は先頭 keepPrefix 文字と末尾 keepSuffix 文字を残して置き換える。
// 残す文字数に満たない短い文字列はそのまま返す。
func MaskPartial(s string, keepPrefix, keepSuffix int, mask rune) string {
	runes := []rune(s)
	if len(runes) <= keepPrefix+keepSuffix {
		return s
	}
	for i := keepPrefix; i < len(runes)-keepSuffix; i++ {
		runes[i] = mask
	}
	return string(runes)
}

// Masker はマスキング設定を保持する。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// IMSI はIMSIをマスキングする。
func (m *Masker) IMSI(imsi string) string {
	return MaskIMSI(imsi, m.enabled)
}

// IMEI はIMEIをマスキングする。
func (m *Masker) IMEI(imei string) string {
	return MaskIMEI(imei, m.enabled)
}

// MobileID は移動機識別子を種別付きの文字列にする。
// TMSIは一時識別子のためマスキングしない。
func (m *Masker) MobileID(id *l3.MobileIdentity) string {
	switch id.Type {
	case l3.IMSIType:
		return "IMSI=" + m.IMSI(id.Digits)
	case l3.IMEIType, l3.IMEISVType:
		return fmt.Sprintf("%s=%s", id.Type, m.IMEI(id.Digits))
	default:
		return id.String()
	}
}

// IsEnabled はマスキングが有効かどうかを返す。
func (m *Masker) IsEnabled() bool {
	return m.enabled
}
