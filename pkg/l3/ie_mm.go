package l3

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// IdentityType は移動機識別子の種別を表す。
type IdentityType uint8

// IdentityType定数（GSM 04.08 10.5.1.4）
const (
	NoIdentity IdentityType = 0
	IMSIType   IdentityType = 1
	IMEIType   IdentityType = 2
	IMEISVType IdentityType = 3
	TMSIType   IdentityType = 4
)

func (t IdentityType) String() string {
	switch t {
	case NoIdentity:
		return "none"
	case IMSIType:
		return "IMSI"
	case IMEIType:
		return "IMEI"
	case IMEISVType:
		return "IMEISV"
	case TMSIType:
		return "TMSI"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// hasDigits は識別子がBCD桁列で表される種別かを判定する。
func (t IdentityType) hasDigits() bool {
	return t == IMSIType || t == IMEIType || t == IMEISVType
}

// MobileIdentity は移動機識別子（IMSI/TMSI/IMEI/なし）を表す。
type MobileIdentity struct {
	Type   IdentityType
	Digits string // IMSI/IMEI/IMEISV の場合のみ
	TMSI   uint32 // TMSI の場合のみ
}

// NewIMSIIdentity はIMSIの移動機識別子を生成する。
func NewIMSIIdentity(imsi string) MobileIdentity {
	return MobileIdentity{Type: IMSIType, Digits: imsi}
}

// NewIMEIIdentity はIMEIの移動機識別子を生成する。
func NewIMEIIdentity(imei string) MobileIdentity {
	return MobileIdentity{Type: IMEIType, Digits: imei}
}

// NewTMSIIdentity はTMSIの移動機識別子を生成する。
func NewTMSIIdentity(tmsi uint32) MobileIdentity {
	return MobileIdentity{Type: TMSIType, TMSI: tmsi}
}

// BitsV は値部のビット長を返す。
func (m *MobileIdentity) BitsV() int {
	switch {
	case m.Type == TMSIType:
		return 40
	case m.Type.hasDigits():
		return 8 * ((len(m.Digits) + 2) / 2)
	default:
		return 8
	}
}

// ParseV は値部を読み取る。
func (m *MobileIdentity) ParseV(f *Frame, rp *int, n int) error {
	first, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	odd, err := f.ReadField(rp, 1)
	if err != nil {
		return err
	}
	typ, err := f.ReadField(rp, 3)
	if err != nil {
		return err
	}
	m.Type = IdentityType(typ)
	m.Digits = ""
	m.TMSI = 0

	switch {
	case m.Type == TMSIType:
		v, err := f.ReadField(rp, 32)
		if err != nil {
			return err
		}
		m.TMSI = uint32(v)
		return nil

	case m.Type.hasDigits():
		var sb strings.Builder
		if err := appendDigit(&sb, uint8(first)); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			hi, err := f.ReadField(rp, 4)
			if err != nil {
				return err
			}
			lo, err := f.ReadField(rp, 4)
			if err != nil {
				return err
			}
			if err := appendDigit(&sb, uint8(lo)); err != nil {
				return err
			}
			last := i == n-1
			if last && odd == 0 {
				// 偶数桁の場合、最終オクテット上位はフィラー
				continue
			}
			if err := appendDigit(&sb, uint8(hi)); err != nil {
				return err
			}
		}
		m.Digits = sb.String()
		return nil

	default:
		// 識別子なし: 残りのオクテットを読み飛ばす
		if n > 1 {
			return f.advance(rp, 8*(n-1))
		}
		return nil
	}
}

// WriteV は値部を書き込む。
func (m *MobileIdentity) WriteV(f *Frame, wp *int) error {
	switch {
	case m.Type == TMSIType:
		if err := f.WriteField(wp, 0x0f, 4); err != nil {
			return err
		}
		if err := f.WriteField(wp, 0, 1); err != nil {
			return err
		}
		if err := f.WriteField(wp, uint64(TMSIType), 3); err != nil {
			return err
		}
		return f.WriteField(wp, uint64(m.TMSI), 32)

	case m.Type.hasDigits():
		digits, err := bcdDigits(m.Digits)
		if err != nil {
			return err
		}
		first := uint8(0x0f)
		if len(digits) > 0 {
			first = digits[0]
		}
		odd := uint64(len(digits) % 2)
		if err := f.WriteField(wp, uint64(first), 4); err != nil {
			return err
		}
		if err := f.WriteField(wp, odd, 1); err != nil {
			return err
		}
		if err := f.WriteField(wp, uint64(m.Type), 3); err != nil {
			return err
		}
		for i := 1; i < len(digits); i += 2 {
			hi := uint8(0x0f)
			if i+1 < len(digits) {
				hi = digits[i+1]
			}
			if err := f.WriteField(wp, uint64(hi), 4); err != nil {
				return err
			}
			if err := f.WriteField(wp, uint64(digits[i]), 4); err != nil {
				return err
			}
		}
		return nil

	default:
		return f.WriteField(wp, 0xf0|uint64(m.Type&0x07), 8)
	}
}

func (m *MobileIdentity) String() string {
	switch {
	case m.Type == TMSIType:
		return fmt.Sprintf("TMSI=0x%08x", m.TMSI)
	case m.Type.hasDigits():
		return m.Type.String() + "=" + m.Digits
	default:
		return "none"
	}
}

// appendDigit は0〜9の桁を追加する。それ以外は ErrMalformedElement。
func appendDigit(sb *strings.Builder, d uint8) error {
	if d > 9 {
		return fmt.Errorf("%w: bcd digit 0x%x", ErrMalformedElement, d)
	}
	sb.WriteByte('0' + d)
	return nil
}

// bcdDigits は10進数字列を桁値の列に変換する。
func bcdDigits(s string) ([]uint8, error) {
	out := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: non-decimal digit %q", ErrInvalidValue, c)
		}
		out[i] = c - '0'
	}
	return out, nil
}

// LocationAreaIdentity は位置登録エリア識別子（LAI）を表す。
type LocationAreaIdentity struct {
	MCC string
	MNC string
	LAC uint16
}

// BitsV は値部のビット長を返す。
func (l *LocationAreaIdentity) BitsV() int { return 40 }

// ParseV は値部を読み取る。
func (l *LocationAreaIdentity) ParseV(f *Frame, rp *int, _ int) error {
	var nibbles [6]uint8
	for i := range nibbles {
		v, err := f.ReadField(rp, 4)
		if err != nil {
			return err
		}
		nibbles[i] = uint8(v)
	}
	// オクテット内は上位ニブルが後続桁
	mcc := []uint8{nibbles[1], nibbles[0], nibbles[3]}
	mnc := []uint8{nibbles[5], nibbles[4]}
	if nibbles[2] != 0x0f {
		mnc = append(mnc, nibbles[2])
	}
	var sb strings.Builder
	for _, d := range mcc {
		if err := appendDigit(&sb, d); err != nil {
			return err
		}
	}
	l.MCC = sb.String()
	sb.Reset()
	for _, d := range mnc {
		if err := appendDigit(&sb, d); err != nil {
			return err
		}
	}
	l.MNC = sb.String()
	lac, err := f.ReadField(rp, 16)
	if err != nil {
		return err
	}
	l.LAC = uint16(lac)
	return nil
}

// WriteV は値部を書き込む。
func (l *LocationAreaIdentity) WriteV(f *Frame, wp *int) error {
	mcc, err := bcdDigits(l.MCC)
	if err != nil {
		return err
	}
	mnc, err := bcdDigits(l.MNC)
	if err != nil {
		return err
	}
	if len(mcc) != 3 || len(mnc) < 2 || len(mnc) > 3 {
		return fmt.Errorf("%w: lai %s", ErrInvalidValue, l)
	}
	mnc3 := uint8(0x0f)
	if len(mnc) == 3 {
		mnc3 = mnc[2]
	}
	for _, n := range []uint8{mcc[1], mcc[0], mnc3, mcc[2], mnc[1], mnc[0]} {
		if err := f.WriteField(wp, uint64(n), 4); err != nil {
			return err
		}
	}
	return f.WriteField(wp, uint64(l.LAC), 16)
}

func (l LocationAreaIdentity) String() string {
	return fmt.Sprintf("%s-%s-%d", l.MCC, l.MNC, l.LAC)
}

// CipheringKeySequenceNumber は暗号鍵シーケンス番号（4ビット）。
type CipheringKeySequenceNumber uint8

// NoKeyAvailable は鍵が無いことを示すCKSN値
const NoKeyAvailable CipheringKeySequenceNumber = 7

// LocationUpdatingType は位置登録種別（4ビット）。
type LocationUpdatingType uint8

// 位置登録種別（下位2ビット）
const (
	NormalLocationUpdating LocationUpdatingType = 0
	PeriodicUpdating       LocationUpdatingType = 1
	IMSIAttach             LocationUpdatingType = 2
)

// FollowOnRequest はフォローオン要求ビットが立っているかを返す。
func (t LocationUpdatingType) FollowOnRequest() bool {
	return t&0x08 != 0
}

// Kind は位置登録種別（下位2ビット）を返す。
func (t LocationUpdatingType) Kind() LocationUpdatingType {
	return t & 0x03
}

// MobileStationClassmark1 は移動機クラスマーク1（1オクテット）。
type MobileStationClassmark1 uint8

// RevisionLevel はリビジョンレベルを返す。
func (c MobileStationClassmark1) RevisionLevel() uint8 {
	return uint8(c>>5) & 0x03
}

// RFPowerCapability はRF出力クラスを返す。
func (c MobileStationClassmark1) RFPowerCapability() uint8 {
	return uint8(c) & 0x07
}

// MobileStationClassmark2 は移動機クラスマーク2（3オクテット）。
type MobileStationClassmark2 [3]byte

// BitsV は値部のビット長を返す。
func (c *MobileStationClassmark2) BitsV() int { return 24 }

// ParseV は値部を読み取る。3オクテットを超える部分は読み飛ばす。
func (c *MobileStationClassmark2) ParseV(f *Frame, rp *int, n int) error {
	if n == 0 {
		n = len(c)
	}
	b, err := readOctets(f, rp, n)
	if err != nil {
		return err
	}
	*c = MobileStationClassmark2{}
	copy(c[:], b)
	return nil
}

// WriteV は値部を書き込む。
func (c *MobileStationClassmark2) WriteV(f *Frame, wp *int) error {
	return writeOctets(f, wp, c[:])
}

// RevisionLevel はリビジョンレベルを返す。
func (c MobileStationClassmark2) RevisionLevel() uint8 {
	return c[0] >> 5 & 0x03
}

// RFPowerCapability はRF出力クラスを返す。
func (c MobileStationClassmark2) RFPowerCapability() uint8 {
	return c[0] & 0x07
}

// Hex はクラスマークを16進文字列で返す。
func (c MobileStationClassmark2) Hex() string {
	return hex.EncodeToString(c[:])
}

// MobileStationClassmark3 は移動機クラスマーク3（可変長、内容は保持のみ）。
type MobileStationClassmark3 []byte

// BitsV は値部のビット長を返す。
func (c *MobileStationClassmark3) BitsV() int { return 8 * len(*c) }

// ParseV は値部を読み取る。
func (c *MobileStationClassmark3) ParseV(f *Frame, rp *int, n int) error {
	b, err := readOctets(f, rp, n)
	if err != nil {
		return err
	}
	*c = b
	return nil
}

// WriteV は値部を書き込む。
func (c *MobileStationClassmark3) WriteV(f *Frame, wp *int) error {
	return writeOctets(f, wp, *c)
}

// RAND は128ビットの認証乱数。上位64ビットと下位64ビットで保持する。
type RAND struct {
	Upper uint64
	Lower uint64
}

// ParseRANDHex は32桁の16進文字列をRANDに変換する。
func ParseRANDHex(s string) (RAND, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return RAND{}, fmt.Errorf("%w: rand %q: %v", ErrInvalidValue, s, err)
	}
	if len(b) != 16 {
		return RAND{}, fmt.Errorf("%w: rand length %d", ErrInvalidValue, len(b))
	}
	var r RAND
	for i := 0; i < 8; i++ {
		r.Upper = r.Upper<<8 | uint64(b[i])
		r.Lower = r.Lower<<8 | uint64(b[8+i])
	}
	return r, nil
}

// BitsV は値部のビット長を返す。
func (r *RAND) BitsV() int { return 128 }

// ParseV は値部を読み取る。
func (r *RAND) ParseV(f *Frame, rp *int, _ int) error {
	upper, err := f.ReadField(rp, 64)
	if err != nil {
		return err
	}
	lower, err := f.ReadField(rp, 64)
	if err != nil {
		return err
	}
	r.Upper, r.Lower = upper, lower
	return nil
}

// WriteV は値部を書き込む。
func (r *RAND) WriteV(f *Frame, wp *int) error {
	if err := f.WriteField(wp, r.Upper, 64); err != nil {
		return err
	}
	return f.WriteField(wp, r.Lower, 64)
}

// Hex はRANDを32桁の16進文字列で返す。
func (r RAND) Hex() string {
	return fmt.Sprintf("%016x%016x", r.Upper, r.Lower)
}

// SRES は32ビットの署名応答。
type SRES uint32

// BitsV は値部のビット長を返す。
func (s *SRES) BitsV() int { return 32 }

// ParseV は値部を読み取る。
func (s *SRES) ParseV(f *Frame, rp *int, _ int) error {
	v, err := f.ReadField(rp, 32)
	if err != nil {
		return err
	}
	*s = SRES(v)
	return nil
}

// WriteV は値部を書き込む。
func (s *SRES) WriteV(f *Frame, wp *int) error {
	return f.WriteField(wp, uint64(*s), 32)
}

// Hex はSRESを8桁の16進文字列で返す。
func (s SRES) Hex() string {
	return fmt.Sprintf("%08x", uint32(s))
}

// RejectCause はMM拒否理由（1オクテット）。
type RejectCause uint8

// MM拒否理由（GSM 04.08 10.5.3.6）
const (
	CauseIMSIUnknownInHLR           RejectCause = 0x02
	CauseIllegalMS                  RejectCause = 0x03
	CauseIMSIUnknownInVLR           RejectCause = 0x04
	CauseIMEINotAccepted            RejectCause = 0x05
	CauseIllegalME                  RejectCause = 0x06
	CausePLMNNotAllowed             RejectCause = 0x0b
	CauseLocationAreaNotAllowed     RejectCause = 0x0c
	CauseRoamingNotAllowed          RejectCause = 0x0d
	CauseNetworkFailure             RejectCause = 0x11
	CauseCongestion                 RejectCause = 0x16
	CauseServiceOptionNotSupported  RejectCause = 0x20
	CauseServiceOptionNotSubscribed RejectCause = 0x21
	CauseServiceOptionOutOfOrder    RejectCause = 0x22
	CauseCallCannotBeIdentified     RejectCause = 0x26
	CauseInvalidMandatoryInfo       RejectCause = 0x60
	CauseMessageTypeNonExistent     RejectCause = 0x61
	CauseMessageTypeNotCompatible   RejectCause = 0x62
	CauseProtocolErrorUnspecified   RejectCause = 0x6f
)

var rejectCauseNames = map[RejectCause]string{
	CauseIMSIUnknownInHLR:           "IMSI unknown in HLR",
	CauseIllegalMS:                  "illegal MS",
	CauseIMSIUnknownInVLR:           "IMSI unknown in VLR",
	CauseIMEINotAccepted:            "IMEI not accepted",
	CauseIllegalME:                  "illegal ME",
	CausePLMNNotAllowed:             "PLMN not allowed",
	CauseLocationAreaNotAllowed:     "location area not allowed",
	CauseRoamingNotAllowed:          "roaming not allowed in this location area",
	CauseNetworkFailure:             "network failure",
	CauseCongestion:                 "congestion",
	CauseServiceOptionNotSupported:  "service option not supported",
	CauseServiceOptionNotSubscribed: "requested service option not subscribed",
	CauseServiceOptionOutOfOrder:    "service option temporarily out of order",
	CauseCallCannotBeIdentified:     "call cannot be identified",
	CauseInvalidMandatoryInfo:       "invalid mandatory information",
	CauseMessageTypeNonExistent:     "message type non-existent",
	CauseMessageTypeNotCompatible:   "message type not compatible with protocol state",
	CauseProtocolErrorUnspecified:   "protocol error, unspecified",
}

func (c RejectCause) String() string {
	if name, ok := rejectCauseNames[c]; ok {
		return fmt.Sprintf("0x%02x(%s)", uint8(c), name)
	}
	return fmt.Sprintf("0x%02x", uint8(c))
}

// CMServiceType はCMサービス種別（4ビット）。
type CMServiceType uint8

// CMサービス種別（GSM 04.08 10.5.3.3）
const (
	MobileOriginatedCall CMServiceType = 1
	EmergencyCall        CMServiceType = 2
	ShortMessage         CMServiceType = 4
	SupplementaryService CMServiceType = 8
	VoiceGroupCall       CMServiceType = 9
	VoiceBroadcastCall   CMServiceType = 10
	LocationService      CMServiceType = 11
)

func (t CMServiceType) String() string {
	switch t {
	case MobileOriginatedCall:
		return "MOC"
	case EmergencyCall:
		return "emergency"
	case ShortMessage:
		return "SMS"
	case SupplementaryService:
		return "SS"
	case VoiceGroupCall:
		return "VGCS"
	case VoiceBroadcastCall:
		return "VBS"
	case LocationService:
		return "LCS"
	default:
		return fmt.Sprintf("service(%d)", uint8(t))
	}
}

// PriorityLevel は呼優先度（TV、値部4ビット）。
type PriorityLevel uint8

// BitsV は値部のビット長を返す。
func (p *PriorityLevel) BitsV() int { return 4 }

// ParseV は値部を読み取る。
func (p *PriorityLevel) ParseV(f *Frame, rp *int, _ int) error {
	v, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	*p = PriorityLevel(v & 0x07)
	return nil
}

// WriteV は値部を書き込む。
func (p *PriorityLevel) WriteV(f *Frame, wp *int) error {
	return f.WriteField(wp, uint64(*p&0x07), 4)
}
