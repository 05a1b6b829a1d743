package l3

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// TransactionIdentifier はCCメッセージのトランザクション識別子（フラグ1ビット+値3ビット）。
type TransactionIdentifier uint8

// NewTransactionIdentifier はトランザクション識別子を生成する。
// flag は受信側が採番した識別子への応答であることを示す。
func NewTransactionIdentifier(flag bool, value uint8) TransactionIdentifier {
	ti := TransactionIdentifier(value & 0x07)
	if flag {
		ti |= 0x08
	}
	return ti
}

// Flag はTIフラグを返す。
func (t TransactionIdentifier) Flag() bool {
	return t&0x08 != 0
}

// Value はTI値を返す。
func (t TransactionIdentifier) Value() uint8 {
	return uint8(t) & 0x07
}

// Reply は応答方向のトランザクション識別子を返す。
func (t TransactionIdentifier) Reply() TransactionIdentifier {
	return t ^ 0x08
}

// BearerCapability はベアラ能力（内容は保持のみ）。
type BearerCapability []byte

// BitsV は値部のビット長を返す。
func (b *BearerCapability) BitsV() int { return 8 * len(*b) }

// ParseV は値部を読み取る。
func (b *BearerCapability) ParseV(f *Frame, rp *int, n int) error {
	v, err := readOctets(f, rp, n)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// WriteV は値部を書き込む。
func (b *BearerCapability) WriteV(f *Frame, wp *int) error {
	return writeOctets(f, wp, *b)
}

// Facility は補足サービス用ファシリティ（内容は保持のみ）。
type Facility []byte

// BitsV は値部のビット長を返す。
func (fa *Facility) BitsV() int { return 8 * len(*fa) }

// ParseV は値部を読み取る。
func (fa *Facility) ParseV(f *Frame, rp *int, n int) error {
	v, err := readOctets(f, rp, n)
	if err != nil {
		return err
	}
	*fa = v
	return nil
}

// WriteV は値部を書き込む。
func (fa *Facility) WriteV(f *Frame, wp *int) error {
	return writeOctets(f, wp, *fa)
}

func (fa Facility) String() string {
	return hex.EncodeToString(fa)
}

// CC Cause の符号化標準
const causeCodingGSM = 3

// CC Cause値（GSM 04.08 10.5.4.11）
const (
	CCCauseNormalClearing           uint8 = 16
	CCCauseUserBusy                 uint8 = 17
	CCCauseNoUserResponding         uint8 = 18
	CCCauseTemporaryFailure         uint8 = 41
	CCCauseServiceNotAvailable      uint8 = 63
	CCCauseServiceNotImplemented    uint8 = 79
	CCCauseInvalidTransactionID     uint8 = 81
	CCCauseProtocolErrorUnspecified uint8 = 111
)

// Cause はCCの切断理由。
type Cause struct {
	Location uint8
	Value    uint8
}

// BitsV は値部のビット長を返す。
func (c *Cause) BitsV() int { return 16 }

// ParseV は値部を読み取る。推奨オクテットと診断情報は読み飛ばす。
func (c *Cause) ParseV(f *Frame, rp *int, n int) error {
	start := *rp
	ext, err := f.ReadField(rp, 1)
	if err != nil {
		return err
	}
	if _, err := f.ReadField(rp, 3); err != nil { // coding standard + spare
		return err
	}
	loc, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	if ext == 0 {
		// オクテット3a（推奨）
		if err := f.advance(rp, 8); err != nil {
			return err
		}
	}
	if _, err := f.ReadField(rp, 1); err != nil {
		return err
	}
	v, err := f.ReadField(rp, 7)
	if err != nil {
		return err
	}
	c.Location = uint8(loc)
	c.Value = uint8(v)
	if n == 0 {
		return nil
	}
	// 診断情報
	used := *rp - start
	if rest := 8*n - used; rest > 0 {
		return f.advance(rp, rest)
	}
	return nil
}

// WriteV は値部を書き込む。
func (c *Cause) WriteV(f *Frame, wp *int) error {
	octet3 := uint64(0x80 | causeCodingGSM<<5 | c.Location&0x0f)
	if err := f.WriteField(wp, octet3, 8); err != nil {
		return err
	}
	return f.WriteField(wp, uint64(0x80|c.Value&0x7f), 8)
}

func (c *Cause) String() string {
	return fmt.Sprintf("location=%d value=%d", c.Location, c.Value)
}

// ProgressIndicator は経過表示。
type ProgressIndicator struct {
	Location    uint8
	Description uint8
}

// BitsV は値部のビット長を返す。
func (p *ProgressIndicator) BitsV() int { return 16 }

// ParseV は値部を読み取る。
func (p *ProgressIndicator) ParseV(f *Frame, rp *int, _ int) error {
	octet3, err := f.ReadField(rp, 8)
	if err != nil {
		return err
	}
	octet4, err := f.ReadField(rp, 8)
	if err != nil {
		return err
	}
	p.Location = uint8(octet3) & 0x0f
	p.Description = uint8(octet4) & 0x7f
	return nil
}

// WriteV は値部を書き込む。
func (p *ProgressIndicator) WriteV(f *Frame, wp *int) error {
	if err := f.WriteField(wp, uint64(0x80|causeCodingGSM<<5|p.Location&0x0f), 8); err != nil {
		return err
	}
	return f.WriteField(wp, uint64(0x80|p.Description&0x7f), 8)
}

// CalledPartyBCDNumber は着番号。
type CalledPartyBCDNumber struct {
	TypeOfNumber  uint8
	NumberingPlan uint8
	Digits        string
}

// calledDigits は着番号で使用できる桁文字（BCD値順）
const calledDigits = "0123456789*#abc"

// BitsV は値部のビット長を返す。
func (c *CalledPartyBCDNumber) BitsV() int {
	return 8 + 8*((len(c.Digits)+1)/2)
}

// ParseV は値部を読み取る。
func (c *CalledPartyBCDNumber) ParseV(f *Frame, rp *int, n int) error {
	if _, err := f.ReadField(rp, 1); err != nil {
		return err
	}
	ton, err := f.ReadField(rp, 3)
	if err != nil {
		return err
	}
	npi, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for i := 1; i < n; i++ {
		hi, err := f.ReadField(rp, 4)
		if err != nil {
			return err
		}
		lo, err := f.ReadField(rp, 4)
		if err != nil {
			return err
		}
		for _, d := range []uint64{lo, hi} {
			if d == 0x0f {
				continue
			}
			if int(d) >= len(calledDigits) {
				return fmt.Errorf("%w: called party digit 0x%x", ErrMalformedElement, d)
			}
			sb.WriteByte(calledDigits[d])
		}
	}
	c.TypeOfNumber = uint8(ton)
	c.NumberingPlan = uint8(npi)
	c.Digits = sb.String()
	return nil
}

// WriteV は値部を書き込む。
func (c *CalledPartyBCDNumber) WriteV(f *Frame, wp *int) error {
	if err := f.WriteField(wp, uint64(0x80|(c.TypeOfNumber&0x07)<<4|c.NumberingPlan&0x0f), 8); err != nil {
		return err
	}
	digits := make([]uint8, len(c.Digits))
	for i := 0; i < len(c.Digits); i++ {
		idx := strings.IndexByte(calledDigits, c.Digits[i])
		if idx < 0 {
			return fmt.Errorf("%w: called party digit %q", ErrInvalidValue, c.Digits[i])
		}
		digits[i] = uint8(idx)
	}
	for i := 0; i < len(digits); i += 2 {
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
}

func (c *CalledPartyBCDNumber) String() string {
	return c.Digits
}

// RRCause はRR理由（1オクテット）。
type RRCause uint8

// RR理由
const (
	RRCauseNormal               RRCause = 0x00
	RRCauseUnspecified          RRCause = 0x01
	RRCauseMessageNotCompatible RRCause = 0x62
)
