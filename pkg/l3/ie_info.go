package l3

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// NetworkName はMM Informationで通知するネットワーク名（GSM 7ビット既定アルファベット）。
type NetworkName struct {
	Name string
	// AddCountryInitials は端末に国名略称の付加を指示する。
	AddCountryInitials bool
}

// BitsV は値部のビット長を返す。WriteVと同じく1文字1セプテットで数える。
func (n *NetworkName) BitsV() int {
	return 8 + 8*packedLength(utf8.RuneCountInString(n.Name))
}

// ParseV は値部を読み取る。符号化方式がGSM 7ビット以外の場合は名前を空のままにする。
func (n *NetworkName) ParseV(f *Frame, rp *int, length int) error {
	if _, err := f.ReadField(rp, 1); err != nil {
		return err
	}
	coding, err := f.ReadField(rp, 3)
	if err != nil {
		return err
	}
	ci, err := f.ReadField(rp, 1)
	if err != nil {
		return err
	}
	spare, err := f.ReadField(rp, 3)
	if err != nil {
		return err
	}
	packed, err := readOctets(f, rp, length-1)
	if err != nil {
		return err
	}
	n.AddCountryInitials = ci == 1
	n.Name = ""
	if coding != 0 {
		return nil
	}
	count := (len(packed)*8 - int(spare)) / 7
	n.Name = decodeGSM7(unpackGSM7(packed, count))
	return nil
}

// WriteV は値部を書き込む。
func (n *NetworkName) WriteV(f *Frame, wp *int) error {
	septets := encodeGSM7(n.Name)
	packed := packGSM7(septets)
	spare := len(packed)*8 - len(septets)*7
	ci := uint64(0)
	if n.AddCountryInitials {
		ci = 1
	}
	// ext=1, coding scheme=0 (GSM 7ビット)
	if err := f.WriteField(wp, 1, 1); err != nil {
		return err
	}
	if err := f.WriteField(wp, 0, 3); err != nil {
		return err
	}
	if err := f.WriteField(wp, ci, 1); err != nil {
		return err
	}
	if err := f.WriteField(wp, uint64(spare), 3); err != nil {
		return err
	}
	return writeOctets(f, wp, packed)
}

func (n *NetworkName) String() string {
	return fmt.Sprintf("%q", n.Name)
}

// packedLength はnセプテットを詰めた場合のオクテット数を返す。
func packedLength(n int) int {
	return (n*7 + 7) / 8
}

// encodeGSM7 は文字列をGSM 7ビット既定アルファベットのセプテット列に変換する。
// 表現できない文字は '?' に置き換える。
func encodeGSM7(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, gsm7Septet(r))
	}
	return out
}

func gsm7Septet(r rune) byte {
	switch {
	case r == '@':
		return 0x00
	case r == '$':
		return 0x02
	case r == '_':
		return 0x11
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return byte(r)
	case r == ' ' || r == '!' || r == '"' || r == '#' || r == '%' || r == '&' || r == '\'':
		return byte(r)
	case r >= '(' && r <= '/', r >= ':' && r <= '?':
		return byte(r)
	default:
		return '?'
	}
}

// decodeGSM7 はセプテット列を文字列に変換する。
func decodeGSM7(septets []byte) string {
	out := make([]rune, 0, len(septets))
	for _, s := range septets {
		switch s {
		case 0x00:
			out = append(out, '@')
		case 0x02:
			out = append(out, '$')
		case 0x11:
			out = append(out, '_')
		default:
			if gsm7Septet(rune(s)) == s {
				out = append(out, rune(s))
			} else {
				out = append(out, '?')
			}
		}
	}
	return string(out)
}

// packGSM7 はセプテット列をLSB側から順に詰める。
func packGSM7(septets []byte) []byte {
	out := make([]byte, packedLength(len(septets)))
	bit := 0
	for _, s := range septets {
		for i := 0; i < 7; i++ {
			if s>>uint(i)&1 == 1 {
				out[bit/8] |= 1 << uint(bit%8)
			}
			bit++
		}
	}
	return out
}

// unpackGSM7 は詰められたオクテット列からcount個のセプテットを取り出す。
func unpackGSM7(packed []byte, count int) []byte {
	out := make([]byte, count)
	bit := 0
	for k := range out {
		var s byte
		for i := 0; i < 7; i++ {
			if packed[bit/8]>>uint(bit%8)&1 == 1 {
				s |= 1 << uint(i)
			}
			bit++
		}
		out[k] = s
	}
	return out
}

// TimeZoneAndTime は世界時と地域時間帯（TV、値部7オクテット）。
// 各要素は桁を入れ替えたBCDで符号化される。
type TimeZoneAndTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	// ZoneQuarters はUTCからの時差（15分単位、負値は西側）。
	ZoneQuarters int
}

// NewTimeZoneAndTime は時刻から要素を生成する。
func NewTimeZoneAndTime(t time.Time) TimeZoneAndTime {
	_, offset := t.Zone()
	u := t.UTC()
	return TimeZoneAndTime{
		Year:         u.Year() % 100,
		Month:        int(u.Month()),
		Day:          u.Day(),
		Hour:         u.Hour(),
		Minute:       u.Minute(),
		Second:       u.Second(),
		ZoneQuarters: offset / 900,
	}
}

// BitsV は値部のビット長を返す。
func (z *TimeZoneAndTime) BitsV() int { return 56 }

// ParseV は値部を読み取る。
func (z *TimeZoneAndTime) ParseV(f *Frame, rp *int, _ int) error {
	b, err := readOctets(f, rp, 7)
	if err != nil {
		return err
	}
	z.Year = swappedBCD(b[0])
	z.Month = swappedBCD(b[1])
	z.Day = swappedBCD(b[2])
	z.Hour = swappedBCD(b[3])
	z.Minute = swappedBCD(b[4])
	z.Second = swappedBCD(b[5])
	z.ZoneQuarters = swappedBCD(b[6] &^ 0x08)
	if b[6]&0x08 != 0 {
		z.ZoneQuarters = -z.ZoneQuarters
	}
	return nil
}

// WriteV は値部を書き込む。
func (z *TimeZoneAndTime) WriteV(f *Frame, wp *int) error {
	zone := z.ZoneQuarters
	sign := byte(0)
	if zone < 0 {
		zone = -zone
		sign = 0x08
	}
	b := []byte{
		toSwappedBCD(z.Year % 100),
		toSwappedBCD(z.Month),
		toSwappedBCD(z.Day),
		toSwappedBCD(z.Hour),
		toSwappedBCD(z.Minute),
		toSwappedBCD(z.Second),
		toSwappedBCD(zone) | sign,
	}
	return writeOctets(f, wp, b)
}

func (z *TimeZoneAndTime) String() string {
	return fmt.Sprintf("%02d-%02d-%02dT%02d:%02d:%02dZ%+d", z.Year, z.Month, z.Day, z.Hour, z.Minute, z.Second, z.ZoneQuarters)
}

// toSwappedBCD は0〜99を下位ニブル=十の位、上位ニブル=一の位で符号化する。
func toSwappedBCD(v int) byte {
	return byte((v%10)<<4 | (v/10)%10)
}

func swappedBCD(b byte) int {
	return int(b&0x0f)*10 + int(b>>4)
}
