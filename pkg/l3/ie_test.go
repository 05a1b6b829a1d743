package l3

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestPackGSM7(t *testing.T) {
	packed := packGSM7(encodeGSM7("hellohello"))
	want := []byte{0xe8, 0x32, 0x9b, 0xfd, 0x46, 0x97, 0xd9, 0xec, 0x37}
	if !bytes.Equal(packed, want) {
		t.Errorf("got %x, want %x", packed, want)
	}
	if got := decodeGSM7(unpackGSM7(packed, 10)); got != "hellohello" {
		t.Errorf("unpack: got %q", got)
	}
}

func TestEncodeGSM7Fallback(t *testing.T) {
	if got := decodeGSM7(encodeGSM7("a@b$c_d€")); got != "a@b$c_d?" {
		t.Errorf("got %q", got)
	}
}

func TestNetworkNameSpareBits(t *testing.T) {
	tests := []struct {
		name      string
		wantSpare uint64
	}{
		{"OpenBTS", 7},
		{"OpenBTS1", 0},
		{"ab", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &NetworkName{Name: tt.name}
			f := NewFrame(PrimitiveData, n.BitsV())
			wp := 0
			if err := n.WriteV(f, &wp); err != nil {
				t.Fatalf("WriteV failed: %v", err)
			}
			octet3, _ := f.PeekField(0, 8)
			if octet3>>7 != 1 {
				t.Error("ext bit not set")
			}
			if octet3&0x07 != tt.wantSpare {
				t.Errorf("spare: got %d, want %d", octet3&0x07, tt.wantSpare)
			}

			rp := 0
			var parsed NetworkName
			if err := parsed.ParseV(f, &rp, f.ByteLength()); err != nil {
				t.Fatalf("ParseV failed: %v", err)
			}
			if parsed.Name != tt.name {
				t.Errorf("Name: got %q, want %q", parsed.Name, tt.name)
			}
		})
	}
}

func TestNetworkNameMultibyte(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Café", "Caf?"},
		{"日本", "??"},
		{"Ω-net", "?-net"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMMInformation(tt.name)
			f, err := Write(m)
			if err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			parsed, ok := Parse(f).(*MMInformation)
			if !ok {
				t.Fatal("expected *MMInformation")
			}
			if parsed.ShortName == nil || parsed.ShortName.Name != tt.want {
				t.Errorf("ShortName: got %v, want %q", parsed.ShortName, tt.want)
			}
		})
	}
}

func TestMobileIdentityEncoding(t *testing.T) {
	tests := []struct {
		name string
		id   MobileIdentity
		want []byte
	}{
		{
			name: "IMSI odd",
			id:   NewIMSIIdentity("001010123456789"),
			want: []byte{0x09, 0x10, 0x10, 0x10, 0x32, 0x54, 0x76, 0x98},
		},
		{
			name: "IMEI even",
			id:   NewIMEIIdentity("3539580312"),
			want: []byte{0x32, 0x35, 0x59, 0x08, 0x13, 0xf2},
		},
		{
			name: "TMSI",
			id:   NewTMSIIdentity(0x0badcafe),
			want: []byte{0xf4, 0x0b, 0xad, 0xca, 0xfe},
		},
		{
			name: "no identity",
			id:   MobileIdentity{Type: NoIdentity},
			want: []byte{0xf0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(PrimitiveData, tt.id.BitsV())
			wp := 0
			if err := tt.id.WriteV(f, &wp); err != nil {
				t.Fatalf("WriteV failed: %v", err)
			}
			if !bytes.Equal(f.Bytes(), tt.want) {
				t.Errorf("got %x, want %x", f.Bytes(), tt.want)
			}

			rp := 0
			var parsed MobileIdentity
			if err := parsed.ParseV(f, &rp, f.ByteLength()); err != nil {
				t.Fatalf("ParseV failed: %v", err)
			}
			if parsed != tt.id {
				t.Errorf("parsed: got %+v, want %+v", parsed, tt.id)
			}
		})
	}
}

func TestLocationAreaIdentity(t *testing.T) {
	tests := []struct {
		name string
		lai  LocationAreaIdentity
		want []byte
	}{
		{"two digit MNC", LocationAreaIdentity{MCC: "001", MNC: "01", LAC: 1}, []byte{0x00, 0xf1, 0x10, 0x00, 0x01}},
		{"three digit MNC", LocationAreaIdentity{MCC: "310", MNC: "410", LAC: 0x1234}, []byte{0x13, 0x00, 0x14, 0x12, 0x34}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(PrimitiveData, tt.lai.BitsV())
			wp := 0
			if err := tt.lai.WriteV(f, &wp); err != nil {
				t.Fatalf("WriteV failed: %v", err)
			}
			if !bytes.Equal(f.Bytes(), tt.want) {
				t.Errorf("got %x, want %x", f.Bytes(), tt.want)
			}
			rp := 0
			var parsed LocationAreaIdentity
			if err := parsed.ParseV(f, &rp, 0); err != nil {
				t.Fatalf("ParseV failed: %v", err)
			}
			if parsed != tt.lai {
				t.Errorf("parsed: got %v, want %v", parsed, tt.lai)
			}
		})
	}
}

func TestRANDHex(t *testing.T) {
	r, err := ParseRANDHex("00112233445566778899aabbccddeeff")
	if err != nil {
		t.Fatalf("ParseRANDHex failed: %v", err)
	}
	if r.Upper != 0x0011223344556677 || r.Lower != 0x8899aabbccddeeff {
		t.Errorf("got %+v", r)
	}
	if r.Hex() != "00112233445566778899aabbccddeeff" {
		t.Errorf("Hex: got %s", r.Hex())
	}

	for _, s := range []string{"", "0011", "zz112233445566778899aabbccddeeff"} {
		if _, err := ParseRANDHex(s); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("%q: expected ErrInvalidValue, got %v", s, err)
		}
	}
}

func TestSRESHex(t *testing.T) {
	if got := SRES(0x00ab).Hex(); got != "000000ab" {
		t.Errorf("got %s, want 000000ab", got)
	}
}

func TestNewTimeZoneAndTime(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	z := NewTimeZoneAndTime(time.Date(2026, 10, 14, 18, 30, 15, 0, loc))
	want := TimeZoneAndTime{Year: 26, Month: 10, Day: 14, Hour: 9, Minute: 30, Second: 15, ZoneQuarters: 36}
	if z != want {
		t.Errorf("got %+v, want %+v", z, want)
	}

	f := NewFrame(PrimitiveData, z.BitsV())
	wp := 0
	if err := z.WriteV(f, &wp); err != nil {
		t.Fatalf("WriteV failed: %v", err)
	}
	if got := f.Bytes(); !bytes.Equal(got, []byte{0x62, 0x01, 0x41, 0x90, 0x03, 0x51, 0x63}) {
		t.Errorf("encoded: got %x", got)
	}
}

func TestCauseSkipsRecommendationAndDiagnostics(t *testing.T) {
	// ext=0 のオクテット3a と診断情報2オクテットを含む
	f := NewFrameFromBytes(PrimitiveData, []byte{0x05, 0x61, 0x80, 0x90, 0xaa, 0xbb})
	rp := 0
	var c Cause
	if err := ParseLV(&c, f, &rp); err != nil {
		t.Fatalf("ParseLV failed: %v", err)
	}
	if c.Location != 1 || c.Value != CCCauseNormalClearing {
		t.Errorf("got %+v", c)
	}
	if rp != f.Size() {
		t.Errorf("rp: got %d, want %d", rp, f.Size())
	}
}
