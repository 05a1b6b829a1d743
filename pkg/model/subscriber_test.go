package model

import "testing"

func TestNewSubscriber(t *testing.T) {
	sub := NewSubscriber("001010123456789", "001-01-1", 0x33, 1700000000)

	if sub.IMSI != "001010123456789" {
		t.Errorf("IMSI = %q, want %q", sub.IMSI, "001010123456789")
	}
	if sub.LAI != "001-01-1" {
		t.Errorf("LAI = %q, want %q", sub.LAI, "001-01-1")
	}
	if sub.Classmark1 != 0x33 {
		t.Errorf("Classmark1 = %d, want %d", sub.Classmark1, 0x33)
	}
	if sub.HasTMSI() {
		t.Error("HasTMSI() = true, want false")
	}
}

func TestSubscriberTMSIValue(t *testing.T) {
	sub := Subscriber{IMSI: "001010123456789", TMSI: "0000002a"}
	if !sub.HasTMSI() {
		t.Error("HasTMSI() = false, want true")
	}
	v, err := sub.TMSIValue()
	if err != nil {
		t.Fatalf("TMSIValue() error = %v", err)
	}
	if v != 42 {
		t.Errorf("TMSIValue() = %d, want 42", v)
	}
}

func TestTMSIHex(t *testing.T) {
	if got := FormatTMSIHex(0xdeadbeef); got != "deadbeef" {
		t.Errorf("FormatTMSIHex() = %q, want %q", got, "deadbeef")
	}
	if got := FormatTMSIHex(1); got != "00000001" {
		t.Errorf("FormatTMSIHex() = %q, want %q", got, "00000001")
	}

	tests := []struct {
		name    string
		in      string
		want    uint32
		wantErr bool
	}{
		{"full width", "deadbeef", 0xdeadbeef, false},
		{"short", "2a", 42, false},
		{"upper case", "DEADBEEF", 0xdeadbeef, false},
		{"empty", "", 0, true},
		{"too long", "123456789", 0, true},
		{"not hex", "xyz", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTMSIHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTMSIHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTMSIHex(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAuthTokens(t *testing.T) {
	tokens := AuthTokens{
		RANDUpper: "0011223344556677",
		RANDLower: "8899aabbccddeeff",
		SRES:      "cafebabe",
	}
	if !tokens.Complete() {
		t.Error("Complete() = false, want true")
	}
	if got := tokens.RAND(); got != "00112233445566778899aabbccddeeff" {
		t.Errorf("RAND() = %q", got)
	}

	partial := AuthTokens{RANDUpper: "0011223344556677"}
	if partial.Complete() {
		t.Error("Complete() = true, want false")
	}
}
