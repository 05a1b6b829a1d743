package registrar

import (
	"testing"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

func TestNewChallengeResponse(t *testing.T) {
	rand := l3.RAND{Upper: 0x0011223344556677, Lower: 0x8899aabbccddeeff}
	tests := []struct {
		name     string
		sres     l3.SRES
		wantSRES string
	}{
		{"full width", 0xdeadbeef, "deadbeef"},
		{"leading zeros", 0x0000beef, "beef"},
		{"zero", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewChallengeResponse(testIMSI, rand, tt.sres)
			if req.IMSI != testIMSI {
				t.Errorf("IMSI = %q, want %q", req.IMSI, testIMSI)
			}
			if req.RAND != "00112233445566778899aabbccddeeff" {
				t.Errorf("RAND = %q", req.RAND)
			}
			if req.SRES != tt.wantSRES {
				t.Errorf("SRES = %q, want %q", req.SRES, tt.wantSRES)
			}
		})
	}
}
