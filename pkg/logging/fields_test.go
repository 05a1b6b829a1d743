package logging

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

func TestStringAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"trace id", WithTraceID("trace-12345"), FieldTraceID, "trace-12345"},
		{"event id", WithEventID("LUR_ACCEPT"), FieldEventID, "LUR_ACCEPT"},
		{"channel", WithChannel("udp:10.0.0.1:5700"), FieldChannel, "udp:10.0.0.1:5700"},
		{"tmsi", WithTMSI(0x00ab12cd), FieldTMSI, "00ab12cd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.String() != tt.wantVal {
				t.Errorf("Value = %q, want %q", tt.attr.Value.String(), tt.wantVal)
			}
		})
	}
}

func TestWithError(t *testing.T) {
	t.Run("With error", func(t *testing.T) {
		attr := WithError(errors.New("registrar timeout"))
		if attr.Key != FieldError {
			t.Errorf("Key = %q, want %q", attr.Key, FieldError)
		}
		if attr.Value.String() != "registrar timeout" {
			t.Errorf("Value = %q, want %q", attr.Value.String(), "registrar timeout")
		}
	})

	t.Run("With nil error", func(t *testing.T) {
		attr := WithError(nil)
		if attr.Value.String() != "" {
			t.Errorf("Value = %q, want empty string", attr.Value.String())
		}
	})
}

func TestIntAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal int64
	}{
		{"cause", WithCause(0x11), FieldCause, 17},
		{"latency", WithLatency(150), FieldLatencyMs, 150},
		{"http status", WithHTTPStatus(503), FieldHTTPStatus, 503},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.Int64() != tt.wantVal {
				t.Errorf("Value = %d, want %d", tt.attr.Value.Int64(), tt.wantVal)
			}
		})
	}
}

func TestCommonFields(t *testing.T) {
	t.Run("WithIMSI with masking", func(t *testing.T) {
		cf := NewCommonFields(NewMasker(true))
		attr := cf.WithIMSI("001010123456789")
		if attr.Key != FieldIMSI {
			t.Errorf("Key = %q, want %q", attr.Key, FieldIMSI)
		}
		if want := "001010********9"; attr.Value.String() != want {
			t.Errorf("Value = %q, want %q", attr.Value.String(), want)
		}
	})

	t.Run("WithIMEI with masking", func(t *testing.T) {
		cf := NewCommonFields(NewMasker(true))
		attr := cf.WithIMEI("35395803121326")
		if want := "35395803******"; attr.Value.String() != want {
			t.Errorf("Value = %q, want %q", attr.Value.String(), want)
		}
	})

	t.Run("NewCommonFields with nil masker", func(t *testing.T) {
		cf := NewCommonFields(nil)
		attr := cf.WithIMSI("001010123456789")
		// nilの場合はマスキング無効で初期化される
		if attr.Value.String() != "001010123456789" {
			t.Errorf("Value = %q, want %q", attr.Value.String(), "001010123456789")
		}
	})

	t.Run("WithMobileID", func(t *testing.T) {
		cf := NewCommonFields(NewMasker(true))
		id := l3.NewIMSIIdentity("001010123456789")
		attr := cf.WithMobileID(&id)
		if attr.Key != FieldMobileID {
			t.Errorf("Key = %q, want %q", attr.Key, FieldMobileID)
		}
		if want := "IMSI=001010********9"; attr.Value.String() != want {
			t.Errorf("Value = %q, want %q", attr.Value.String(), want)
		}
	})
}
