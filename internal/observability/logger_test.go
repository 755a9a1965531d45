package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	old := Logger
	t.Cleanup(func() { Logger = old })

	tests := []struct {
		level   string
		format  string
		enabled zapcore.Level
		wantErr bool
	}{
		{level: "debug", format: "json", enabled: zapcore.DebugLevel},
		{level: "info", format: "console", enabled: zapcore.InfoLevel},
		{level: "warning", format: "", enabled: zapcore.WarnLevel},
		{level: "error", format: "json", enabled: zapcore.ErrorLevel},
		{level: "loud", format: "json", wantErr: true},
		{level: "info", format: "xml", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.level+"/"+tc.format, func(t *testing.T) {
			err := InitLogger(tc.level, tc.format)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !Logger.Core().Enabled(tc.enabled) {
				t.Fatalf("expected level %s to be enabled", tc.enabled)
			}
			if tc.enabled > zapcore.DebugLevel && Logger.Core().Enabled(tc.enabled-1) {
				t.Fatalf("expected level %s to be disabled", tc.enabled-1)
			}
		})
	}
}

func TestLoggerWithTraceWithoutSpanReturnsBaseLogger(t *testing.T) {
	old := Logger
	Logger = zap.NewNop()
	t.Cleanup(func() { Logger = old })

	if got := LoggerWithTrace(context.Background()); got != Logger {
		t.Fatal("expected the base logger when no span is active")
	}
}
