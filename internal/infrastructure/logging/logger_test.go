package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantLevel   zapcore.Level
		wantErr     bool
	}{
		{"development debug", "development", "debug", zapcore.DebugLevel, false},
		{"production info", "production", "info", zapcore.InfoLevel, false},
		{"warn level", "test", "warn", zapcore.WarnLevel, false},
		{"invalid level", "development", "verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.environment, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("level %v not enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("level %v should be disabled", tt.wantLevel-1)
			}
		})
	}
}
