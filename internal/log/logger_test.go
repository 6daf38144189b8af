package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want zerolog.Level
	}{
		{"default", Config{}, zerolog.InfoLevel},
		{"explicit", Config{Level: "warn"}, zerolog.WarnLevel},
		{"invalid falls back", Config{Level: "loud"}, zerolog.InfoLevel},
		{"debug wins", Config{Level: "error", Debug: true}, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.cfg)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestWithComponentJSON(t *testing.T) {
	var buf bytes.Buffer
	l := WithComponent(New(Config{Output: &buf, JSON: true}), "invoker")
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"invoker"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})
	l.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}
