package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		debug bool
	}{
		{name: "production", debug: false},
		{name: "debug", debug: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			logger := NewLogger(tc.debug)
			if logger == nil {
				t.Fatal("logger cannot be nil")
			}

			if got := logger.Desugar().Core().Enabled(zap.DebugLevel); got != tc.debug {
				t.Errorf("debug enabled: expected %v got %v", tc.debug, got)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	logger1 := DefaultLogger()
	if logger1 == nil {
		t.Fatal("logger cannot be nil")
	}

	logger2 := DefaultLogger()
	if logger2 == nil {
		t.Fatal("logger cannot be nil")
	}

	if logger1 != logger2 {
		t.Errorf("expected %#v got %#v", logger1, logger2)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger1 := FromContext(ctx)
	if logger1 == nil {
		t.Fatal("logger cannot be nil")
	}

	named := logger1.Named("quiz")
	ctx = WithLogger(ctx, named)

	logger2 := FromContext(ctx)
	if named != logger2 {
		t.Errorf("expected %#v got %#v", named, logger2)
	}
}
