package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	Reset()
	got := Current()
	if got.Ping != DefaultPing || got.Short != DefaultShort || got.Medium != DefaultMedium {
		t.Errorf("unexpected defaults: %+v", got)
	}
}

func TestConfigure_IgnoresZero(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Medium: 42 * time.Second})
	if Medium() != 42*time.Second {
		t.Errorf("Medium: got %v, want 42s", Medium())
	}
	if Short() != DefaultShort {
		t.Errorf("Short should keep default, got %v", Short())
	}
}

func TestConfigureFromEnv(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("TIMEOUT_PING", "500ms")
	t.Setenv("TIMEOUT_SHORT", "not-a-duration")
	t.Setenv("TIMEOUT_MEDIUM", "-3s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("configured: got %d, want 1", n)
	}
	if Ping() != 500*time.Millisecond {
		t.Errorf("Ping: got %v, want 500ms", Ping())
	}
	if Short() != DefaultShort || Medium() != DefaultMedium {
		t.Errorf("invalid values should be skipped, got %+v", Current())
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", ctx.Err())
	}
}
