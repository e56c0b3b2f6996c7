package health

import (
	"context"
	"errors"
	"testing"
)

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		ok     bool
		status string
	}{
		{name: "no database", db: nil, ok: true, status: "disabled"},
		{name: "healthy database", db: stubPinger{}, ok: true, status: "ok"},
		{name: "down database", db: stubPinger{err: errors.New("refused")}, ok: false, status: "unavailable"},
	}
	for _, tt := range tests {
		ok, checks := NewService(tt.db).Status(context.Background())
		if ok != tt.ok || checks["database"] != tt.status {
			t.Fatalf("%s: got ok=%v checks=%v", tt.name, ok, checks)
		}
	}
}
