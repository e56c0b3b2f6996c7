package health

import (
	"context"
	"time"
)

const checkTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB Pinger
}

// NewService constructs a new health service. db may be nil.
func NewService(db Pinger) *Service {
	return &Service{DB: db}
}

// Status reports overall health and per-dependency results.
func (s *Service) Status(ctx context.Context) (bool, map[string]string) {
	checks := map[string]string{}
	ok := true
	if s == nil || s.DB == nil {
		checks["database"] = "disabled"
		return ok, checks
	}
	pingCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		checks["database"] = "unavailable"
		ok = false
	} else {
		checks["database"] = "ok"
	}
	return ok, checks
}
