package feed

import (
	"time"
)

// GetTimeout returns the per-request timeout as time.Duration
func (s *ConfigSettings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second // default 30 seconds
	}
	return time.Duration(s.Timeout) * time.Second
}

// GetRefreshInterval returns the refresh interval as time.Duration; zero
// means the subscription is imported manually or at startup only.
func (s *ConfigSettings) GetRefreshInterval() time.Duration {
	if s.RefreshInterval <= 0 {
		return 0
	}
	return time.Duration(s.RefreshInterval) * time.Second
}
