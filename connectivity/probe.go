package connectivity

import (
	"context"
	"net"
	"time"
)

// DefaultProbeTimeout bounds each dial attempt when the caller does not set
// its own.
const DefaultProbeTimeout = 2 * time.Second

// DialChecker probes reachability by opening a TCP connection to one of the
// configured endpoints. The first endpoint that accepts a connection makes
// the device "connected"; if every dial fails, for any reason, the checker
// reports not connected. Every call dials fresh.
type DialChecker struct {
	endpoints []string
	timeout   time.Duration
	dialer    *net.Dialer
}

// NewDialChecker builds a checker over host:port endpoints. With no
// endpoints the checker always reports not connected.
func NewDialChecker(timeout time.Duration, endpoints ...string) *DialChecker {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &DialChecker{
		endpoints: endpoints,
		timeout:   timeout,
		dialer:    &net.Dialer{Timeout: timeout},
	}
}

// Connected implements Checker.
func (d *DialChecker) Connected(ctx context.Context) bool {
	for _, endpoint := range d.endpoints {
		dialCtx, cancel := context.WithTimeout(ctx, d.timeout)
		conn, err := d.dialer.DialContext(dialCtx, "tcp", endpoint)
		cancel()
		if err != nil {
			continue
		}
		_ = conn.Close()
		return true
	}
	return false
}
