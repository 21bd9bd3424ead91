// services/netman/bringup.go
package netman

import (
	"context"
	"net/netip"
	"time"
)

const (
	linkPollInterval = 200 * time.Millisecond
	addrPollInterval = 500 * time.Millisecond
)

// WaitForNetwork blocks until the link layer is associated and DHCP has
// assigned an IPv4 address, then returns the address. It polls, never
// retries anything itself; if the link drops later, consumers must re-check
// liveness before use.
func WaitForNetwork(ctx context.Context, stack Netstack) (netip.Addr, error) {
	for !stack.LinkUp() {
		if err := sleep(ctx, linkPollInterval); err != nil {
			return netip.Addr{}, err
		}
	}
	for {
		if addr, ok := stack.Addr(); ok {
			return addr, nil
		}
		if err := sleep(ctx, addrPollInterval); err != nil {
			return netip.Addr{}, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
