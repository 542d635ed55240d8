package topology

import (
	"errors"
	"fmt"
	"net"
)

// ErrNoAddressFound is matched by every *NoAddressFoundError.
var ErrNoAddressFound = errors.New("no address found")

// NoAddressFoundError reports a machine with no usable address.
type NoAddressFoundError struct {
	Machine string
}

// Error implements the error interface.
func (e *NoAddressFoundError) Error() string {
	return fmt.Sprintf("no address found for machine %q: no external address and no private network", e.Machine)
}

// Is allows errors.Is(err, ErrNoAddressFound).
func (e *NoAddressFoundError) Is(target error) bool {
	return target == ErrNoAddressFound
}

// ResolveAddress returns the address other nodes should use to reach m.
//
// The provider-reported public address wins unless it is empty or a
// loopback address. Otherwise the first private network IP is used.
func ResolveAddress(m *Machine) (string, error) {
	if m == nil {
		return "", fmt.Errorf("machine cannot be nil")
	}
	if isExternal(m.PublicAddress) {
		return m.PublicAddress, nil
	}
	if ip := m.PrivateIP(); ip != "" {
		return ip, nil
	}
	return "", &NoAddressFoundError{Machine: m.Name}
}

func isExternal(addr string) bool {
	if addr == "" || addr == "localhost" {
		return false
	}
	if ip := net.ParseIP(addr); ip != nil && ip.IsLoopback() {
		return false
	}
	return true
}
