package generator

import (
	"fmt"
	"net"

	"github.com/eduardo/stackforge/internal/domain"
)

// maxPortAttempts bounds the sequential probe for a free local port.
const maxPortAttempts = 50

// PortProber reports whether a port is already bound on loopback.
// Injectable so tests don't depend on the host's open ports.
type PortProber func(port int) bool

// LoopbackBound is the default prober: it attempts to listen on the
// loopback interface and treats failure as "already bound".
func LoopbackBound(port int) bool {
	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return true
	}
	l.Close()
	return false
}

// AllocatePort picks the first free loopback port at or above the
// engine's conventional default. Exceeding the attempt bound is fatal:
// the container and env generators need a real port to agree on.
func AllocatePort(engine domain.DatabaseEngine, bound PortProber) (int, error) {
	base := engine.DefaultPort()
	if base == 0 {
		return 0, fmt.Errorf("engine %q does not use a network port", engine)
	}
	if bound == nil {
		bound = LoopbackBound
	}
	for port := base; port < base+maxPortAttempts; port++ {
		if !bound(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port for %s in range %d-%d", engine, base, base+maxPortAttempts-1)
}
