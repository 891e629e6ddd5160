package services

import (
	"fmt"
	"net"
)

// FindAvailablePort returns the first port in [startPort, endPort] that can
// be bound on localhost. The dashboard uses it to fall forward from the
// default port when another instance already holds it.
func FindAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err != nil {
			continue
		}
		listener.Close()
		return port, nil
	}
	return 0, fmt.Errorf("no free port between %d and %d", startPort, endPort)
}
