package value_object

import (
	"fmt"
	"net"
	"strconv"
)

// ORAddress は "<ip>:<port>" 形式の onion routing アドレス
type ORAddress struct {
	host string
	port uint16
}

func NewORAddress(host string, port uint16) (ORAddress, error) {
	if port == 0 {
		return ORAddress{}, fmt.Errorf("invalid port: %d", port)
	}
	if host == "" {
		return ORAddress{}, fmt.Errorf("invalid host")
	}
	return ORAddress{host, port}, nil
}

// ParseORAddress accepts both "1.2.3.4:9001" and "[2001:db8::1]:9001".
func ParseORAddress(s string) (ORAddress, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return ORAddress{}, fmt.Errorf("parse or address %q: %w", s, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return ORAddress{}, fmt.Errorf("parse port %q: %w", portStr, err)
	}
	return NewORAddress(host, uint16(port))
}

func (a ORAddress) Host() string { return a.host }
func (a ORAddress) Port() uint16 { return a.port }
func (a ORAddress) IsIPv6() bool {
	ip := net.ParseIP(a.host)
	return ip != nil && ip.To4() == nil
}
func (a ORAddress) String() string {
	return net.JoinHostPort(a.host, strconv.Itoa(int(a.port)))
}
