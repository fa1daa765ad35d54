// Package net serves canvas sessions to browsers over websockets and finds
// servers on the LAN.
package net

import (
	"fmt"
	"net"
	"strconv"

	"LocalCanvas/internal/state"
)

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// no route out; check local interfaces
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// getLocalIPFallback is used on networks without internet access.
func getLocalIPFallback() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	state.Logger().Warn("no LAN address found, using loopback", "component", "net")
	return "127.0.0.1", nil
}

// ListenPort extracts the port from a listen address such as ":8888".
func ListenPort(addr string) (int, error) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return 0, fmt.Errorf("bad port in %q", addr)
	}
	return n, nil
}

// ShareURL is the websocket address other machines on the LAN connect to.
func ShareURL(port int) string {
	ip, err := GetOutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	return "ws://" + net.JoinHostPort(ip, strconv.Itoa(port)) + Path
}
