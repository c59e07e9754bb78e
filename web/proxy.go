package web

import (
	"net"
	"strings"

	"github.com/kataras/iris/v12"
)

// The dashboard lives on a LAN, usually behind one reverse proxy; forwarded
// headers are only honored when the request actually came from that LAN.
var trustedProxies = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
}

func isTrustedIP(ip net.IP) bool {
	for _, cidr := range trustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err == nil && network.Contains(ip) {
			return true
		}
	}
	return false
}

func ProxyIPMiddleware(ctx iris.Context) {
	remoteIP := net.ParseIP(ctx.RemoteAddr())
	if remoteIP == nil || !isTrustedIP(remoteIP) {
		ctx.Values().Set("client_ip", ctx.RemoteAddr())
		ctx.Next()
		return
	}

	if forwardedFor := ctx.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		for _, ip := range strings.Split(forwardedFor, ",") {
			parsedIP := net.ParseIP(strings.TrimSpace(ip))
			if parsedIP != nil {
				ctx.Values().Set("client_ip", parsedIP.String())
				ctx.Next()
				return
			}
		}
	}

	ctx.Values().Set("client_ip", remoteIP.String())
	ctx.Next()
}
