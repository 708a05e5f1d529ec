package server

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIPResolver decides which address a request is attributed to.
// X-Forwarded-For is only honoured when the direct peer is a trusted proxy.
type ClientIPResolver struct {
	trusted []netip.Prefix
}

// NewClientIPResolver accepts proxies as single addresses or CIDR ranges.
// Entries that parse as neither are logged and ignored.
func NewClientIPResolver(trustedProxies []string) *ClientIPResolver {
	r := &ClientIPResolver{}
	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			r.trusted = append(r.trusted, prefix.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			r.trusted = append(r.trusted, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
			continue
		}
		slog.Warn(LogMsgInvalidTrustedProxy, "entry", entry)
	}
	return r
}

func (c *ClientIPResolver) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range c.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the address rate limits and auth alerts are keyed on
func (c *ClientIPResolver) ClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !c.isTrusted(peer) {
		return peer
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	// rightmost hop is the one our proxy saw
	hops := strings.Split(forwarded, ",")
	if hop := strings.TrimSpace(hops[len(hops)-1]); hop != "" {
		return hop
	}
	return peer
}
