package handlers

import (
	"context"
	"net"
	"net/http"
)

// Context keys
type contextKey string

const (
	// WalletKey is the key for the session wallet address in the context
	WalletKey contextKey = "walletAddress"
)

// NewContextWithWallet adds a wallet address to the context
func NewContextWithWallet(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, WalletKey, address)
}

// WalletFromContext extracts the session wallet address from the context
func WalletFromContext(ctx context.Context) (string, bool) {
	address, ok := ctx.Value(WalletKey).(string)
	return address, ok
}

// clientIP returns the caller's IP without the port. RealIP middleware has
// already rewritten RemoteAddr from forwarding headers where present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// identity picks the strongest available rate-limit key: an explicit wallet
// address, then the session wallet, then the caller's IP. Keying on the
// wallet prevents trivial bypass via IP rotation.
func identity(r *http.Request, walletAddress string) string {
	if walletAddress != "" {
		return walletAddress
	}
	if address, ok := WalletFromContext(r.Context()); ok && address != "" {
		return address
	}
	return clientIP(r)
}
