package client

import (
	"strings"
)

// DefaultRPCURL is the devnet endpoint used when none or an insecure one is
// configured.
const DefaultRPCURL = "https://api.devnet.solana.com"

// ResolveRPCURL returns raw if it is an https URL, otherwise the default
// devnet endpoint.
func ResolveRPCURL(raw string) string {
	if raw == "" {
		return DefaultRPCURL
	}
	if !strings.HasPrefix(raw, "https://") {
		log.WithField("url", raw).Warn("Insecure RPC URL, falling back to default devnet endpoint")
		return DefaultRPCURL
	}
	return raw
}

// ExplorerURL links to signature on Solscan, tagged with the cluster the
// rpc URL points at.
func ExplorerURL(signature, rpcURL string) string {
	link := "https://solscan.io/tx/" + signature
	switch {
	case strings.Contains(rpcURL, "devnet"):
		return link + "?cluster=devnet"
	case strings.Contains(rpcURL, "testnet"):
		return link + "?cluster=testnet"
	case strings.Contains(rpcURL, "mainnet"):
		return link
	case rpcURL != "":
		return link + "?cluster=custom"
	}
	return link + "?cluster=devnet"
}
