package chain

import (
	"net/url"
	"strings"
)

// TxURL links a transaction digest on a Suivision-style explorer.
// An empty base or digest yields "".
func TxURL(base, digest string) string {
	return explorerURL(base, "txblock", digest)
}

// AccountURL links an address on a Suivision-style explorer.
func AccountURL(base, address string) string {
	return explorerURL(base, "account", address)
}

func explorerURL(base, kind, id string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" || id == "" {
		return ""
	}
	return base + "/" + kind + "/" + url.PathEscape(id)
}
