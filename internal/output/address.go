package output

// DefaultAddressChars is the number of characters kept on each side of a truncated address.
const DefaultAddressChars = 6

// FormatAddress shortens addr to its first and last n characters joined by "...".
// Inputs too short to truncate are returned unchanged.
func FormatAddress(addr string, n int) string {
	if n <= 0 || len(addr) < 2*n {
		return addr
	}
	return addr[:n] + "..." + addr[len(addr)-n:]
}

// ShortAddress is FormatAddress with the default width.
func ShortAddress(addr string) string {
	return FormatAddress(addr, DefaultAddressChars)
}
