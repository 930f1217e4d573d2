package balance

// Owner is anything with a Sui address, such as *wallet.Account or the
// stored *wallet.Wallet metadata.
type Owner interface {
	SuiAddress() string
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// FetchRecorder counts balance lookups.
type FetchRecorder interface {
	RecordBalanceFetch(absent bool)
}
