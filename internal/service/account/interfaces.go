package account

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// OpRecorder counts wallet operations.
type OpRecorder interface {
	RecordWalletOp(err error)
}
