package output

import (
	"io"
	"strings"

	"github.com/mdp/qrterminal/v3"
	"rsc.io/qr"
)

// QRConfig configures QR code rendering.
type QRConfig struct {
	Level      qr.Level
	QuietZone  int
	HalfBlocks bool
}

// DefaultQRConfig returns defaults suited to a Sui address in a terminal.
func DefaultQRConfig() QRConfig {
	return QRConfig{
		Level:      qr.L,
		QuietZone:  1,
		HalfBlocks: true,
	}
}

// CanRenderQR checks if the output writer is a terminal suitable for QR rendering.
func CanRenderQR(w io.Writer) bool {
	return IsTerminal(w)
}

// RenderQR renders a QR code to w. Nothing is written when w is not a terminal.
func RenderQR(w io.Writer, data string, cfg QRConfig) error {
	if !CanRenderQR(w) {
		return nil
	}
	qrterminal.GenerateWithConfig(data, qrConfig(w, cfg))
	return nil
}

// QRString renders a QR code into a string, for embedding in a full-screen view.
func QRString(data string, cfg QRConfig) string {
	var sb strings.Builder
	qrterminal.GenerateWithConfig(data, qrConfig(&sb, cfg))
	return strings.TrimRight(sb.String(), "\n")
}

func qrConfig(w io.Writer, cfg QRConfig) qrterminal.Config {
	return qrterminal.Config{
		Level:          cfg.Level,
		Writer:         w,
		QuietZone:      cfg.QuietZone,
		HalfBlocks:     cfg.HalfBlocks,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
	}
}
