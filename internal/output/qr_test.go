package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rsc.io/qr"
)

const testSuiAddress = "0x2a6174f94a2c1d648de290297be27867527a6aaa263a4e0a567c6cd7ffb0e6e3"

func TestDefaultQRConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultQRConfig()

	assert.Equal(t, qr.L, cfg.Level)
	assert.Equal(t, 1, cfg.QuietZone)
	assert.True(t, cfg.HalfBlocks)
}

func TestCanRenderQR(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.False(t, CanRenderQR(&buf))
	assert.False(t, CanRenderQR(nil))
}

func TestRenderQR_NonTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, RenderQR(&buf, testSuiAddress, DefaultQRConfig()))
	assert.Empty(t, buf.String())
}

func TestQRString(t *testing.T) {
	t.Parallel()
	s := QRString(testSuiAddress, DefaultQRConfig())

	require.NotEmpty(t, s)
	assert.Greater(t, bytes.Count([]byte(s), []byte("\n")), 10)
}
