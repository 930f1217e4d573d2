package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/suiwallet/internal/chain"
)

func TestTxURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"https://devnet.suivision.xyz/txblock/9vNLp1ZvG7jF",
		chain.TxURL("https://devnet.suivision.xyz/", "9vNLp1ZvG7jF"))
	assert.Empty(t, chain.TxURL("https://devnet.suivision.xyz", ""))
	assert.Empty(t, chain.TxURL("", "abc"))
}

func TestAccountURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "https://suivision.xyz/account/0x2", chain.AccountURL("https://suivision.xyz", "0x2"))
}
