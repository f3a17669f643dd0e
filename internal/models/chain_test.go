package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChain(t *testing.T) {
	tests := []struct {
		input   string
		want    Chain
		wantErr bool
	}{
		{"ETH", ChainETH, false},
		{"eth", ChainETH, false},
		{" sol ", ChainSOL, false},
		{"base-sepolia", ChainBASESepolia, false},
		{"aptos-testnet", ChainAPTOSTestnet, false},
		{"DOGE", "", true},
		{"", "", true},
		{"ETHEREUM", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChain(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChainsRejectsBatchOnFirstBadEntry(t *testing.T) {
	_, err := ParseChains([]string{"ETH", "SOL", "DOGE"})
	assert.Error(t, err)
}

func TestParseChainsDeduplicates(t *testing.T) {
	chains, err := ParseChains([]string{"eth", "ETH", "sol"})
	require.NoError(t, err)
	assert.Equal(t, []Chain{ChainETH, ChainSOL}, chains)
}

func TestChainFamily(t *testing.T) {
	assert.Equal(t, "EVM", ChainMATIC.Family())
	assert.Equal(t, "EVM", ChainBASESepolia.Family())
	assert.Equal(t, "SOLANA", ChainSOLDevnet.Family())
	assert.Equal(t, "APTOS", ChainAPTOS.Family())
}

func TestChainIsTestnet(t *testing.T) {
	assert.True(t, ChainETHSepolia.IsTestnet())
	assert.False(t, ChainETH.IsTestnet())
}
