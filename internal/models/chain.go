package models

import (
	"fmt"
	"strings"
)

// Chain identifies a blockchain network a wallet can be provisioned on.
// The set is closed: anything outside it is rejected, never coerced.
type Chain string

const (
	// EVM chains
	ChainETH         Chain = "ETH"
	ChainETHSepolia  Chain = "ETH-SEPOLIA"
	ChainMATIC       Chain = "MATIC"
	ChainMATICAmoy   Chain = "MATIC-AMOY"
	ChainAVAX        Chain = "AVAX"
	ChainBASE        Chain = "BASE"
	ChainBASESepolia Chain = "BASE-SEPOLIA"

	// Solana
	ChainSOL       Chain = "SOL"
	ChainSOLDevnet Chain = "SOL-DEVNET"

	// Aptos
	ChainAPTOS        Chain = "APTOS"
	ChainAPTOSTestnet Chain = "APTOS-TESTNET"
)

// MainnetChains returns the production chains.
func MainnetChains() []Chain {
	return []Chain{ChainETH, ChainMATIC, ChainAVAX, ChainSOL, ChainAPTOS, ChainBASE}
}

// TestnetChains returns the test-network variants.
func TestnetChains() []Chain {
	return []Chain{ChainETHSepolia, ChainSOLDevnet, ChainAPTOSTestnet, ChainMATICAmoy, ChainBASESepolia}
}

// SupportedChains returns every chain in the enumeration.
func SupportedChains() []Chain {
	return append(MainnetChains(), TestnetChains()...)
}

// ParseChain resolves an identifier against the enumeration,
// case-insensitively. Unknown identifiers are an error.
func ParseChain(s string) (Chain, error) {
	candidate := Chain(strings.ToUpper(strings.TrimSpace(s)))
	if !candidate.IsValid() {
		return "", fmt.Errorf("unsupported chain: %s", s)
	}
	return candidate, nil
}

// ParseChains resolves a whole batch, failing on the first bad entry
// so partially valid batches are rejected atomically.
func ParseChains(raw []string) ([]Chain, error) {
	chains := make([]Chain, 0, len(raw))
	seen := make(map[Chain]struct{}, len(raw))
	for _, s := range raw {
		chain, err := ParseChain(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[chain]; ok {
			continue
		}
		seen[chain] = struct{}{}
		chains = append(chains, chain)
	}
	return chains, nil
}

// IsValid reports whether the chain is in the supported enumeration.
func (c Chain) IsValid() bool {
	for _, chain := range SupportedChains() {
		if c == chain {
			return true
		}
	}
	return false
}

// IsTestnet reports whether the chain is a test-network variant.
func (c Chain) IsTestnet() bool {
	for _, chain := range TestnetChains() {
		if c == chain {
			return true
		}
	}
	return false
}

// Family returns the chain family used to pick an address format.
func (c Chain) Family() string {
	switch c {
	case ChainETH, ChainETHSepolia, ChainMATIC, ChainMATICAmoy, ChainAVAX, ChainBASE, ChainBASESepolia:
		return "EVM"
	case ChainSOL, ChainSOLDevnet:
		return "SOLANA"
	case ChainAPTOS, ChainAPTOSTestnet:
		return "APTOS"
	default:
		return "UNKNOWN"
	}
}

func (c Chain) String() string { return string(c) }
