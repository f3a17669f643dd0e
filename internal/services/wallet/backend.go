package wallet

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"onramp/internal/models"

	"github.com/google/uuid"
)

// HTTPBackend provisions wallets through an external key-management service.
type HTTPBackend struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPBackend(baseURL, apiKey string) *HTTPBackend {
	return &HTTPBackend{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *HTTPBackend) CreateWallet(ctx context.Context, userID uuid.UUID, chain models.Chain) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"userId": userID.String(),
		"chain":  string(chain),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/wallets", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wallet backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("wallet backend returned status %d", resp.StatusCode)
	}

	var out struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode wallet backend response: %w", err)
	}
	if out.Address == "" {
		return "", fmt.Errorf("wallet backend returned an empty address")
	}
	return out.Address, nil
}

// LocalBackend derives stable pseudo-addresses from the (user, chain) pair.
// Used in development and tests; it never talks to a real network.
type LocalBackend struct{}

func (LocalBackend) CreateWallet(ctx context.Context, userID uuid.UUID, chain models.Chain) (string, error) {
	sum := sha256.Sum256([]byte(userID.String() + ":" + string(chain)))
	digest := hex.EncodeToString(sum[:])

	switch chain.Family() {
	case "EVM":
		return "0x" + digest[:40], nil
	case "SOLANA":
		return digest[:44], nil
	case "APTOS":
		return "0x" + digest[:64], nil
	default:
		return "", fmt.Errorf("unsupported chain: %s", chain)
	}
}
