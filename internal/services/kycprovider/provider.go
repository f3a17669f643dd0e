// Package kycprovider is the outbound seam to the external verification
// provider. Submissions are accepted-for-processing; the decision arrives
// later on the callback endpoint, correlated by provider reference.
package kycprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"onramp/internal/models"
)

// Provider accepts a KYC submission out of band.
type Provider interface {
	Submit(ctx context.Context, providerRef string, req *models.KYCSubmitRequest) error
}

// HTTPProvider posts submissions to a real provider endpoint.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *HTTPProvider) Submit(ctx context.Context, providerRef string, req *models.KYCSubmitRequest) error {
	payload := map[string]interface{}{
		"reference":    providerRef,
		"documentType": req.DocumentType,
		"documents":    req.Documents,
		"personalInfo": req.PersonalInfo,
		"metadata":     req.Metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/submissions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("provider rejected submission: status %d", resp.StatusCode)
	}
	return nil
}

// NoopProvider accepts every submission without leaving the process. Used in
// development, where decisions are driven through the callback endpoint.
type NoopProvider struct{}

func (NoopProvider) Submit(ctx context.Context, providerRef string, req *models.KYCSubmitRequest) error {
	return nil
}
