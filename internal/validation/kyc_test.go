package validation

import (
	"testing"

	"onramp/internal/models"

	"github.com/stretchr/testify/assert"
)

func validKYCRequest() *models.KYCSubmitRequest {
	return &models.KYCSubmitRequest{
		DocumentType: "passport",
		Documents: []models.KYCDocument{{
			Type:        "passport",
			FileURL:     "https://uploads.example.com/passport.jpg",
			ContentType: "image/jpeg",
		}},
	}
}

func TestKYCSubmissionValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.KYCSubmitRequest)
		wantErr string
	}{
		{"valid", func(r *models.KYCSubmitRequest) {}, ""},
		{"missing document type", func(r *models.KYCSubmitRequest) {
			r.DocumentType = ""
		}, "documentType"},
		{"no documents", func(r *models.KYCSubmitRequest) {
			r.Documents = nil
		}, "documents"},
		{"missing file url", func(r *models.KYCSubmitRequest) {
			r.Documents[0].FileURL = ""
		}, "documents[0].fileUrl"},
		{"relative file url", func(r *models.KYCSubmitRequest) {
			r.Documents[0].FileURL = "uploads/passport.jpg"
		}, "documents[0].fileUrl"},
		{"ftp scheme", func(r *models.KYCSubmitRequest) {
			r.Documents[0].FileURL = "ftp://host/passport.jpg"
		}, "documents[0].fileUrl"},
		{"missing content type", func(r *models.KYCSubmitRequest) {
			r.Documents[0].ContentType = ""
		}, "documents[0].contentType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validKYCRequest()
			tt.mutate(req)

			v := New()
			v.KYCSubmission(req)
			if tt.wantErr == "" {
				assert.True(t, v.Valid(), "expected valid, got %v", v.Errors)
			} else {
				assert.Contains(t, v.Errors, tt.wantErr)
			}
		})
	}
}

func TestKYCCallbackValidation(t *testing.T) {
	tests := []struct {
		name   string
		req    *models.KYCCallbackRequest
		wantOK bool
	}{
		{"approved", &models.KYCCallbackRequest{ProviderRef: "ref-1", Status: "approved"}, true},
		{"rejected", &models.KYCCallbackRequest{ProviderRef: "ref-1", Status: "rejected"}, true},
		{"pending is not terminal", &models.KYCCallbackRequest{ProviderRef: "ref-1", Status: "pending"}, false},
		{"unknown token", &models.KYCCallbackRequest{ProviderRef: "ref-1", Status: "maybe"}, false},
		{"missing status", &models.KYCCallbackRequest{ProviderRef: "ref-1"}, false},
		{"missing reference", &models.KYCCallbackRequest{Status: "approved"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.KYCCallback(tt.req)
			assert.Equal(t, tt.wantOK, v.Valid())
		})
	}
}
