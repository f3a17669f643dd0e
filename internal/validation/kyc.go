package validation

import (
	"fmt"

	"onramp/internal/models"
)

// KYCSubmission validates a KYC submission payload. Validation is
// side-effect free and complete before any state is touched.
func (v *Validator) KYCSubmission(req *models.KYCSubmitRequest) {
	v.Required("documentType", req.DocumentType)
	v.MaxLength("documentType", req.DocumentType, MaxDocumentTypeLength)

	if len(req.Documents) == 0 {
		v.AddError("documents", "must contain at least one document")
		return
	}

	for i, doc := range req.Documents {
		v.Required(fmt.Sprintf("documents[%d].type", i), doc.Type)
		v.Required(fmt.Sprintf("documents[%d].contentType", i), doc.ContentType)
		if doc.FileURL == "" {
			v.AddError(fmt.Sprintf("documents[%d].fileUrl", i), "must not be empty")
			continue
		}
		v.AbsoluteURL(fmt.Sprintf("documents[%d].fileUrl", i), doc.FileURL)
	}
}

// KYCCallback validates a provider callback. The status set is closed:
// anything other than approved/rejected is a validation failure, including
// well-formed but unrecognized tokens.
func (v *Validator) KYCCallback(req *models.KYCCallbackRequest) {
	v.Required("providerReference", req.ProviderRef)
	v.Required("status", req.Status)
	if req.Status != "" {
		v.Check(
			req.Status == string(models.SubmissionStatusApproved) ||
				req.Status == string(models.SubmissionStatusRejected),
			"status",
			"must be approved or rejected",
		)
	}
}
