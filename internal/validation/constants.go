package validation

const (
	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxEmailLength        = 254
	MaxDocumentTypeLength = 100
)
