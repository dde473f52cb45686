package inventory

// DocKind identifies what a document is.
type DocKind string

const (
	DocBrochure      DocKind = "brochure"
	DocStoreCatalog  DocKind = "store-catalog"
	DocErrorResponse DocKind = "error-response"
)

// DocumentContent is the body of a Document item.
type DocumentContent struct {
	Kind DocKind `yaml:"kind"`

	// InResponseTo holds the letter body a brochure answers.
	InResponseTo string `yaml:"in_response_to,omitempty"`

	// Error is set for error-response documents.
	Error *ErrorResponse `yaml:"error,omitempty"`
}

// FailureKind classifies an expected, in-game failure. These are gameplay
// outcomes delivered as mail, never Go errors.
type FailureKind string

const (
	FailBadNumber        FailureKind = "bad-number"
	FailPaymentMismatch  FailureKind = "payment-mismatch"
	FailPaymentWrong     FailureKind = "payment-wrong"
	FailWrongAddress     FailureKind = "wrong-address"
	FailMissingEnclosure FailureKind = "missing-enclosure"
	FailWrongDepartment  FailureKind = "wrong-department"
	FailOutOfStock       FailureKind = "out-of-stock"
)

// ErrorResponse is the structured payload of an error-response document.
// Only the fields relevant to Kind are populated.
type ErrorResponse struct {
	Kind FailureKind

	// Input is the offending text for bad-number.
	Input string

	// Enclosed and Specified are set for payment-mismatch.
	Enclosed  int
	Specified int

	// Should and Actual are set for payment-wrong.
	Should int
	Actual int

	// Address is set for wrong-address and wrong-department.
	Address string

	// Form is set for wrong-department.
	Form FormKind

	// Item is set for out-of-stock.
	Item string
}

// FormKind names a form. The layout of each kind lives with the game rules.
type FormKind string

const (
	FormSTO001          FormKind = "STO-001"
	FormENV001          FormKind = "ENV-001"
	FormEnvelopeAddress FormKind = "Envelope Address"
)
