package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidGSTIN           = errors.New("invalid GSTIN")
	ErrDuplicateGSTIN         = errors.New("GSTIN already registered")
	ErrInvalidInvoice         = errors.New("invoice failed validation")
	ErrInvalidStatus          = errors.New("invalid invoice status transition")
	ErrInvoiceDeleted         = errors.New("invoice has been deleted")
	ErrClientBusinessMismatch = errors.New("client does not belong to this business")
	ErrMissingRecipient       = errors.New("client has no email address")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrRegistryUnavailable    = errors.New("taxpayer registry unavailable")
	ErrInvalidTemplate        = errors.New("invalid invoice number template")
	ErrInvalidInput           = errors.New("invalid input")
)
