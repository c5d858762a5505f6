package port

import "context"

// InvoiceEmail is the content of an invoice notification.
type InvoiceEmail struct {
	ToEmail       string
	ToName        string
	BusinessName  string
	InvoiceNumber string
	Amount        string
	AmountInWords string
	DueDate       string
	ViewURL       string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
