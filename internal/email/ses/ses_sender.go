// Package ses delivers invoice emails through Amazon SES v2.
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"onebill/internal/config"
	"onebill/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, cfg *config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	subject, text, html, err := RenderInvoiceEmail(msg)
	if err != nil {
		return err
	}

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &html},
					Text: &types.Content{Data: &text},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

var invoiceHTML = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice {{.InvoiceNumber}} from {{.BusinessName}}</h2>
  <p>Hi {{.ToName}},</p>
  <p>{{.BusinessName}} has sent you invoice <strong>{{.InvoiceNumber}}</strong> for <strong>{{.Amount}}</strong>.</p>
  <p style="color: #666;">{{.AmountInWords}}</p>
  {{if .DueDate}}<p>Payment is due by <strong>{{.DueDate}}</strong>.</p>{{end}}
  {{if .ViewURL}}<p style="text-align: center; margin: 30px 0;">
    <a href="{{.ViewURL}}" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Invoice</a>
  </p>{{end}}
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Sent with OneBill</p>
</body>
</html>`))

// RenderInvoiceEmail builds the subject, plain-text and HTML bodies for msg.
func RenderInvoiceEmail(msg port.InvoiceEmail) (subject, text, html string, err error) {
	subject = fmt.Sprintf("Invoice %s from %s", msg.InvoiceNumber, msg.BusinessName)

	var tb bytes.Buffer
	fmt.Fprintf(&tb, "Hi %s,\n\n%s has sent you invoice %s for %s.\n%s\n",
		msg.ToName, msg.BusinessName, msg.InvoiceNumber, msg.Amount, msg.AmountInWords)
	if msg.DueDate != "" {
		fmt.Fprintf(&tb, "\nPayment is due by %s.\n", msg.DueDate)
	}
	if msg.ViewURL != "" {
		fmt.Fprintf(&tb, "\nView it online: %s\n", msg.ViewURL)
	}
	tb.WriteString("\nSent with OneBill")

	var hb bytes.Buffer
	if err := invoiceHTML.Execute(&hb, msg); err != nil {
		return "", "", "", fmt.Errorf("rendering invoice email: %w", err)
	}
	return subject, tb.String(), hb.String(), nil
}
