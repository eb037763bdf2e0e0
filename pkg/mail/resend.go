package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers the digest through the Resend API. Delivery is the
// one stage whose failure is fatal to the run.
type ResendSender struct {
	client *resend.Client
	from   string
	to     string
}

func NewResendSender(apiKey, from, to string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (s *ResendSender) Send(ctx context.Context, subject, html string) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
