package smtp

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"

	"hotelbooking/internal/adapters/observability"
)

// Mailer delivers verification codes over SMTP. Outbound sends are
// rate limited client-side so a registration burst cannot hit provider
// throttling.
type Mailer struct {
	client     *mail.Client
	sender     string
	senderName string
	rl         *rate.Limiter
}

func New(host string, port int, user, pass, sender, senderName string, rps int) (*Mailer, error) {
	opts := []mail.Option{mail.WithPort(port)}
	if user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(user),
			mail.WithPassword(pass),
		)
	}
	c, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}
	if rps <= 0 {
		rps = 1
	}
	return &Mailer{
		client:     c,
		sender:     sender,
		senderName: senderName,
		rl:         rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (m *Mailer) SendVerificationCode(ctx context.Context, to, code string) error {
	if err := m.rl.Wait(ctx); err != nil {
		return err
	}
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.senderName, m.sender); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Email Verification")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Your verification code is %s", code))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		observability.ObserveMail("error")
		return err
	}
	observability.ObserveMail("ok")
	return nil
}
