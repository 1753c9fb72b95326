package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailNotifier отправляет письма через Resend.
type EmailNotifier struct {
	client *resend.Client
	from   string
	// Адрес администратора для служебных уведомлений (admin_new_user).
	adminEmail string
}

func NewEmailNotifier(apiKey, from, adminEmail string) *EmailNotifier {
	return &EmailNotifier{
		client:     resend.NewClient(apiKey),
		from:       from,
		adminEmail: adminEmail,
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, msg Message) error {
	subject, html := renderEmail(msg)
	if subject == "" {
		return fmt.Errorf("email: unknown notification kind %q", msg.Kind)
	}

	to := msg.RecipientEmail
	if msg.Kind == KindAdminNewUser {
		to = n.adminEmail
	}
	if to == "" {
		// Некому отправлять — не ошибка доставки.
		slog.Warn("email_no_recipient", "kind", msg.Kind)
		return nil
	}

	sent, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	slog.Info("email_sent", "kind", msg.Kind, "to", to, "message_id", sent.Id)
	return nil
}

func renderEmail(msg Message) (subject, html string) {
	p := msg.Payload
	name := msg.RecipientName

	switch msg.Kind {
	case KindWelcome:
		return "Welcome to FitBook!",
			fmt.Sprintf("<h2>Welcome, %s!</h2><p>Your registration is successful.</p><p>You can log in here: <a href=%q>Login</a></p>",
				name, p["login_url"])

	case KindAdminNewUser:
		return "New Registration Alert",
			fmt.Sprintf("<h2>New User Registered</h2><p>Login: %s</p><p>Email: %s</p><p>Phone: %s</p>",
				p["login"], p["email"], p["phone"])

	case KindBookingConfirmed:
		return "Booking Confirmation",
			fmt.Sprintf("<h2>Your Booking Is Confirmed!</h2><p>Hello %s,</p><p>You booked: <b>%s</b></p><p>Trainer: <b>%s</b></p><p>%s</p>",
				name, p["service"], p["trainer"], p["slot"])

	case KindBookingUpdated:
		return "Booking Updated",
			fmt.Sprintf("<h2>Your Booking Was Updated</h2><p>Hello %s,</p><p>New slot: <b>%s</b></p>",
				name, p["slot"])

	case KindBookingCanceled:
		return "Booking Canceled",
			fmt.Sprintf("<h2>Your Booking Was Canceled</h2><p>Hello %s,</p><p>Your reservation is canceled.</p>", name)

	case KindBookingRestored:
		return "Booking Restored",
			fmt.Sprintf("<h2>Your Booking Was Restored</h2><p>Hello %s,</p><p>Your reservation is active again: <b>%s</b></p>",
				name, p["slot"])
	}

	return "", ""
}
