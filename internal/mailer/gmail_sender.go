package mailer

import (
	"context"
	"fmt"

	"github.com/cricbid/cricbid-BE/internal/util"
	"github.com/wneessen/go-mail"
)

const (
	smtpGmailHost = "smtp.gmail.com"
	smtpGmailPort = 587

	senderEmailName    = "CricBid"
	senderEmailAddress = "cricbid.auctions@gmail.com"
)

// EmailSender sends transactional mail to team owners.
type EmailSender interface {
	SendSaleConfirmation(to string, playerName, teamName string, finalPrice int64) error
}

type GmailSender struct {
	client *mail.Client
}

func NewGmailSender(username, password string) (*GmailSender, error) {
	client, err := mail.NewClient(smtpGmailHost, mail.WithPort(smtpGmailPort), mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username), mail.WithPassword(password))
	if err != nil {
		return nil, err
	}
	if err = client.DialWithContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	return &GmailSender{
		client: client,
	}, nil
}

// SendSaleConfirmation mails the winning team's owner after a lot settles.
func (sender *GmailSender) SendSaleConfirmation(to string, playerName, teamName string, finalPrice int64) error {
	msg := mail.NewMsg()

	if err := msg.FromFormat(senderEmailName, senderEmailAddress); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}

	msg.Subject(fmt.Sprintf("%s is yours!", playerName))

	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}

	body := fmt.Sprintf("<p>Congratulations! <b>%s</b> has been sold to <b>%s</b> for <b>%s</b>.</p>",
		playerName, teamName, util.FormatMoney(finalPrice))
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := sender.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
