package mail

import (
	"bytes"
	"context"
	"errors"
	"log"

	"quotedesk/internal/infrastructure/config"
	"quotedesk/internal/usecase/interfaces"

	gomail "github.com/wneessen/go-mail"
)

var ErrMissingSMTPHost = errors.New("missing SMTP_HOST")

// SMTPDispatcher delivers quote emails over SMTP. In mock mode (env toggle,
// for local dev without a mail server) it logs instead of dialing.
type SMTPDispatcher struct {
	client   *gomail.Client
	from     string
	mockMode bool
}

var _ interfaces.IMailDispatcher = (*SMTPDispatcher)(nil)

func NewSMTPDispatcher(cfg config.MailConfig) (*SMTPDispatcher, error) {
	if cfg.Mock {
		log.Printf("[mail][dispatcher] mock mode enabled")
		return &SMTPDispatcher{from: cfg.From, mockMode: true}, nil
	}

	if cfg.Host == "" {
		log.Printf("[mail][dispatcher] missing SMTP_HOST")
		return nil, ErrMissingSMTPHost
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		log.Printf("[mail][dispatcher] failed creating smtp client err=%v", err)
		return nil, err
	}
	log.Printf("[mail][dispatcher] smtp client initialized host=%s port=%d", cfg.Host, cfg.Port)

	return &SMTPDispatcher{client: client, from: cfg.From}, nil
}

// Send delivers one HTML message with a single binary attachment.
func (d *SMTPDispatcher) Send(ctx context.Context, to, subject, bodyHTML, attachmentName string, attachment []byte) error {
	if d.mockMode {
		log.Printf("[mail][dispatcher] mock send to=%s subject=%q attachment=%s bytes=%d", to, subject, attachmentName, len(attachment))
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, bodyHTML)
	if len(attachment) > 0 {
		if err := msg.AttachReader(attachmentName, bytes.NewReader(attachment)); err != nil {
			return err
		}
	}

	if err := d.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Printf("[mail][dispatcher] send failed to=%s err=%v", to, err)
		return err
	}
	log.Printf("[mail][dispatcher] send success to=%s subject=%q", to, subject)
	return nil
}
