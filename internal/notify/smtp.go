package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/technova/portfolio-api/internal/config"
	"github.com/technova/portfolio-api/internal/contact"
)

// SMTPSender mails a summary of each contact to the site owner.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender returns nil when cfg lacks host, credentials or destination;
// a nil Sender disables notifications.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	if !cfg.Enabled() {
		return nil
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) from() string {
	return (&mail.Address{Name: s.cfg.FromName, Address: s.cfg.User}).String()
}

// Subject is the mail subject for c.
func Subject(c contact.Contact) string {
	return "New contact from " + c.DisplayName()
}

// Body is the plain-text mail body for c.
func Body(c contact.Contact) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nMessage:\n%s", c.Name, c.Email, c.Message)
}

var headerBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// buildMessage renders the RFC 5322 message with CRLF line endings.
// Visitor input only reaches the headers Q-encoded, so it cannot start a
// new header line.
func (s *SMTPSender) buildMessage(c contact.Contact) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from())
	fmt.Fprintf(&b, "To: %s\r\n", headerBreaks.Replace(s.cfg.Dest))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", Subject(c)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	body := strings.ReplaceAll(Body(c), "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// Send delivers the notification for c. The whole SMTP exchange is bound to
// ctx: its deadline applies to every read and write, and cancelling ctx
// closes the connection.
func (s *SMTPSender) Send(ctx context.Context, c contact.Contact) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer client.Close()

	if !s.cfg.Secure {
		// upgrade when the server offers it, like smtp.SendMail
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}
	if ok, _ := client.Extension("AUTH"); !ok {
		return errors.New("smtp server does not support AUTH")
	}
	if err := client.Auth(smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := client.Mail(s.cfg.User); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := client.Rcpt(s.cfg.Dest); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("get writer: %w", err)
	}
	if _, err := w.Write(s.buildMessage(c)); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return client.Quit()
}

// dial opens the transport: implicit TLS (port 465 style) when Secure,
// plain TCP otherwise.
func (s *SMTPSender) dial(ctx context.Context, addr string) (net.Conn, error) {
	if s.cfg.Secure {
		dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.cfg.Host}}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("tls dial: %w", err)
		}
		return conn, nil
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return conn, nil
}
