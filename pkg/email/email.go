package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/logger"
)

const (
	fromName = "Portfolio Website"
	fromAddr = "no-reply@portfolio.com"

	// Used when the submission arrives without a subject.
	defaultSubject = "New contact form submission"
)

// Mailer sends contact form emails via SMTP. It attempts exactly one delivery
// per call and reports the outcome as a boolean; transport failures of any
// kind are logged and never raised.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	toEmail  string
	timeout  time.Duration
}

// NewMailer creates a mailer from the process configuration.
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.EmailHost,
		port:     cfg.EmailPort,
		username: cfg.EmailUser,
		password: cfg.EmailPass,
		toEmail:  cfg.EmailToContact,
		timeout:  time.Duration(cfg.EmailTimeoutSeconds) * time.Second,
	}
}

// htmlBodyTemplate renders the HTML alternative of the notification email.
const htmlBodyTemplate = `<p>You have a new contact form submission:</p>
<ul>
  <li><strong>Name:</strong> {{.Name}}</li>
  <li><strong>Email:</strong> {{.Email}}</li>
  <li><strong>Subject:</strong> {{.Subject}}</li>
</ul>
<p><strong>Message</strong></p>
<p>{{.MessageHTML}}</p>
<hr/><p><small>Sent from portfolio website</small></p>`

type emailData struct {
	Name        string
	Email       string
	Subject     string
	MessageHTML template.HTML
}

// Send attempts one delivery and reports the outcome. The caller treats false
// uniformly regardless of cause.
func (m *Mailer) Send(ctx context.Context, req *domain.ContactRequest) bool {
	if !m.IsConfigured() {
		logger.Log.Warn("email transport not configured, dropping contact email")
		return false
	}

	msg, err := m.compose(req)
	if err != nil {
		logger.Log.Error("failed to compose contact email", "error", err)
		return false
	}

	if err := m.deliver(ctx, msg); err != nil {
		logger.Log.Error("failed to send contact email", "error", err, "host", m.host)
		return false
	}
	return true
}

// IsConfigured checks if the mailer has valid SMTP configuration
func (m *Mailer) IsConfigured() bool {
	return m.host != "" && m.username != "" && m.toEmail != ""
}

// compose builds a multipart/alternative message with a plain-text part and
// an HTML part (submission newlines become line breaks).
func (m *Mailer) compose(req *domain.ContactRequest) ([]byte, error) {
	subject := req.Subject
	if strings.TrimSpace(subject) == "" {
		subject = defaultSubject
	}

	text := fmt.Sprintf(
		"You have a new contact form submission:\n\n"+
			"Name: %s\nEmail: %s\nSubject: %s\n\n"+
			"Message:\n%s\n\n---\nSent from portfolio website.",
		req.Name, req.Email, req.Subject, req.Message,
	)

	tmpl, err := template.New("contact").Parse(htmlBodyTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}
	var html bytes.Buffer
	if err := tmpl.Execute(&html, emailData{
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		MessageHTML: messageHTML(req.Message),
	}); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %q <%s>\r\n", fromName, fromAddr)
	fmt.Fprintf(&msg, "To: %s\r\n", m.toEmail)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", req.Email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(text)); err != nil {
		return nil, err
	}

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write(html.Bytes()); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// messageHTML escapes the submission message and converts newlines to <br/>.
func messageHTML(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br/>"))
}

// deliver speaks SMTP with explicit deadlines instead of relying on the
// transport's defaults. STARTTLS is used when the server offers it.
func (m *Mailer) deliver(ctx context.Context, msg []byte) error {
	addr := net.JoinHostPort(m.host, m.port)

	dialer := &net.Dialer{Timeout: m.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(m.timeout)); err != nil {
		conn.Close()
		return fmt.Errorf("smtp deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := c.Mail(fromAddr); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(m.toEmail); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return c.Quit()
}
