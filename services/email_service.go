package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/soccer-tournament/config"
	"github.com/google/uuid"
)

// Mailer sends one message to a list of recipients.
type Mailer interface {
	SendEmail(to []string, subject string, body string) error
}

const (
	smtpDialTimeout  = 10 * time.Second
	smtpImplicitPort = 465
)

type EmailService struct {
	cfg *config.Config
	now func() time.Time
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg, now: time.Now}
}

// SendEmail отправляет одно HTML-письмо всем адресатам за одну SMTP-сессию.
func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	client, err := s.dial()
	if err != nil {
		return err
	}
	defer client.Quit()

	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("ошибка аутентификации SMTP: %w", err)
		}
	}
	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("ошибка MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("ошибка RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("ошибка команды DATA: %w", err)
	}
	if _, err := w.Write(buildMessage(s.cfg.SMTPFrom, to, subject, body, s.now())); err != nil {
		w.Close()
		return fmt.Errorf("ошибка записи сообщения: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия DATA: %w", err)
	}
	return nil
}

// dial opens implicit TLS on port 465 and upgrades with STARTTLS elsewhere
// when the server offers it.
func (s *EmailService) dial() (*smtp.Client, error) {
	addr := net.JoinHostPort(s.cfg.SMTPHost, strconv.Itoa(s.cfg.SMTPPort))
	tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}
	dialer := &net.Dialer{Timeout: smtpDialTimeout}

	var conn net.Conn
	var err error
	if s.cfg.SMTPPort == smtpImplicitPort {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка соединения с SMTP %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ошибка создания SMTP клиента: %w", err)
	}
	if s.cfg.SMTPPort != smtpImplicitPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				client.Close()
				return nil, fmt.Errorf("ошибка команды STARTTLS: %w", err)
			}
		}
	}
	return client, nil
}

func buildMessage(from string, to []string, subject, body string, date time.Time) []byte {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("Message-ID: <" + uuid.NewString() + "@" + domain + ">\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

var matchReminderTemplate = template.Must(template.New("match_reminder").Parse(`<p>Hello {{.Name}},</p>
<p>This is a reminder for <strong>{{.Home}} vs {{.Away}}</strong> ({{.Tournament}}) on {{.Date}} at {{.Venue}}.</p>
{{if .Message}}<p>{{.Message}}</p>{{end}}`))

// MatchReminderData fills the reminder email template.
type MatchReminderData struct {
	Name       string
	Home       string
	Away       string
	Tournament string
	Date       string
	Venue      string
	Message    string
}

func renderMatchReminder(data MatchReminderData) (string, error) {
	var body bytes.Buffer
	if err := matchReminderTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("ошибка выполнения шаблона напоминания: %w", err)
	}
	return body.String(), nil
}
