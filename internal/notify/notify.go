// Package notify envia as notificações do sistema por e-mail. O envio
// fica atrás de uma interface para os serviços serem testáveis sem um
// servidor SMTP.
package notify

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// Mensagem é o contrato de despacho: destinatários, assunto e corpo
// HTML.
type Mensagem struct {
	Para      []string
	Assunto   string
	CorpoHTML string
}

// Notifier despacha uma mensagem. A falha de entrega é devolvida ao
// chamador, que decide se ela interrompe ou não o fluxo.
type Notifier interface {
	Enviar(m Mensagem) error
}

// SMTPNotifier envia via servidor SMTP configurado por ambiente
// (SMTP_ADDR, SMTP_FROM e, opcionalmente, SMTP_USER/SMTP_PASS).
type SMTPNotifier struct {
	Addr string
	From string
	Auth smtp.Auth
}

func NewSMTPNotifierFromEnv() *SMTPNotifier {
	n := &SMTPNotifier{
		Addr: os.Getenv("SMTP_ADDR"),
		From: os.Getenv("SMTP_FROM"),
	}
	if user := os.Getenv("SMTP_USER"); user != "" {
		host := n.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		n.Auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASS"), host)
	}
	return n
}

func (n *SMTPNotifier) Enviar(m Mensagem) error {
	if n.Addr == "" || n.From == "" {
		return fmt.Errorf("notificador SMTP não configurado (SMTP_ADDR/SMTP_FROM)")
	}

	var corpo strings.Builder
	fmt.Fprintf(&corpo, "From: %s\r\n", n.From)
	fmt.Fprintf(&corpo, "To: %s\r\n", strings.Join(m.Para, ", "))
	fmt.Fprintf(&corpo, "Subject: %s\r\n", m.Assunto)
	corpo.WriteString("MIME-Version: 1.0\r\n")
	corpo.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	corpo.WriteString("\r\n")
	corpo.WriteString(m.CorpoHTML)

	return smtp.SendMail(n.Addr, n.Auth, n.From, m.Para, []byte(corpo.String()))
}
