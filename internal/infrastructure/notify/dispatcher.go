package notify

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"

	"github.com/jhoicas/distribucion-api/internal/application/orders"
	"github.com/jhoicas/distribucion-api/internal/application/transfers"
	"github.com/jhoicas/distribucion-api/pkg/config"
)

var _ transfers.Notifier = (*Dispatcher)(nil)
var _ orders.Notifier = (*Dispatcher)(nil)

// Dispatcher despacha notificaciones de mejor esfuerzo: se invoca después
// del commit y sus fallas se registran, nunca se propagan al llamador.
// Las notificaciones en-app se registran en el log estructurado; los correos
// se envían por SMTP si está configurado.
type Dispatcher struct {
	log  zerolog.Logger
	smtp config.SMTPConfig
}

// NewDispatcher construye el despachador.
func NewDispatcher(log zerolog.Logger, smtpCfg config.SMTPConfig) *Dispatcher {
	return &Dispatcher{log: log, smtp: smtpCfg}
}

// Notify registra una notificación en-app para el destinatario.
func (d *Dispatcher) Notify(recipientID, event string, payload map[string]any) {
	d.log.Info().
		Str("recipient", recipientID).
		Str("event", event).
		Fields(payload).
		Msg("notificación despachada")
}

// Email envía un correo por SMTP, mejor esfuerzo. Sin configuración SMTP
// solo registra el intento.
func (d *Dispatcher) Email(recipientEmail, subject, body string) {
	if d.smtp.Host == "" {
		d.log.Debug().
			Str("to", recipientEmail).
			Str("subject", subject).
			Msg("SMTP no configurado, correo omitido")
		return
	}

	e := email.NewEmail()
	e.From = d.smtp.From
	e.To = []string{recipientEmail}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", d.smtp.Host, d.smtp.Port)
	var auth smtp.Auth
	if d.smtp.User != "" {
		auth = smtp.PlainAuth("", d.smtp.User, d.smtp.Password, d.smtp.Host)
	}
	start := time.Now()
	if err := e.Send(addr, auth); err != nil {
		d.log.Error().Err(err).
			Str("to", recipientEmail).
			Str("subject", subject).
			Msg("fallo enviando correo")
		return
	}
	d.log.Info().
		Str("to", recipientEmail).
		Dur("elapsed", time.Since(start)).
		Msg("correo enviado")
}
