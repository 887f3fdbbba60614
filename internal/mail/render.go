package mail

import (
	"fmt"
	"html"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/viasolenergia/leads-api/internal/lead"
)

// Meta carries the request metadata rendered into the staff notification.
type Meta struct {
	SourceAddr string
	UserAgent  string
	SiteURL    string
}

// ReceiptSubject is the subject of the acknowledgment sent to the lead.
const ReceiptSubject = "Recebemos seu contato | Via Sol Energia"

// supportPhone is printed in the lead receipt so people can call instead of
// waiting for the reply.
const supportPhone = "(34) 3231-0154"

const placeholder = "—"

const defaultPhoneRegion = "BR"

// StaffSubject builds the subject line of the staff notification.
func StaffSubject(s lead.Submission) string {
	return "Novo lead do site: " + s.Name
}

// RenderStaffNotification builds the HTML document mailed to the sales inbox.
// Every value that originates from the request is escaped, including the
// tracking fields and the user-agent.
func RenderStaffNotification(s lead.Submission, meta Meta) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:640px;margin:0 auto;color:#1f2933">`)
	b.WriteString(`<h2 style="color:#b45309">Novo lead recebido pelo site</h2>`)

	b.WriteString(`<table cellpadding="6" cellspacing="0" style="width:100%;border-collapse:collapse">`)
	row(&b, "Nome", esc(s.Name))
	row(&b, "E-mail", fmt.Sprintf(`<a href="mailto:%s">%s</a>`, esc(s.Email), esc(s.Email)))
	row(&b, "Telefone", orDash(displayPhone(s.Phone)))
	row(&b, "Cidade / UF", cityState(s))
	row(&b, "Conta média de energia", orDash(s.AverageBill))
	row(&b, "Tipo de imóvel", orDash(s.PropertyType))
	row(&b, "Mensagem", messageHTML(s.Message))
	b.WriteString(`</table>`)

	b.WriteString(`<h3 style="margin-top:24px;color:#52606d">Origem</h3>`)
	b.WriteString(`<table cellpadding="6" cellspacing="0" style="width:100%;border-collapse:collapse;font-size:13px;color:#52606d">`)
	pagePath := s.PagePath
	if pagePath == "" {
		pagePath = meta.SiteURL
	}
	row(&b, "Página", esc(pagePath))
	row(&b, "Referência", orDash(s.Referrer))
	row(&b, "utm_source", orDash(s.UTMSource))
	row(&b, "utm_medium", orDash(s.UTMMedium))
	row(&b, "utm_campaign", orDash(s.UTMCampaign))
	row(&b, "utm_term", orDash(s.UTMTerm))
	row(&b, "utm_content", orDash(s.UTMContent))
	row(&b, "IP", orDash(meta.SourceAddr))
	row(&b, "User-Agent", orDash(meta.UserAgent))
	b.WriteString(`</table>`)

	b.WriteString(`</div>`)
	return b.String()
}

// RenderLeadReceipt builds the short acknowledgment mailed back to the lead.
func RenderLeadReceipt(s lead.Submission, siteURL string) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:560px;margin:0 auto;color:#1f2933">`)
	b.WriteString(fmt.Sprintf(`<h2 style="color:#b45309">Olá, %s!</h2>`, esc(s.Name)))
	b.WriteString(`<p>Recebemos o seu contato e um dos nossos consultores vai retornar em breve com a sua simulação de economia.</p>`)
	b.WriteString(fmt.Sprintf(`<p>Se preferir, fale direto com a gente pelo telefone <strong>%s</strong>.</p>`, supportPhone))
	b.WriteString(fmt.Sprintf(`<p><a href="%s" style="color:#b45309">%s</a></p>`, esc(siteURL), esc(siteURL)))
	b.WriteString(`<p style="font-size:12px;color:#9aa5b1">Via Sol Energia — energia solar para sua casa ou empresa.</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

func row(b *strings.Builder, label, valueHTML string) {
	fmt.Fprintf(b,
		`<tr><td style="border-bottom:1px solid #e4e7eb;white-space:nowrap"><strong>%s</strong></td><td style="border-bottom:1px solid #e4e7eb">%s</td></tr>`,
		label, valueHTML)
}

func esc(s string) string {
	return html.EscapeString(s)
}

// orDash escapes the value, or renders the placeholder when it is absent.
func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return esc(s)
}

func cityState(s lead.Submission) string {
	switch {
	case s.City != "" && s.State != "":
		return esc(s.City + " / " + s.State)
	case s.City != "":
		return esc(s.City)
	case s.State != "":
		return esc(s.State)
	default:
		return placeholder
	}
}

func messageHTML(msg string) string {
	if msg == "" {
		return placeholder
	}
	escaped := esc(msg)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

// displayPhone pretty-prints the phone for the sales team when it parses as a
// Brazilian number; anything else is shown exactly as typed.
func displayPhone(raw string) string {
	if raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
