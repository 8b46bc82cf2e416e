package letter

import (
	"bytes"
	"text/template"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
)

const dateLayout = "January 2, 2006"

const addressBlock = `{{define "address"}}{{.Name}}
{{.AddressLine1}}{{if .AddressLine2}}
{{.AddressLine2}}{{end}}
{{.City}}, {{.State}} {{.ZipCode}}{{end}}`

const disputeLetter = `{{define "dispute"}}{{template "address" .From}}

{{.Date}}

{{template "address" .To}}

Dear Sir or Madam:

I am writing to dispute the following information in my credit file. The items I dispute are inaccurate and I am requesting that they be removed or corrected.

DISPUTED ACCOUNT DETAILS:
Creditor: {{.Facts.CreditorName}}
Account Number: {{.Facts.AccountNumber}}
Dispute Reason: {{.Facts.Reason}}

Under the Fair Credit Reporting Act (FCRA), you are required to investigate and verify the accuracy of this information within 30 days of receiving this letter. If you cannot verify this information, it must be removed from my credit report immediately.

I am requesting a complete investigation of this matter and written confirmation of the results. If this information is found to be inaccurate, I expect it to be deleted from my credit report and all inquirers from the past six months to be notified of the deletion.

I am also requesting a copy of the documents used to verify this disputed information. Please send your response to the address above.

Thank you for your prompt attention to this matter.

Sincerely,

{{.From.Name}}
{{end}}`

const followUpLetter = `{{define "follow_up"}}{{template "address" .From}}

{{.Date}}

{{template "address" .To}}

Re: Follow-up #{{.Directive.FollowUpNumber}} - Disputed Account #{{.Facts.AccountNumber}}

Dear Sir or Madam:

This is my {{.Directive.Ordinal}} request regarding the disputed information in my credit file. I sent my original dispute letter on {{.SentDate}}, which was {{.DaysSince}} days ago.

Under the Fair Credit Reporting Act (15 U.S.C. § 1681), you are required to investigate disputes within 30 days. To date, I have not received any response or confirmation of your investigation.

DISPUTED ACCOUNT:
Creditor: {{.Facts.CreditorName}}
Account Number: {{.Facts.AccountNumber}}

I am formally requesting:
1. Immediate investigation of this disputed item
2. Written confirmation of your findings
3. Deletion of inaccurate information if it cannot be verified

{{.Directive.WarningText}}

Sincerely,

{{.From.Name}}
{{end}}`

var templates = template.Must(template.New("letters").Parse(addressBlock + disputeLetter + followUpLetter))

type letterData struct {
	Date      string
	SentDate  string
	DaysSince int
	From      domain.MailingAddress
	To        domain.MailingAddress
	Facts     domain.DisputeFacts
	Directive escalation.Directive
}

func (s *Service) data(f domain.DisputeFacts) letterData {
	to, ok := domain.BureauMailingAddress(f.Bureau)
	if !ok {
		to = domain.MailingAddress{Name: f.Bureau.String()}
	}
	return letterData{
		Date:     s.now().Format(dateLayout),
		SentDate: sentDate(f),
		From:     f.Sender,
		To:       to,
		Facts:    f,
	}
}

func (s *Service) renderDispute(f domain.DisputeFacts) string {
	return execute("dispute", s.data(f))
}

func (s *Service) renderFollowUp(f domain.DisputeFacts, dir escalation.Directive, daysSince int) string {
	d := s.data(f)
	d.Directive = dir
	d.DaysSince = daysSince
	return execute("follow_up", d)
}

// execute renders a parsed template. The templates only read struct fields,
// so an error means a programming mistake.
func execute(name string, data letterData) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		panic("letter: render " + name + ": " + err.Error())
	}
	return buf.String()
}
