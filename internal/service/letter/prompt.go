package letter

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
)

const disputeSystemPrompt = "You are a professional credit repair specialist who writes effective, " +
	"legally-compliant dispute letters. Your letters are clear, firm and respectful."

const followUpSystemPrompt = "You are a credit repair specialist handling follow-up correspondence. " +
	"Your letters are professional, firm, and cite relevant laws."

func buildDisputePrompt(f domain.DisputeFacts) string {
	var b strings.Builder
	b.WriteString("Generate a professional, legally-compliant credit dispute letter.\n\n")
	b.WriteString("ACCOUNT INFORMATION:\n")
	fmt.Fprintf(&b, "- Credit Bureau: %s\n", f.Bureau)
	fmt.Fprintf(&b, "- Creditor: %s\n", f.CreditorName)
	fmt.Fprintf(&b, "- Account Number: %s\n", f.AccountNumber)
	fmt.Fprintf(&b, "- Account Type: %s\n", orDefault(f.AccountType, "Not specified"))
	if f.Balance != nil {
		fmt.Fprintf(&b, "- Balance: $%.2f\n", *f.Balance)
	}
	fmt.Fprintf(&b, "- Dispute Reason: %s\n", f.Reason)
	if f.Notes != nil && strings.TrimSpace(*f.Notes) != "" {
		fmt.Fprintf(&b, "- Additional Details: %s\n", strings.TrimSpace(*f.Notes))
	}

	b.WriteString(`
REQUIREMENTS:
1. Formal business letter, professional tone
2. Cite the consumer's rights under the Fair Credit Reporting Act (FCRA)
3. State clearly what is disputed and why
4. Request investigation and correction within 30 days
5. Request written confirmation of the results
6. Keep it concise (300-500 words)
7. Use "Dear Sir or Madam" as greeting and sign off with "Sincerely,"

Do not include the sender's address, threats, or irrelevant information.
Generate ONLY the letter body. Start with the date line.`)
	return b.String()
}

func buildFollowUpPrompt(f domain.DisputeFacts, dir escalation.Directive, daysSince int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s letter for a credit dispute that has not received a response.\n\n", dir.Tone)
	b.WriteString("ORIGINAL DISPUTE:\n")
	fmt.Fprintf(&b, "- Bureau: %s\n", f.Bureau)
	fmt.Fprintf(&b, "- Creditor: %s\n", f.CreditorName)
	fmt.Fprintf(&b, "- Account: %s\n", f.AccountNumber)
	fmt.Fprintf(&b, "- Sent Date: %s\n", sentDate(f))
	fmt.Fprintf(&b, "- Days Since Sent: %d\n\n", daysSince)
	fmt.Fprintf(&b, "This is follow-up #%d.\n\n", dir.FollowUpNumber)

	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("1. Reference the original dispute and the date it was sent\n")
	fmt.Fprintf(&b, "2. Note that %d days have passed\n", daysSince)
	b.WriteString("3. Cite the FCRA requirement to investigate within 30 days\n")
	if dir.CitesRegulators {
		b.WriteString("4. State the intention to file a complaint with the CFPB and the state Attorney General if unresolved\n")
	} else {
		b.WriteString("4. Request an immediate response; do not threaten legal action\n")
	}
	fmt.Fprintf(&b, "5. End with: %q\n", dir.WarningText)
	b.WriteString("6. Keep it concise (200-400 words)\n\n")
	b.WriteString("Generate ONLY the letter body starting with the date.")
	return b.String()
}

func orDefault(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return strings.TrimSpace(*s)
}

func sentDate(f domain.DisputeFacts) string {
	if f.SentDate == nil {
		return "N/A"
	}
	return f.SentDate.Format(dateLayout)
}
