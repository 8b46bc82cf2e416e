// Package escalation decides what a follow-up letter says at each
// escalation level. It is a pure function of the level: whether a follow-up
// is due at all is decided by the caller.
package escalation

// Tier is the severity of a follow-up letter.
type Tier int

const (
	TierReminder    Tier = 1
	TierAssertive   Tier = 2
	TierFinalDemand Tier = 3
)

func (t Tier) String() string {
	switch t {
	case TierReminder:
		return "reminder"
	case TierAssertive:
		return "assertive"
	case TierFinalDemand:
		return "final_demand"
	default:
		return "unknown"
	}
}

// Warning texts closing each follow-up letter.
const (
	ResponseWarning  = "I expect a response within 15 days of receiving this letter."
	RegulatorWarning = "I am prepared to file a complaint with the Consumer Financial Protection Bureau (CFPB) " +
		"and my state Attorney General's office regarding your failure to comply with federal law. " +
		"I expect an immediate response to avoid further action."
)

// Directive tells the letter writer how to phrase the next follow-up.
type Directive struct {
	Tier Tier
	Tone string
	// WarningText closes the letter.
	WarningText string
	// FollowUpNumber is 1 for the first follow-up, 2 for the second, and so on.
	FollowUpNumber int
	// Ordinal names the request in prose ("second", "third", ...).
	Ordinal         string
	CitesRegulators bool
}

// Decide maps the current escalation level (follow-ups already sent) to the
// directive for the next follow-up. Levels >= 2 clamp to the final demand.
func Decide(level int) Directive {
	if level < 0 {
		level = 0
	}
	n := level + 1

	switch {
	case level == 0:
		return Directive{
			Tier:           TierReminder,
			Tone:           "polite but firm reminder",
			WarningText:    ResponseWarning,
			FollowUpNumber: n,
			Ordinal:        ordinal(n),
		}
	case level == 1:
		return Directive{
			Tier:           TierAssertive,
			Tone:           "more assertive follow-up",
			WarningText:    ResponseWarning,
			FollowUpNumber: n,
			Ordinal:        ordinal(n),
		}
	default:
		return Directive{
			Tier:            TierFinalDemand,
			Tone:            "final demand",
			WarningText:     RegulatorWarning,
			FollowUpNumber:  n,
			Ordinal:         ordinal(n),
			CitesRegulators: true,
		}
	}
}

// ordinal names the n-th request counting the original letter as the first.
func ordinal(followUp int) string {
	switch followUp + 1 {
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	default:
		return "further"
	}
}
