package domain

import "time"

// ResponseWindow is the FCRA investigation period a bureau has to answer a
// mailed dispute.
const ResponseWindow = 30 * 24 * time.Hour

// ComputeDeadline returns the expected response date for a letter mailed at sentAt.
func ComputeDeadline(sentAt time.Time) time.Time {
	return sentAt.Add(ResponseWindow)
}

// DaysElapsed returns the number of whole days between sentAt and now.
// A now before sentAt yields 0.
func DaysElapsed(sentAt, now time.Time) int {
	d := now.Sub(sentAt)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// IsOverdue reports whether now is strictly after the expected response date.
func IsOverdue(expected, now time.Time) bool {
	return now.After(expected)
}
