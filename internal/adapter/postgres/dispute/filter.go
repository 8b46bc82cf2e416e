package dispute

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// Filter defines parameters for listing disputes.
type Filter struct {
	// OwnerID restricts results to one owner. nil lists across owners
	// (reconciliation and admin views).
	OwnerID *uuid.UUID

	// Statuses restricts results to the given statuses. Empty means any.
	Statuses []domain.DisputeStatus

	// AccountID restricts results to disputes of one account.
	AccountID *uuid.UUID

	// RequireTrackingID keeps only disputes with a non-null tracking id.
	RequireTrackingID bool

	// AwaitingAt keeps disputes awaiting a bureau response at that time.
	AwaitingAt *time.Time

	// FollowUpDueBefore keeps disputes with no follow-up yet or whose last
	// follow-up is at or before it.
	FollowUpDueBefore *time.Time

	// After starts the listing past this (created_at, id) position.
	After *domain.DisputeCursor

	// Limit is the maximum number of disputes to return. Default: 50, max: 1000.
	Limit int

	// Offset is the number of disputes to skip.
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 1000
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

func fromDomain(df domain.DisputeFilter) Filter {
	return Filter{
		OwnerID:           df.OwnerID,
		Statuses:          df.Statuses,
		AccountID:         df.AccountID,
		RequireTrackingID: df.RequireTrackingID,
		AwaitingAt:        df.AwaitingAt,
		FollowUpDueBefore: df.FollowUpDueBefore,
		After:             df.After,
		Limit:             df.Limit,
		Offset:            df.Offset,
	}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// buildList renders the list query for f. Oldest first so batch runs are fair.
func (f Filter) buildList() (string, []any, error) {
	f.normalize()

	q := psql.Select(disputeColumns).From("disputes")
	q = f.apply(q)

	return q.OrderBy("created_at ASC", "id ASC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
}

func (f Filter) apply(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.OwnerID != nil {
		q = q.Where(squirrel.Eq{"owner_id": *f.OwnerID})
	}
	if f.AccountID != nil {
		q = q.Where(squirrel.Eq{"account_id": *f.AccountID})
	}
	if len(f.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"status": statusStrings(f.Statuses)})
	}
	if f.RequireTrackingID {
		q = q.Where(squirrel.NotEq{"tracking_id": nil})
	}
	if f.AwaitingAt != nil {
		q = q.Where(awaitingPredicate(*f.AwaitingAt))
	}
	if f.FollowUpDueBefore != nil {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"last_follow_up_at": nil},
			squirrel.LtOrEq{"last_follow_up_at": *f.FollowUpDueBefore},
		})
	}
	if f.After != nil {
		q = q.Where(squirrel.Expr("(created_at, id) > (?, ?)", f.After.CreatedAt, f.After.ID))
	}
	return q
}

// awaitingPredicate matches sent/delivered disputes past their deadline with
// no bureau_response document attached.
func awaitingPredicate(now time.Time) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"status": statusStrings([]domain.DisputeStatus{domain.DisputeStatusSent, domain.DisputeStatusDelivered})},
		squirrel.NotEq{"expected_response_date": nil},
		squirrel.Lt{"expected_response_date": now},
		squirrel.Expr(`NOT EXISTS (
			SELECT 1 FROM documents doc
			WHERE doc.dispute_id = disputes.id AND doc.document_type = 'bureau_response')`),
	}
}

func statusStrings(ss []domain.DisputeStatus) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}
