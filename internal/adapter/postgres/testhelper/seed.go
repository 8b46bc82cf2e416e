package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a complete mailing address.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:       uuid.New(),
		Email:    "testuser-" + suffix + "@example.com",
		FullName: "Test User " + suffix,
		Role:     domain.UserRoleUser,
		Address: domain.MailingAddress{
			AddressLine1: "123 Main St",
			City:         "Tampa",
			State:        "FL",
			ZipCode:      "33602",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, full_name, role, address_line1, city, state, zip_code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Email, user.FullName, string(user.Role),
		user.Address.AddressLine1, user.Address.City, user.Address.State, user.Address.ZipCode,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedAccount creates a pending derogatory account for the owner.
func SeedAccount(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, bureau domain.Bureau) domain.Account {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	accType := "Credit Card"
	balance := 1250.50
	acc := domain.Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Bureau:        bureau,
		CreditorName:  "Creditor " + uniqueSuffix(),
		AccountNumber: "XXXX" + uniqueSuffix()[:4],
		AccountType:   &accType,
		Balance:       &balance,
		Reason:        "Account does not belong to me",
		Status:        domain.AccountStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO accounts (id, owner_id, bureau, creditor_name, account_number, account_type, balance, reason, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		acc.ID, acc.OwnerID, string(acc.Bureau), acc.CreditorName, acc.AccountNumber,
		acc.AccountType, acc.Balance, acc.Reason, string(acc.Status), acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount insert: %v", err)
	}

	return acc
}

// SeedDispute creates a pending dispute for the account.
func SeedDispute(t *testing.T, pool *pgxpool.Pool, acc domain.Account) domain.Dispute {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	d := domain.Dispute{
		ID:            uuid.New(),
		OwnerID:       acc.OwnerID,
		AccountID:     &acc.ID,
		Bureau:        acc.Bureau,
		CreditorName:  acc.CreditorName,
		AccountNumber: acc.AccountNumber,
		Description:   acc.Reason,
		Status:        domain.DisputeStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO disputes (id, owner_id, account_id, bureau, creditor_name, account_number, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.OwnerID, d.AccountID, string(d.Bureau), d.CreditorName, d.AccountNumber,
		d.Description, string(d.Status), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDispute insert: %v", err)
	}

	return d
}

// SeedSentDispute creates a dispute already mailed at sentAt with a valid tracking id.
func SeedSentDispute(t *testing.T, pool *pgxpool.Pool, acc domain.Account, sentAt time.Time) domain.Dispute {
	t.Helper()
	ctx := context.Background()

	d := SeedDispute(t, pool, acc)
	sentAt = sentAt.UTC().Truncate(time.Microsecond)
	expected := domain.ComputeDeadline(sentAt)
	tracking := "ltr_" + uniqueSuffix() + uniqueSuffix()

	_, err := pool.Exec(ctx,
		`UPDATE disputes SET status = 'sent', sent_date = $2, expected_response_date = $3, tracking_id = $4
		 WHERE id = $1`,
		d.ID, sentAt, expected, tracking,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSentDispute update: %v", err)
	}

	d.Status = domain.DisputeStatusSent
	d.SentDate = &sentAt
	d.ExpectedResponseDate = &expected
	d.TrackingID = &tracking
	return d
}

// SeedBureauResponse attaches a bureau_response document to the dispute.
func SeedBureauResponse(t *testing.T, pool *pgxpool.Pool, d domain.Dispute) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO documents (id, owner_id, account_id, dispute_id, filename, original_filename, file_path, document_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'bureau_response')`,
		id, d.OwnerID, d.AccountID, d.ID, id.String()+".pdf", "response.pdf", "uploads/"+id.String()+".pdf",
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBureauResponse insert: %v", err)
	}
	return id
}
