package services_test

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
)

// fixedClock pins Now to a single instant so day-boundary logic is
// deterministic in tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// fakeLedger is an in-memory ActivityRepositoryWithTx. The compensation
// engine reads back sums over what it has already posted within the same
// run, so canned mock returns cannot express the ledger; this fake
// accumulates activities and derives every sum the way the real repository
// does.
type fakeLedger struct {
	activities []domain.Activity

	// failType makes CreateActivity fail when posting this activity type,
	// for exercising mid-transaction rollback.
	failType domain.ActivityType
}

var _ portsrepo.ActivityRepositoryWithTx = (*fakeLedger)(nil)

func (l *fakeLedger) seed(accountID string, activityType domain.ActivityType, amount string, wallet domain.WalletType, at time.Time) {
	l.activities = append(l.activities, domain.Activity{
		ActivityID: "seed-" + strconv.Itoa(len(l.activities)),
		AccountID:  accountID,
		Type:       activityType,
		Amount:     decimal.RequireFromString(amount),
		Status:     domain.StatusDone,
		Wallet:     wallet,
		AuditFields: domain.AuditFields{
			CreatedAt:     at,
			LastUpdatedAt: at,
		},
	})
}

func (l *fakeLedger) seedCashout(activityID, accountID, amount string, wallet domain.WalletType, status domain.ActivityStatus, at time.Time) {
	l.activities = append(l.activities, domain.Activity{
		ActivityID: activityID,
		AccountID:  accountID,
		Type:       domain.ActivityCashout,
		Amount:     decimal.RequireFromString(amount),
		Status:     status,
		Wallet:     wallet,
		AuditFields: domain.AuditFields{
			CreatedAt:     at,
			LastUpdatedAt: at,
		},
	})
}

func (l *fakeLedger) CreateActivity(_ context.Context, activity domain.Activity) error {
	if l.failType != "" && activity.Type == l.failType {
		return assert.AnError
	}
	l.activities = append(l.activities, activity)
	return nil
}

func (l *fakeLedger) FindActivityByID(_ context.Context, activityID string) (*domain.Activity, error) {
	for i := range l.activities {
		if l.activities[i].ActivityID == activityID {
			activity := l.activities[i]
			return &activity, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func matchesAnyType(activityType domain.ActivityType, types []domain.ActivityType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if activityType == t {
			return true
		}
	}
	return false
}

func (l *fakeLedger) SumActivities(_ context.Context, accountID string, wallet domain.WalletType, types ...domain.ActivityType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range l.activities {
		if a.AccountID != accountID || a.Wallet != wallet || !matchesAnyType(a.Type, types) {
			continue
		}
		total = total.Add(a.Amount)
	}
	return total, nil
}

func (l *fakeLedger) SumActivitiesBetween(_ context.Context, accountID string, wallet domain.WalletType, activityType domain.ActivityType, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range l.activities {
		if a.AccountID != accountID || a.Wallet != wallet || a.Type != activityType {
			continue
		}
		if a.CreatedAt.Before(from) || !a.CreatedAt.Before(to) {
			continue
		}
		total = total.Add(a.Amount)
	}
	return total, nil
}

func (l *fakeLedger) SumWalletSigned(_ context.Context, accountID string, wallet domain.WalletType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range l.activities {
		if a.AccountID != accountID || a.Wallet != wallet {
			continue
		}
		if a.Type == domain.ActivityCashout {
			if a.Status != domain.StatusDenied {
				total = total.Sub(a.Amount)
			}
			continue
		}
		total = total.Add(a.Amount)
	}
	return total, nil
}

func (l *fakeLedger) HasCashoutBetween(_ context.Context, accountID string, wallet domain.WalletType, from, to time.Time) (bool, error) {
	for _, a := range l.activities {
		if a.AccountID != accountID || a.Wallet != wallet || a.Type != domain.ActivityCashout {
			continue
		}
		if !a.CreatedAt.Before(from) && a.CreatedAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (l *fakeLedger) HasPendingCashout(_ context.Context, accountID string, wallet domain.WalletType) (bool, error) {
	for _, a := range l.activities {
		if a.AccountID != accountID || a.Wallet != wallet || a.Type != domain.ActivityCashout {
			continue
		}
		if a.Status == domain.StatusRequested || a.Status == domain.StatusApproved {
			return true, nil
		}
	}
	return false, nil
}

func (l *fakeLedger) UpdateActivityStatus(_ context.Context, activityID string, status domain.ActivityStatus, note string, updatedBy string, at time.Time) error {
	for i := range l.activities {
		if l.activities[i].ActivityID == activityID {
			l.activities[i].Status = status
			l.activities[i].Note = note
			l.activities[i].LastUpdatedBy = updatedBy
			l.activities[i].LastUpdatedAt = at
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (l *fakeLedger) ListActivities(_ context.Context, accountID string, wallet domain.WalletType, limit int, nextToken *string) ([]domain.Activity, *string, error) {
	var filtered []domain.Activity
	for i := len(l.activities) - 1; i >= 0; i-- {
		if l.activities[i].AccountID == accountID && l.activities[i].Wallet == wallet {
			filtered = append(filtered, l.activities[i])
		}
	}
	start := 0
	if nextToken != nil {
		parsed, err := strconv.Atoi(*nextToken)
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		start = parsed
	}
	if start >= len(filtered) {
		return nil, nil, nil
	}
	end := start + limit
	if end >= len(filtered) {
		return filtered[start:], nil, nil
	}
	next := strconv.Itoa(end)
	return filtered[start:end], &next, nil
}

// WithTx snapshots the ledger and truncates back on error, mirroring the
// all-or-nothing behavior of the real transactional repository.
func (l *fakeLedger) WithTx(_ context.Context, fn func(txRepo portsrepo.ActivityRepositoryFacade) error) error {
	snapshot := len(l.activities)
	if err := fn(l); err != nil {
		l.activities = l.activities[:snapshot]
		return err
	}
	return nil
}

// countByType counts posted activities of one type for an account, across
// all wallets.
func (l *fakeLedger) countByType(accountID string, activityType domain.ActivityType) int {
	count := 0
	for _, a := range l.activities {
		if a.AccountID == accountID && a.Type == activityType {
			count++
		}
	}
	return count
}
