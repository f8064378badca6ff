package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
)

// Clock supplies the engine's notion of now. Day boundaries for the sales
// match cap and cashout schedules depend on it, so tests inject a fixed one.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// NewSystemClock returns a Clock pinned to the given business timezone.
func NewSystemClock(loc *time.Location) Clock {
	return systemClock{loc: loc}
}

// planSettings is the immutable parameter snapshot one compensation run works
// from. Loading everything up front keeps a mid-run settings update from
// splitting a single run across two parameter sets.
type planSettings struct {
	pointValueConversion  decimal.Decimal
	directReferralPct     decimal.Decimal // stored as a whole percentage, e.g. 10 means 10%
	referralBonusCount    int64
	franchiseCommission   decimal.Decimal
	fifthPairPct          decimal.Decimal
	flushOutPenaltyWeak   decimal.Decimal
	flushOutPenaltyStrong decimal.Decimal
}

func loadPlanSettings(ctx context.Context, repo portsrepo.SettingRepositoryFacade) (*planSettings, error) {
	ps := &planSettings{}

	for _, entry := range []struct {
		name domain.SettingName
		dst  *decimal.Decimal
	}{
		{domain.SettingPointValueConversion, &ps.pointValueConversion},
		{domain.SettingDirectReferralPercentage, &ps.directReferralPct},
		{domain.SettingFranchiseCommissionPct, &ps.franchiseCommission},
		{domain.SettingFifthPairPercentage, &ps.fifthPairPct},
		{domain.SettingFlushOutPenaltyPctWeak, &ps.flushOutPenaltyWeak},
		{domain.SettingFlushOutPenaltyPctStrong, &ps.flushOutPenaltyStrong},
	} {
		v, err := repo.GetSetting(ctx, entry.name)
		if err != nil {
			return nil, fmt.Errorf("loading setting %s: %w", entry.name, err)
		}
		*entry.dst = v
	}

	bonusCount, err := repo.GetSetting(ctx, domain.SettingReferralBonusCount)
	if err != nil {
		return nil, fmt.Errorf("loading setting %s: %w", domain.SettingReferralBonusCount, err)
	}
	ps.referralBonusCount = bonusCount.IntPart()

	return ps, nil
}
