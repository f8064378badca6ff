package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

var (
	ErrCodeNotRedeemable = errors.New("code is not redeemable")
	ErrPackageMismatch   = errors.New("code package does not match requested package")
	ErrReferrerMissing   = errors.New("franchise entries require a referrer")
	ErrPlanAlreadyRan    = errors.New("compensation plan already ran for this code")
)

var hundred = decimal.NewFromInt(100)

// compPlanService is the compensation engine. Runs are serialized by a
// single mutex and posted through one ledger transaction, so concurrent
// activations cannot interleave their pairing reads and writes.
type compPlanService struct {
	accountRepo    portsrepo.AccountRepositoryFacade
	activityRepo   portsrepo.ActivityRepositoryWithTx
	codeRepo       portsrepo.CodeRepositoryFacade
	packageRepo    portsrepo.PackageRepositoryFacade
	settingRepo    portsrepo.SettingRepositoryFacade
	bonusRepo      portsrepo.BonusRepositoryFacade
	franchiseeRepo portsrepo.FranchiseeRepositoryFacade
	clock          Clock

	mu sync.Mutex
}

// NewCompPlanService creates the compensation engine.
func NewCompPlanService(repos portsrepo.RepositoryProvider, clock Clock) portssvc.CompPlanSvcFacade {
	return &compPlanService{
		accountRepo:    repos.AccountRepo,
		activityRepo:   repos.ActivityRepo,
		codeRepo:       repos.CodeRepo,
		packageRepo:    repos.PackageRepo,
		settingRepo:    repos.SettingRepo,
		bonusRepo:      repos.BonusRepo,
		franchiseeRepo: repos.FranchiseeRepo,
		clock:          clock,
	}
}

var _ portssvc.CompPlanSvcFacade = (*compPlanService)(nil)

// planRun carries the per-invocation state: the transactional ledger, the
// settings snapshot and the posting clock. Every activity of one run shares
// the same timestamp and actor.
type planRun struct {
	ledger  portsrepo.ActivityRepositoryFacade
	ps      *planSettings
	now     time.Time
	actorID string
	result  *portssvc.CompPlanResult
}

func (r *planRun) post(ctx context.Context, accountID string, activityType domain.ActivityType, amount decimal.Decimal, wallet domain.WalletType, ref *domain.EntityRef) (*domain.Activity, error) {
	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		AccountID:  accountID,
		Type:       activityType,
		Amount:     amount,
		Status:     domain.StatusDone,
		Wallet:     wallet,
		Ref:        ref,
		AuditFields: domain.AuditFields{
			CreatedAt:     r.now,
			CreatedBy:     r.actorID,
			LastUpdatedAt: r.now,
			LastUpdatedBy: r.actorID,
		},
	}
	if err := r.ledger.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("posting %s to %s: %w", activityType, wallet, err)
	}
	r.result.ActivityIDs = append(r.result.ActivityIDs, activity.ActivityID)
	return &activity, nil
}

// RunForAccount executes the full member plan: entry, direct referral,
// referral-count bonus, then the upward binary walk with pairing, fifth
// pairing, leadership bonuses and flush-out penalties. The code is consumed
// first via its conditional ACTIVE->USED transition, which is what makes a
// concurrent double-submit of the same code lose cleanly.
func (s *compPlanService) RunForAccount(ctx context.Context, accountID string, packageID string, codeID string, actorID string) (*portssvc.CompPlanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	pkg, code, ps, err := s.loadRunInputs(ctx, packageID, codeID)
	if err != nil {
		return nil, err
	}
	if pkg.IsFranchise {
		return nil, fmt.Errorf("%w: package %s is a franchise package", apperrors.ErrValidation, pkg.PackageID)
	}

	now := s.clock.Now()

	if err := s.codeRepo.MarkCodeUsed(ctx, code.CodeID, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrPlanAlreadyRan, code.Code)
		}
		return nil, err
	}

	result := &portssvc.CompPlanResult{}
	run := &planRun{ps: ps, now: now, actorID: actorID, result: result}

	err = s.activityRepo.WithTx(ctx, func(txRepo portsrepo.ActivityRepositoryFacade) error {
		run.ledger = txRepo
		return s.runMemberPlan(ctx, run, account, pkg, code)
	})
	if err != nil {
		// Activities rolled back; hand the code back so the member can retry.
		if revertErr := s.codeRepo.UpdateCodeStatus(ctx, code.CodeID, domain.CodeUsed, domain.CodeActive, actorID, now); revertErr != nil {
			logger.Error("failed to revert code after plan failure",
				slog.String("code_id", code.CodeID),
				slog.String("error", revertErr.Error()))
		}
		return nil, err
	}

	if err := s.accountRepo.UpdateAccountStatus(ctx, account.AccountID, domain.AccountActive, actorID, now); err != nil {
		return nil, err
	}

	logger.Info("compensation plan completed",
		slog.String("account_id", account.AccountID),
		slog.String("package_id", pkg.PackageID),
		slog.Int("activities", len(result.ActivityIDs)),
		slog.Bool("free_slot", result.FreeSlot))

	return result, nil
}

// RunForFranchisee executes the franchise path: FRANCHISE_ENTRY on the
// referrer's C wallet plus FRANCHISE_COMMISSION on the F wallet. Franchise
// holders sit outside the tree, so no binary walk runs.
func (s *compPlanService) RunForFranchisee(ctx context.Context, franchiseeID string, packageID string, codeID string, actorID string) (*portssvc.CompPlanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)

	franchisee, err := s.franchiseeRepo.FindFranchiseeByID(ctx, franchiseeID)
	if err != nil {
		return nil, err
	}
	if franchisee.ReferrerID == "" {
		return nil, fmt.Errorf("%w: franchisee %s", ErrReferrerMissing, franchiseeID)
	}
	pkg, code, ps, err := s.loadRunInputs(ctx, packageID, codeID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsFranchise {
		return nil, fmt.Errorf("%w: package %s is not a franchise package", apperrors.ErrValidation, pkg.PackageID)
	}

	now := s.clock.Now()

	if err := s.codeRepo.MarkCodeUsed(ctx, code.CodeID, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrPlanAlreadyRan, code.Code)
		}
		return nil, err
	}

	result := &portssvc.CompPlanResult{Franchise: true}
	run := &planRun{ps: ps, now: now, actorID: actorID, result: result}

	err = s.activityRepo.WithTx(ctx, func(txRepo portsrepo.ActivityRepositoryFacade) error {
		run.ledger = txRepo
		ref := &domain.EntityRef{Kind: domain.RefFranchisee, ID: franchisee.FranchiseeID}

		if _, err := run.post(ctx, franchisee.ReferrerID, domain.ActivityFranchiseEntry, pkg.Amount, domain.WalletC, ref); err != nil {
			return err
		}
		commission := pkg.Amount.Mul(ps.franchiseCommission).Div(hundred)
		_, err := run.post(ctx, franchisee.ReferrerID, domain.ActivityFranchiseCommission, commission, domain.WalletF, ref)
		return err
	})
	if err != nil {
		if revertErr := s.codeRepo.UpdateCodeStatus(ctx, code.CodeID, domain.CodeUsed, domain.CodeActive, actorID, now); revertErr != nil {
			logger.Error("failed to revert code after franchise plan failure",
				slog.String("code_id", code.CodeID),
				slog.String("error", revertErr.Error()))
		}
		return nil, err
	}

	logger.Info("franchise compensation completed",
		slog.String("franchisee_id", franchisee.FranchiseeID),
		slog.String("referrer_id", franchisee.ReferrerID))

	return result, nil
}

func (s *compPlanService) loadRunInputs(ctx context.Context, packageID, codeID string) (*domain.Package, *domain.Code, *planSettings, error) {
	pkg, err := s.packageRepo.FindPackageByID(ctx, packageID)
	if err != nil {
		return nil, nil, nil, err
	}
	code, err := s.codeRepo.FindCodeByID(ctx, codeID)
	if err != nil {
		return nil, nil, nil, err
	}
	if code.Status != domain.CodeActive {
		return nil, nil, nil, fmt.Errorf("%w: status %s", ErrCodeNotRedeemable, code.Status)
	}
	if code.PackageID != pkg.PackageID {
		return nil, nil, nil, ErrPackageMismatch
	}
	ps, err := loadPlanSettings(ctx, s.settingRepo)
	if err != nil {
		return nil, nil, nil, err
	}
	return pkg, code, ps, nil
}

func (s *compPlanService) runMemberPlan(ctx context.Context, run *planRun, account *domain.Account, pkg *domain.Package, code *domain.Code) error {
	selfRef := &domain.EntityRef{Kind: domain.RefAccount, ID: account.AccountID}

	entryAmount := pkg.Amount
	if code.CodeType == domain.CodeFreeSlot {
		entryAmount = decimal.Zero
	}
	if _, err := run.post(ctx, account.AccountID, domain.ActivityEntry, entryAmount, domain.WalletC, selfRef); err != nil {
		return err
	}

	if account.ReferrerID != nil {
		if err := s.postReferral(ctx, run, account, pkg, code); err != nil {
			return err
		}
	}

	if code.CodeType == domain.CodeFreeSlot {
		// Free slots fill a tree position without PV, so no pairing runs.
		run.result.FreeSlot = true
		return nil
	}

	parents, err := s.accountRepo.GetAllParentsWithSide(ctx, account.AccountID)
	if err != nil {
		return err
	}
	for i := range parents {
		if err := s.processAncestor(ctx, run, &parents[i], account, pkg); err != nil {
			return err
		}
	}
	return nil
}

// postReferral posts the direct referral bonus and, when the sponsor's
// referral count at this tier hits the configured multiple, the
// referral-count bonus on top.
func (s *compPlanService) postReferral(ctx context.Context, run *planRun, account *domain.Account, pkg *domain.Package, code *domain.Code) error {
	referrer, err := s.accountRepo.FindAccountByID(ctx, *account.ReferrerID)
	if err != nil {
		return err
	}
	ref := &domain.EntityRef{Kind: domain.RefAccount, ID: account.AccountID}

	if code.CodeType == domain.CodeFreeSlot {
		_, err := run.post(ctx, referrer.AccountID, domain.ActivityDirectReferral, decimal.Zero, domain.WalletB, ref)
		return err
	}

	amount := pkg.Amount.Mul(run.ps.directReferralPct).Div(hundred)
	if _, err := run.post(ctx, referrer.AccountID, domain.ActivityDirectReferral, amount, domain.WalletB, ref); err != nil {
		return err
	}

	if run.ps.referralBonusCount <= 0 {
		return nil
	}
	count, err := s.accountRepo.CountDirectReferralsByPackage(ctx, referrer.AccountID, pkg.PackageID)
	if err != nil {
		return err
	}
	if int64(count)%run.ps.referralBonusCount != 0 {
		return nil
	}
	bonus, err := s.bonusRepo.FindReferralBonus(ctx, referrer.PackageID, pkg.PackageID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = run.post(ctx, referrer.AccountID, domain.ActivityReferralBonus, bonus.PointValue.Mul(run.ps.pointValueConversion), domain.WalletB, nil)
	return err
}

// processAncestor credits one ancestor for the new downline entry and, when
// both PV legs are funded, runs a sales match capped by the ancestor's daily
// flush-out limit.
func (s *compPlanService) processAncestor(ctx context.Context, run *planRun, link *domain.ParentLink, account *domain.Account, pkg *domain.Package) error {
	if link.Package == nil {
		// Ancestor has no resolvable package tier; it earns nothing.
		return nil
	}
	parentID := link.Account.AccountID
	childRef := &domain.EntityRef{Kind: domain.RefAccount, ID: account.AccountID}

	sideWallet := domain.WalletPVLeft
	if link.Side == domain.SideRight {
		sideWallet = domain.WalletPVRight
	}
	if _, err := run.post(ctx, parentID, domain.ActivityDownlineEntry, pkg.PointValue, sideWallet, childRef); err != nil {
		return err
	}

	strongTotal, weakTotal, strongWallet, err := s.pvWalletsInfo(ctx, run, parentID, link.Side)
	if err != nil {
		return err
	}
	if !strongTotal.IsPositive() || !weakTotal.IsPositive() {
		return nil
	}

	// Equal legs match the full PV of the new package; unequal legs match
	// the weak leg.
	matchPV := pkg.PointValue
	if strongTotal.GreaterThan(weakTotal) {
		matchPV = weakTotal
	}

	dayStart := startOfDay(run.now)
	matchedToday, err := run.ledger.SumActivitiesBetween(ctx, parentID, domain.WalletPVTotal, domain.ActivityPVSalesMatch, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	remainingToday := link.Package.FlushOutLimit.Sub(matchedToday)

	switch {
	case remainingToday.Sub(matchPV).GreaterThanOrEqual(decimal.Zero):
		return s.postSalesMatch(ctx, run, parentID, matchPV)
	case remainingToday.IsPositive():
		if err := s.postSalesMatch(ctx, run, parentID, remainingToday); err != nil {
			return err
		}
		return s.postFlushOut(ctx, run, parentID, strongTotal.Sub(remainingToday), weakTotal.Sub(remainingToday), strongWallet)
	default:
		return s.postFlushOut(ctx, run, parentID, strongTotal, weakTotal, strongWallet)
	}
}

// pvWalletsInfo sums both PV legs (downline entries, prior matches and
// penalties) and picks the strong one. On equal totals the strong side is
// the leg opposite the one the new entry landed on.
func (s *compPlanService) pvWalletsInfo(ctx context.Context, run *planRun, parentID string, childSide domain.ParentSide) (strong, weak decimal.Decimal, strongWallet domain.WalletType, err error) {
	pvTypes := []domain.ActivityType{domain.ActivityDownlineEntry, domain.ActivityPVSalesMatch, domain.ActivityFlushOutPenalty}

	leftTotal, err := run.ledger.SumActivities(ctx, parentID, domain.WalletPVLeft, pvTypes...)
	if err != nil {
		return decimal.Zero, decimal.Zero, "", err
	}
	rightTotal, err := run.ledger.SumActivities(ctx, parentID, domain.WalletPVRight, pvTypes...)
	if err != nil {
		return decimal.Zero, decimal.Zero, "", err
	}

	switch {
	case leftTotal.GreaterThan(rightTotal):
		return leftTotal, rightTotal, domain.WalletPVLeft, nil
	case rightTotal.GreaterThan(leftTotal):
		return rightTotal, leftTotal, domain.WalletPVRight, nil
	case childSide == domain.SideLeft:
		return rightTotal, leftTotal, domain.WalletPVRight, nil
	default:
		return leftTotal, rightTotal, domain.WalletPVLeft, nil
	}
}

// postSalesMatch moves matchPV through the PV wallets, credits the fifth
// pairing into GC, pays the residual into B and fans out leadership bonuses.
func (s *compPlanService) postSalesMatch(ctx context.Context, run *planRun, parentID string, matchPV decimal.Decimal) error {
	pvMatch, err := run.post(ctx, parentID, domain.ActivityPVSalesMatch, matchPV, domain.WalletPVTotal, nil)
	if err != nil {
		return err
	}
	matchRef := &domain.EntityRef{Kind: domain.RefActivity, ID: pvMatch.ActivityID}

	if _, err := run.post(ctx, parentID, domain.ActivityPVSalesMatch, matchPV.Abs().Neg(), domain.WalletPVLeft, matchRef); err != nil {
		return err
	}
	if _, err := run.post(ctx, parentID, domain.ActivityPVSalesMatch, matchPV.Abs().Neg(), domain.WalletPVRight, matchRef); err != nil {
		return err
	}

	fifthAmount, err := s.postFifthPairing(ctx, run, parentID, matchRef)
	if err != nil {
		return err
	}

	residual := matchPV.Mul(run.ps.pointValueConversion).Sub(fifthAmount)
	if !residual.IsPositive() {
		return nil
	}
	if _, err := run.post(ctx, parentID, domain.ActivitySalesMatch, residual, domain.WalletB, matchRef); err != nil {
		return err
	}
	return s.postLeadershipBonuses(ctx, run, parentID, matchPV, matchRef)
}

// postFifthPairing credits the GC wallet for every full hundred PV matched
// beyond what earlier fifth pairings already covered. Returns the credited
// currency amount, zero when no full pairing block is due.
func (s *compPlanService) postFifthPairing(ctx context.Context, run *planRun, parentID string, matchRef *domain.EntityRef) (decimal.Decimal, error) {
	fifthPct := run.ps.fifthPairPct.Div(hundred)
	if fifthPct.IsZero() {
		return decimal.Zero, nil
	}

	creditedGC, err := run.ledger.SumActivities(ctx, parentID, domain.WalletGC, domain.ActivityFifthPair)
	if err != nil {
		return decimal.Zero, err
	}
	totalPV, err := run.ledger.SumActivities(ctx, parentID, domain.WalletPVTotal)
	if err != nil {
		return decimal.Zero, err
	}

	creditedPV := creditedGC.Div(run.ps.pointValueConversion)
	remainingPV := totalPV.Sub(creditedPV.Div(fifthPct))
	matchablePV := remainingPV.Sub(remainingPV.Mod(hundred)).Mul(fifthPct)

	if matchablePV.IsZero() {
		return decimal.Zero, nil
	}
	fifth, err := run.post(ctx, parentID, domain.ActivityFifthPair, matchablePV.Mul(run.ps.pointValueConversion), domain.WalletGC, matchRef)
	if err != nil {
		return decimal.Zero, err
	}
	return fifth.Amount, nil
}

// postLeadershipBonuses pays each sponsor-chain ancestor (two levels up) its
// configured percentage of the matched PV.
func (s *compPlanService) postLeadershipBonuses(ctx context.Context, run *planRun, accountID string, matchPV decimal.Decimal, matchRef *domain.EntityRef) error {
	referrers, err := s.accountRepo.GetTwoLevelReferrers(ctx, accountID)
	if err != nil {
		return err
	}
	for _, referrer := range referrers {
		if referrer.Package == nil {
			continue
		}
		bonus, err := s.bonusRepo.FindLeadershipBonus(ctx, referrer.Package.PackageID, referrer.Level)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		amount := matchPV.Mul(bonus.PointValuePercentage.Div(hundred)).Mul(run.ps.pointValueConversion)
		if _, err := run.post(ctx, referrer.Account.AccountID, domain.ActivityLeadershipBonus, amount, domain.WalletB, matchRef); err != nil {
			return err
		}
	}
	return nil
}

// postFlushOut debits both PV legs with their penalty percentages. The
// strong penalty lands on whichever physical side is currently strong.
func (s *compPlanService) postFlushOut(ctx context.Context, run *planRun, parentID string, strongTotal, weakTotal decimal.Decimal, strongWallet domain.WalletType) error {
	strongPenalty := strongTotal.Mul(run.ps.flushOutPenaltyStrong.Div(hundred)).Abs().Neg()
	weakPenalty := weakTotal.Mul(run.ps.flushOutPenaltyWeak.Div(hundred)).Abs().Neg()

	leftAmount, rightAmount := strongPenalty, weakPenalty
	if strongWallet == domain.WalletPVRight {
		leftAmount, rightAmount = weakPenalty, strongPenalty
	}

	if _, err := run.post(ctx, parentID, domain.ActivityFlushOutPenalty, leftAmount, domain.WalletPVLeft, nil); err != nil {
		return err
	}
	_, err := run.post(ctx, parentID, domain.ActivityFlushOutPenalty, rightAmount, domain.WalletPVRight, nil)
	return err
}

// startOfDay truncates to the local midnight of the engine's timezone.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
