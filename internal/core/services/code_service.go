package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/utils"
)

var ErrCodeNotToggleable = errors.New("only ACTIVE and DEACTIVATED codes can be toggled")

// codeService manages activation code generation, verification and the
// admin status toggle. Expiration is lazy: ACTIVE expiring codes past their
// window flip to EXPIRED the first time anything reads them.
type codeService struct {
	codeRepo    portsrepo.CodeRepositoryFacade
	packageRepo portsrepo.PackageRepositoryFacade
	settingRepo portsrepo.SettingRepositoryFacade
	clock       Clock
}

// NewCodeService creates the code service.
func NewCodeService(repos portsrepo.RepositoryProvider, clock Clock) portssvc.CodeSvcFacade {
	return &codeService{
		codeRepo:    repos.CodeRepo,
		packageRepo: repos.PackageRepo,
		settingRepo: repos.SettingRepo,
		clock:       clock,
	}
}

var _ portssvc.CodeSvcFacade = (*codeService)(nil)

func (s *codeService) GetCodeByID(ctx context.Context, codeID string) (*domain.Code, error) {
	code, err := s.codeRepo.FindCodeByID(ctx, codeID)
	if err != nil {
		return nil, err
	}
	return applyLazyExpiration(ctx, s.codeRepo, s.settingRepo, s.clock, code, code.CreatedBy)
}

func (s *codeService) VerifyCode(ctx context.Context, codeValue string) (*dto.VerifyCodeResponse, error) {
	code, err := s.codeRepo.FindCodeByValue(ctx, codeValue)
	if err != nil {
		return nil, err
	}
	code, err = applyLazyExpiration(ctx, s.codeRepo, s.settingRepo, s.clock, code, code.CreatedBy)
	if err != nil {
		return nil, err
	}
	pkg, err := s.packageRepo.FindPackageByID(ctx, code.PackageID)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyCodeResponse{
		Valid:       code.Status == domain.CodeActive,
		Status:      string(code.Status),
		PackageID:   pkg.PackageID,
		PackageName: pkg.Name,
	}, nil
}

func (s *codeService) ListCodesByOwner(ctx context.Context, ownerID string) ([]domain.Code, error) {
	codes, err := s.codeRepo.ListCodesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Code, 0, len(codes))
	for i := range codes {
		code, err := applyLazyExpiration(ctx, s.codeRepo, s.settingRepo, s.clock, &codes[i], codes[i].CreatedBy)
		if err != nil {
			return nil, err
		}
		out = append(out, *code)
	}
	return out, nil
}

// GenerateCodes mints a batch of unique codes for a package. Token length
// comes from the CODE_LENGTH setting.
func (s *codeService) GenerateCodes(ctx context.Context, req dto.GenerateCodesRequest, actorID string) ([]domain.Code, error) {
	pkg, err := s.packageRepo.FindPackageByID(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	// Franchise packages are redeemed through franchisee creation only;
	// upgrade and free-slot codes against them would route a franchise tier
	// into the member plan.
	if pkg.IsFranchise && domain.CodeType(req.CodeType) != domain.CodeActivation {
		return nil, fmt.Errorf("%w: %s codes cannot target a franchise package", apperrors.ErrValidation, req.CodeType)
	}
	length, err := s.settingRepo.GetSetting(ctx, domain.SettingCodeLength)
	if err != nil {
		return nil, err
	}
	size := int(length.IntPart())
	if size <= 0 {
		return nil, fmt.Errorf("%w: CODE_LENGTH must be positive", apperrors.ErrValidation)
	}

	now := s.clock.Now()
	codes := make([]domain.Code, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		value, err := utils.GenerateCodeToken(size)
		if err != nil {
			return nil, err
		}
		code := domain.Code{
			CodeID:     uuid.NewString(),
			Code:       value,
			PackageID:  pkg.PackageID,
			CodeType:   domain.CodeType(req.CodeType),
			Status:     domain.CodeActive,
			IsExpiring: req.IsExpiring,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if req.OwnerID != "" {
			ownerID := req.OwnerID
			code.OwnerID = &ownerID
		}
		codes = append(codes, code)
	}
	if err := s.codeRepo.SaveCodes(ctx, codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// ToggleCodeStatus flips ACTIVE<->DEACTIVATED.
func (s *codeService) ToggleCodeStatus(ctx context.Context, codeID string, actorID string) (*domain.Code, error) {
	code, err := s.GetCodeByID(ctx, codeID)
	if err != nil {
		return nil, err
	}

	var target domain.CodeStatus
	switch code.Status {
	case domain.CodeActive:
		target = domain.CodeDeactivated
	case domain.CodeDeactivated:
		target = domain.CodeActive
	default:
		return nil, fmt.Errorf("%w: status %s", ErrCodeNotToggleable, code.Status)
	}

	now := s.clock.Now()
	if err := s.codeRepo.UpdateCodeStatus(ctx, code.CodeID, code.Status, target, actorID, now); err != nil {
		return nil, err
	}
	code.Status = target
	code.LastUpdatedAt = now
	code.LastUpdatedBy = actorID
	return code, nil
}

// applyLazyExpiration flips an ACTIVE expiring code to EXPIRED once its
// window has passed, measured from the code's last modification. A lost
// conditional update means someone else already transitioned the code, so
// the fresh row is re-read instead of failing the read path.
func applyLazyExpiration(ctx context.Context, codeRepo portsrepo.CodeRepositoryFacade, settingRepo portsrepo.SettingRepositoryFacade, clock Clock, code *domain.Code, actorID string) (*domain.Code, error) {
	if code.Status != domain.CodeActive || !code.IsExpiring {
		return code, nil
	}
	expirationHours, err := settingRepo.GetSetting(ctx, domain.SettingCodeExpiration)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return code, nil
		}
		return nil, err
	}
	deadline := code.LastUpdatedAt.Add(time.Duration(expirationHours.IntPart()) * time.Hour)
	if !clock.Now().After(deadline) {
		return code, nil
	}

	now := clock.Now()
	if err := codeRepo.UpdateCodeStatus(ctx, code.CodeID, domain.CodeActive, domain.CodeExpired, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return codeRepo.FindCodeByID(ctx, code.CodeID)
		}
		return nil, err
	}
	code.Status = domain.CodeExpired
	code.LastUpdatedAt = now
	code.LastUpdatedBy = actorID
	return code, nil
}
