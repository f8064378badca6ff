package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

// allWallets is the fixed summary order.
var allWallets = []domain.WalletType{
	domain.WalletC, domain.WalletB, domain.WalletF, domain.WalletGC,
	domain.WalletPVLeft, domain.WalletPVRight, domain.WalletPVTotal,
}

// walletService answers derived-balance and ledger queries. It never stores
// a balance: everything is a sum over activities at read time.
type walletService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	activityRepo portsrepo.ActivityRepositoryWithTx
}

// NewWalletService creates the wallet read service.
func NewWalletService(repos portsrepo.RepositoryProvider) portssvc.WalletSvcFacade {
	return &walletService{
		accountRepo:  repos.AccountRepo,
		activityRepo: repos.ActivityRepo,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetBalance(ctx context.Context, accountID string, wallet domain.WalletType) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	return s.activityRepo.SumWalletSigned(ctx, accountID, wallet)
}

func (s *walletService) GetWalletSummary(ctx context.Context, accountID string) (*dto.WalletSummaryResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	summary := &dto.WalletSummaryResponse{AccountID: accountID}
	for _, wallet := range allWallets {
		balance, err := s.activityRepo.SumWalletSigned(ctx, accountID, wallet)
		if err != nil {
			return nil, err
		}
		summary.Balances = append(summary.Balances, dto.WalletBalanceResponse{
			AccountID: accountID,
			Wallet:    string(wallet),
			Balance:   balance,
		})
	}
	return summary, nil
}

func (s *walletService) ListActivities(ctx context.Context, accountID string, wallet domain.WalletType, limit int, nextToken *string) (*dto.ListActivitiesResponse, error) {
	activities, next, err := s.activityRepo.ListActivities(ctx, accountID, wallet, limit, nextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListActivitiesResponse{
		Activities: dto.ToActivityResponses(activities),
	}
	if next != nil {
		resp.NextToken = *next
	}
	return resp, nil
}
