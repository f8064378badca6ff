package services

import "context"

// CompPlanResult reports what a compensation run produced. ActivityIDs are
// returned in posting order so callers can surface the run to operators.
type CompPlanResult struct {
	ActivityIDs []string
	// Franchise and FreeSlot report which short-circuit path the run took,
	// if any. Both false means the full binary pass ran.
	Franchise bool
	FreeSlot  bool
}

// CompPlanSvc runs the compensation plan for a newly activated entity. The
// whole run posts atomically: either every activity lands or none do.
type CompPlanSvc interface {
	// RunForAccount executes the plan for a new or upgrading member account.
	// The account must already be persisted; activation happens inside the
	// run so a failed plan leaves the account inactive and the code unused.
	RunForAccount(ctx context.Context, accountID string, packageID string, codeID string, actorID string) (*CompPlanResult, error)

	// RunForFranchisee executes the franchise path: FRANCHISE_ENTRY for the
	// holder's referrer plus FRANCHISE_COMMISSION, with no tree walk.
	RunForFranchisee(ctx context.Context, franchiseeID string, packageID string, codeID string, actorID string) (*CompPlanResult, error)
}

// CompPlanSvcFacade is the full compensation engine surface.
type CompPlanSvcFacade interface {
	CompPlanSvc
}
