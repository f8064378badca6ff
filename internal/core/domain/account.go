package domain

// AccountStatus is the lifecycle state of a member account.
type AccountStatus string

const (
	AccountDraft       AccountStatus = "DRAFT"
	AccountPending     AccountStatus = "PENDING"
	AccountActive      AccountStatus = "ACTIVE"
	AccountDeactivated AccountStatus = "DEACTIVATED"
	AccountClosed      AccountStatus = "CLOSED"
)

// ParentSide identifies the leg of the binary tree a child hangs on.
type ParentSide string

const (
	SideLeft  ParentSide = "LEFT"
	SideRight ParentSide = "RIGHT"
)

// Account is a node in the binary genealogy tree. The parent edge carries the
// tree structure; the referrer edge is the independent sponsor chain.
type Account struct {
	AccountID        string        `json:"accountID"` // UUID, external identity
	ParentID         *string       `json:"parentID"`  // nullable: roots have no parent
	ParentSide       *ParentSide   `json:"parentSide"`
	ReferrerID       *string       `json:"referrerID"`
	PackageID        string        `json:"packageID"`      // tier at activation time
	ActivationCodeID string        `json:"activationCode"` // code consumed to create this account
	FirstName        string        `json:"firstName"`
	MiddleName       string        `json:"middleName"`
	LastName         string        `json:"lastName"`
	Status           AccountStatus `json:"status"`
	IsDeleted        bool          `json:"isDeleted"`
	AuditFields
}

// ParentLink is one ancestor produced by the upward tree walk, nearest first.
// Side is the new member's side relative to this ancestor, i.e. the leg the
// new entry landed on.
type ParentLink struct {
	Account Account
	Side    ParentSide
	Level   int
	Package *Package
}

// ReferrerLink is one sponsor-chain ancestor, capped at two levels.
type ReferrerLink struct {
	Account Account
	Level   int
	Package *Package
}
