package domain

// CodeType distinguishes what an activation code may be redeemed for.
type CodeType string

const (
	CodeActivation   CodeType = "ACTIVATION"
	CodeUpgrade      CodeType = "UPGRADE"
	CodeReactivation CodeType = "REACTIVATION"
	CodeFreeSlot     CodeType = "FREE_SLOT"
)

// CodeStatus is the code state machine. ACTIVE->USED is one-way and happens
// only after a successful compensation run; ACTIVE<->DEACTIVATED is an admin
// toggle; ACTIVE->EXPIRED is evaluated lazily on read.
type CodeStatus string

const (
	CodeActive      CodeStatus = "ACTIVE"
	CodeUsed        CodeStatus = "USED"
	CodeExpired     CodeStatus = "EXPIRED"
	CodeDeactivated CodeStatus = "DEACTIVATED"
)

// Code is a single-use activation/upgrade token tied to a Package.
type Code struct {
	CodeID     string     `json:"codeID"`
	Code       string     `json:"code"` // the human-entered token
	PackageID  string     `json:"packageID"`
	CodeType   CodeType   `json:"codeType"`
	Status     CodeStatus `json:"status"`
	OwnerID    *string    `json:"ownerID"` // account allowed to consume it for downline creation
	IsExpiring bool       `json:"isExpiring"`
	IsDeleted  bool       `json:"isDeleted"`
	AuditFields
}
