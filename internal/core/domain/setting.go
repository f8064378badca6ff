package domain

import "github.com/shopspring/decimal"

// SettingName is a tunable business parameter key.
type SettingName string

const (
	SettingCodeExpiration              SettingName = "CODE_EXPIRATION"
	SettingCodeLength                  SettingName = "CODE_LENGTH"
	SettingPointValueConversion        SettingName = "POINT_VALUE_CONVERSION"
	SettingDirectReferralPercentage    SettingName = "DIRECT_REFERRAL_PERCENTAGE"
	SettingReferralBonusCount          SettingName = "REFERRAL_BONUS_COUNT"
	SettingFranchiseCommissionPct      SettingName = "FRANCHISE_COMMISSION_PERCENTAGE"
	SettingFifthPairPercentage         SettingName = "FIFTH_PAIR_PERCENTAGE"
	SettingFlushOutPenaltyPctWeak      SettingName = "FLUSH_OUT_PENALTY_PERCENTAGE_WEAK"
	SettingFlushOutPenaltyPctStrong    SettingName = "FLUSH_OUT_PENALTY_PERCENTAGE_STRONG"
	SettingCompanyCashoutFeePercentage SettingName = "COMPANY_CASHOUT_FEE_PERCENTAGE"
	SettingMinimumCashoutAmount        SettingName = "MINIMUM_CASHOUT_AMOUNT"
	SettingMaxUserAccountLimit         SettingName = "MAX_USER_ACCOUNT_LIMIT"

	// Per-wallet cashout schedule, suffixed onto the wallet name,
	// e.g. B_WALLET_CASHOUT_DAY.
	SettingSuffixCashoutDay      = "_CASHOUT_DAY"
	SettingSuffixCashoutOverride = "_CASHOUT_OVERRIDE"
)

// Setting is one name->decimal business parameter. Admin-writable; the
// compensation engine treats the store as read-only per invocation.
type Setting struct {
	SettingID string          `json:"settingID"`
	Name      SettingName     `json:"name"`
	Value     decimal.Decimal `json:"value"`
	AuditFields
}
