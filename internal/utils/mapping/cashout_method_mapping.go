package mapping

import (
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/models"
)

// ToModelCashoutMethod converts a domain CashoutMethod to a model CashoutMethod.
func ToModelCashoutMethod(d domain.CashoutMethod) models.CashoutMethod {
	return models.CashoutMethod{
		CashoutMethodID: d.CashoutMethodID,
		AccountID:       d.AccountID,
		Channel:         string(d.Channel),
		AccountName:     d.AccountName,
		AccountNumber:   d.AccountNumber,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashoutMethod converts a model CashoutMethod to a domain CashoutMethod.
func ToDomainCashoutMethod(m models.CashoutMethod) domain.CashoutMethod {
	return domain.CashoutMethod{
		CashoutMethodID: m.CashoutMethodID,
		AccountID:       m.AccountID,
		Channel:         domain.CashoutChannel(m.Channel),
		AccountName:     m.AccountName,
		AccountNumber:   m.AccountNumber,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
