package mapping

import (
	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/models"
)

// ToModelAccount converts a domain.Account to its database representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		Level:           models.AccountLevel(d.Level),
		Nature:          models.AccountNature(d.Nature),
		Status:          models.AccountStatus(d.Status),
		ParentAccountID: d.ParentAccountID,
		Description:     d.Description,
		Reconcilable:    d.Reconcilable,
		AllowsMovements: d.AllowsMovements,
		RequiresThird:   d.RequiresThird,
		RequiresCostCtr: d.RequiresCostCtr,
		TaxTags:         d.TaxTags,
		Usage:           d.Usage,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		Balance:         d.Balance,
	}
}

// ToDomainAccount converts a database account row to the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		Level:           domain.AccountLevel(m.Level),
		Nature:          domain.AccountNature(m.Nature),
		Status:          domain.AccountStatus(m.Status),
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		Reconcilable:    m.Reconcilable,
		AllowsMovements: m.AllowsMovements,
		RequiresThird:   m.RequiresThird,
		RequiresCostCtr: m.RequiresCostCtr,
		TaxTags:         m.TaxTags,
		Usage:           m.Usage,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		Balance:         m.Balance,
	}
}
