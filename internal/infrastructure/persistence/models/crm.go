package models

import (
	"github.com/google/uuid"

	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
)

// ContactModel is the persistence model for the Contact domain entity.
//
// The partial unique indexes on phone and account are the database-side
// guard for channel identity: two webhook deliveries racing to create
// the same first-time sender collapse onto one row.
type ContactModel struct {
	BaseModel
	FirstName string          `gorm:"type:varchar(100)"`
	LastName  string          `gorm:"type:varchar(100)"`
	Phone     string          `gorm:"type:varchar(50);uniqueIndex:idx_contacts_phone,where:phone <> ''"`
	Email     string          `gorm:"type:varchar(200);index"`
	Account   string          `gorm:"type:varchar(100);uniqueIndex:idx_contacts_account,where:account <> ''"`
	Type      crm.ContactType `gorm:"type:varchar(20);not null;default:'prospect'"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact entity.
func (m *ContactModel) ToDomain() *crm.Contact {
	return &crm.Contact{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
		},
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     m.Phone,
		Email:     m.Email,
		Account:   m.Account,
		Type:      m.Type,
		OwnerID:   m.OwnerID,
	}
}

// FromDomain populates the persistence model from a domain Contact entity.
func (m *ContactModel) FromDomain(c *crm.Contact) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Account = c.Account
	m.Type = c.Type
	m.OwnerID = c.OwnerID
}

// ContactModelFromDomain creates a new persistence model from a domain Contact entity.
func ContactModelFromDomain(c *crm.Contact) *ContactModel {
	m := &ContactModel{}
	m.FromDomain(c)
	return m
}
