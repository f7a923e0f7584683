package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
	"github.com/omnicrm/backend/internal/infrastructure/persistence/models"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError("find contact by id", err)
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a contact by phone number
func (r *GormContactRepository) FindByPhone(ctx context.Context, phone string) (*crm.Contact, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var model models.ContactModel
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError("find contact by phone", err)
	}
	return model.ToDomain(), nil
}

// FindByAccount finds a contact by messaging account id
func (r *GormContactRepository) FindByAccount(ctx context.Context, account string) (*crm.Contact, error) {
	if account == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account cannot be empty")
	}
	var model models.ContactModel
	if err := r.db.WithContext(ctx).Where("account = ?", account).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError("find contact by account", err)
	}
	return model.ToDomain(), nil
}

// FindByIdentity finds a contact by a channel identity's natural key
func (r *GormContactRepository) FindByIdentity(ctx context.Context, identity crm.ChannelIdentity) (*crm.Contact, error) {
	switch identity.Channel {
	case crm.ChannelWhatsApp:
		return r.FindByPhone(ctx, identity.ExternalID)
	case crm.ChannelMessenger:
		return r.FindByAccount(ctx, identity.ExternalID)
	default:
		return nil, shared.ErrUnsupportedChannel
	}
}

// CreateIfAbsent inserts the contact, falling back to the existing row
// when the natural key is already taken. The partial unique indexes on
// phone and account make the race between two concurrent first-contact
// webhooks resolve in the database, not in application code.
func (r *GormContactRepository) CreateIfAbsent(ctx context.Context, contact *crm.Contact, identity crm.ChannelIdentity) (*crm.Contact, error) {
	model := models.ContactModelFromDomain(contact)
	err := r.db.WithContext(ctx).Create(model).Error
	if err == nil {
		return contact, nil
	}

	if !isUniqueViolation(err) {
		return nil, shared.NewStoreError("create contact", err)
	}

	// Lost the insert race; the winner's row is authoritative.
	existing, ferr := r.FindByIdentity(ctx, identity)
	if ferr != nil {
		return nil, shared.NewStoreError("fetch contact after conflict", ferr)
	}
	return existing, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *crm.Contact) error {
	model := models.ContactModelFromDomain(contact)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return shared.NewStoreError("save contact", err)
	}
	return nil
}

// UpdateFields applies a partial update, touching only the non-nil
// fields. Values get the same normalization the domain applies.
func (r *GormContactRepository) UpdateFields(ctx context.Context, id uuid.UUID, update crm.ContactUpdate) error {
	values := map[string]any{}
	if update.FirstName != nil {
		values["first_name"] = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		values["last_name"] = strings.TrimSpace(*update.LastName)
	}
	if update.Email != nil {
		values["email"] = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Phone != nil {
		values["phone"] = strings.TrimSpace(*update.Phone)
	}
	if len(values) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.ContactModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return shared.NewStoreError("update contact", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all contacts
func (r *GormContactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ContactModel{}).Count(&count).Error; err != nil {
		return 0, shared.NewStoreError("count contacts", err)
	}
	return count, nil
}

// isUniqueViolation reports whether err is a postgres unique-key
// conflict (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
