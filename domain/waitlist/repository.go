package waitlist

import (
	"context"
	"errors"

	"github.com/storytimehq/storytime-api/internal/models"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	// CreateEntry persists a new waitlist entry. A unique-index violation on
	// email is translated into the same conflict error the pre-check raises,
	// so the constraint remains the final arbiter under concurrent signups.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
	// FindEntryByEmail returns the entry for the given email, or (nil, nil)
	// when no entry exists. Emails are matched exactly as stored.
	FindEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)
	// Paginate returns one window of entries ordered newest-first plus the
	// total row count. page and limit must already be clamped by the caller.
	Paginate(ctx context.Context, page, limit int) ([]*models.WaitlistEntry, int64, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if err := wr.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, newDuplicateEmailError(err)
		}
		return nil, apperrors.NewDatabaseError("unable to create waitlist entry", err)
	}

	return entry, nil
}

func (wr *waitlistRepository) FindEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	err := wr.db.WithContext(ctx).Where("email = ?", email).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("failed to look up waitlist entry", err)
	}

	return &entry, nil
}

func (wr *waitlistRepository) Paginate(ctx context.Context, page, limit int) ([]*models.WaitlistEntry, int64, error) {
	var total int64

	if err := wr.db.WithContext(ctx).Model(&models.WaitlistEntry{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("unable to count waitlist entries", err)
	}

	var entries []*models.WaitlistEntry

	// id DESC breaks ties between rows created in the same instant, keeping
	// window boundaries stable across requests.
	err := wr.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("unable to fetch waitlist entries", err)
	}

	return entries, total, nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
