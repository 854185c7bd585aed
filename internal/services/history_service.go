package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/tenant"
	"gorm.io/gorm"
)

// HistoryService reads and writes the entries of a single profile. Every
// query is scoped by profile id.
type HistoryService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db, now: time.Now}
}

// List returns the entries of profileID inside period, oldest first.
func (s *HistoryService) List(ctx context.Context, profileID uuid.UUID, period Period) ([]models.HistoryEntry, error) {
	entries := make([]models.HistoryEntry, 0)
	err := s.db.WithContext(ctx).
		Scopes(tenant.ForProfile(profileID), inWindow(period.Window(s.now()))).
		Order("recorded_at ASC").
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// Append records amount for profileID at the current time.
func (s *HistoryService) Append(ctx context.Context, profileID uuid.UUID, amount float64) (*models.HistoryEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	entry := models.HistoryEntry{
		ID:        id,
		ProfileID: profileID,
		Amount:    amount,
		Time:      s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create history entry: %w", err)
	}
	return &entry, nil
}

// Delete removes entryID if it belongs to profileID and returns the entry as
// it was. Entries of other profiles are reported as ErrHistoryNotFound.
func (s *HistoryService) Delete(ctx context.Context, profileID, entryID uuid.UUID) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(tenant.ForProfile(profileID)).First(&entry, "id = ?", entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHistoryNotFound
			}
			return err
		}

		result := tx.Scopes(tenant.ForProfile(profileID)).Where("id = ?", entryID).Delete(&models.HistoryEntry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrHistoryNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrHistoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete history entry: %w", err)
	}
	return &entry, nil
}

// Summary totals the entries of profileID inside period. The window is
// taken once so the reported bounds are the ones queried.
func (s *HistoryService) Summary(ctx context.Context, profileID uuid.UUID, period Period) (*dto.HistorySummary, error) {
	from, to, ok := period.Window(s.now())

	count, total, err := sumEntries(s.db.WithContext(ctx), profileID, from, to, ok)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize history: %w", err)
	}

	summary := &dto.HistorySummary{
		Period: string(period),
		Count:  count,
		Total:  total,
	}
	if ok {
		summary.From = &from
		summary.To = &to
	}
	return summary, nil
}

// sumEntries counts and totals the entries of profileID in [from, to).
// When bounded is false every entry counts.
func sumEntries(db *gorm.DB, profileID uuid.UUID, from, to time.Time, bounded bool) (int64, float64, error) {
	var row struct {
		Count int64
		Total float64
	}
	err := db.Model(&models.HistoryEntry{}).
		Scopes(tenant.ForProfile(profileID), inWindow(from, to, bounded)).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Scan(&row).Error
	return row.Count, row.Total, err
}

func inWindow(from, to time.Time, bounded bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !bounded {
			return db
		}
		return db.Where("recorded_at >= ? AND recorded_at < ?", from, to)
	}
}
