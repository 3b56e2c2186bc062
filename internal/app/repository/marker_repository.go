package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"gorm.io/gorm"
)

// MarkerRepository tracks which (session, website) pairs have already produced
// a unique_visitor event. Seen must report false at most once per pair.
type MarkerRepository interface {
	// Seen marks the pair and reports whether it was already marked.
	Seen(ctx context.Context, sessionID, websiteID string) (bool, error)
}

type markerRepository struct {
	db *gorm.DB
}

// NewMarkerRepository returns a GORM-backed MarkerRepository.
func NewMarkerRepository(db *gorm.DB) MarkerRepository {
	return &markerRepository{db: db}
}

func (r *markerRepository) Seen(ctx context.Context, sessionID, websiteID string) (bool, error) {
	marker := model.VisitorMarker{SessionID: sessionID, WebsiteID: websiteID}
	err := r.db.WithContext(ctx).Create(&marker).Error
	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}

	// Drivers that don't map duplicate-key errors: fall back to a lookup.
	var existing model.VisitorMarker
	lookupErr := r.db.WithContext(ctx).
		Where("session_id = ? AND website_id = ?", sessionID, websiteID).
		First(&existing).Error
	if lookupErr == nil {
		return true, nil
	}
	return false, err
}

// MemoryMarkers is an in-process MarkerRepository for agents whose browsing
// session does not outlive the process.
type MemoryMarkers struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryMarkers returns an empty in-memory marker set.
func NewMemoryMarkers() *MemoryMarkers {
	return &MemoryMarkers{seen: make(map[string]struct{})}
}

func (m *MemoryMarkers) Seen(_ context.Context, sessionID, websiteID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionID + "|" + websiteID
	if _, ok := m.seen[key]; ok {
		return true, nil
	}
	m.seen[key] = struct{}{}
	return false, nil
}
