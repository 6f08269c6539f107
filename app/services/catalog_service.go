package services

import (
	"database/sql"
	"log"
	"sync"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/database"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/planner"
)

// CatalogService hands out immutable catalog snapshots to request handlers.
// Refresh builds a whole new snapshot from the database and swaps the
// reference, so in-flight validations keep reading the snapshot they started
// with and never observe a half-loaded catalog.
type CatalogService struct {
	mu      sync.RWMutex
	current *planner.Catalog
}

func NewCatalogService() *CatalogService {
	return &CatalogService{current: planner.NewCatalog(nil)}
}

// Refresh rebuilds the snapshot from the units table.
func (s *CatalogService) Refresh(db *sql.DB) error {
	units, err := database.GetAllUnits(db)
	if err != nil {
		return err
	}
	snapshot := planner.NewCatalog(units)

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	log.Printf("Catalog refreshed: %d units indexed", snapshot.Len())
	return nil
}

// Snapshot returns the current catalog. The returned value is read-only and
// remains valid after later refreshes.
func (s *CatalogService) Snapshot() *planner.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
