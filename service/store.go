package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/roshanahmedpuae-max/Serviceportals-sub001/config"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
)

// WorkOrderStore is an in-memory store for submitted work-order records.
// In production, this should be replaced with a database. It backs the CRUD
// routes, the CSV export and the pre-fill path of document generation; the
// generation pipeline itself never writes here.
type WorkOrderStore struct {
	records    map[string]*model.Record
	mu         sync.RWMutex
	maxRecords int // Maximum records to keep, 0 = unlimited
}

var (
	globalStore *WorkOrderStore
	storeOnce   sync.Once
)

// InitWorkOrderStore initializes the global store with configuration
func InitWorkOrderStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		maxRecords := cfg.MaxRecords
		if maxRecords < 0 {
			maxRecords = 0
		}
		globalStore = &WorkOrderStore{
			records:    make(map[string]*model.Record),
			maxRecords: maxRecords,
		}
		slog.Info("work-order store initialized", "max_records", maxRecords)
	})
}

// GetWorkOrderStore returns the global store
func GetWorkOrderStore() *WorkOrderStore {
	if globalStore == nil {
		// Fallback initialization with default settings
		globalStore = &WorkOrderStore{
			records:    make(map[string]*model.Record),
			maxRecords: 500,
		}
	}
	return globalStore
}

func (s *WorkOrderStore) Save(record *model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.UpdatedAt = time.Now()
	s.records[record.ID] = record

	// Cleanup if exceeds max
	s.cleanupIfNeeded()
}

func (s *WorkOrderStore) Get(id string) *model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

// GetByTenant returns a tenant's records, newest first.
func (s *WorkOrderStore) GetByTenant(tenant string) []*model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Record
	for _, r := range s.records {
		if r.Tenant == tenant {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *WorkOrderStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

func (s *WorkOrderStore) UpdateStatus(id, status string, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[id]; ok {
		r.Status = status
		r.ErrorMsg = errMsg
		r.UpdatedAt = time.Now()
	}
}

// AppendPhotoURL attaches an uploaded photo's object URL to a record.
func (s *WorkOrderStore) AppendPhotoURL(id, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[id]; ok {
		r.PhotoURLs = append(r.PhotoURLs, url)
		r.UpdatedAt = time.Now()
	}
}

// cleanupIfNeeded removes oldest records if the store exceeds maxRecords.
// Must be called with lock held
func (s *WorkOrderStore) cleanupIfNeeded() {
	if s.maxRecords <= 0 {
		return // Unlimited
	}

	if len(s.records) <= s.maxRecords {
		return
	}

	// Sort records by creation time
	records := make([]*model.Record, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	// Remove oldest records
	removeCount := len(records) - s.maxRecords
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old work order",
			"work_order_id", records[i].ID,
			"created_at", records[i].CreatedAt,
		)
		delete(s.records, records[i].ID)
	}
}

// Count returns the number of records in the store
func (s *WorkOrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
