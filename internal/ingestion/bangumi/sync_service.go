package bangumi

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"medialog/internal/http-api/dto"
	"medialog/internal/http-api/service"
	"medialog/internal/taxonomy"
)

// SyncService replays a user's full Bangumi collection into the media log.
// Each collected subject becomes one upsert keyed on its subject id, so the
// sync is safe to re-run: replays converge on the latest external state.
type SyncService struct {
	client *Client
	items  service.ItemService

	username    string
	workerCount int
	pageSize    int
}

// SyncConfig holds configuration for the sync service
type SyncConfig struct {
	BangumiAPIURL string
	Username      string
	WorkerCount   int
	PageSize      int
}

func NewSyncService(config SyncConfig, items service.ItemService) *SyncService {
	workerCount := config.WorkerCount
	if workerCount == 0 {
		workerCount = 5
	}
	pageSize := config.PageSize
	if pageSize == 0 || pageSize > 50 {
		pageSize = 50 // API maximum
	}

	return &SyncService{
		client:      NewClient(config.BangumiAPIURL),
		items:       items,
		username:    config.Username,
		workerCount: workerCount,
		pageSize:    pageSize,
	}
}

// SyncStats summarizes one sync run.
type SyncStats struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration

	mu          sync.Mutex
	Total       int
	Imported    int
	Failed      int
	ByMediaType map[string]int
	ByStatus    map[string]int
}

func (st *SyncStats) record(mediaType, status string, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if err != nil {
		st.Failed++
		return
	}
	st.Imported++
	st.ByMediaType[mediaType]++
	st.ByStatus[status]++
}

// Run fetches every collection page, resolves subject platforms through a
// worker pool, and routes each entry through the upsert reconciler.
func (s *SyncService) Run(ctx context.Context) (*SyncStats, error) {
	if s.username == "" {
		return nil, fmt.Errorf("no username configured")
	}

	stats := &SyncStats{
		RunID:       uuid.New().String(),
		StartedAt:   time.Now(),
		ByMediaType: make(map[string]int),
		ByStatus:    make(map[string]int),
	}
	log.Printf("[Sync %s] Fetching collections for %s...", stats.RunID[:8], s.username)

	collections, err := s.fetchAllCollections(ctx)
	if err != nil {
		return stats, err
	}
	stats.Total = len(collections)
	log.Printf("[Sync %s] %d collections fetched, importing with %d workers...",
		stats.RunID[:8], stats.Total, s.workerCount)

	jobs := make(chan Collection)
	var wg sync.WaitGroup

	for w := 0; w < s.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for col := range jobs {
				s.importOne(ctx, col, stats)
			}
		}()
	}

	for _, col := range collections {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return stats, ctx.Err()
		case jobs <- col:
		}
	}
	close(jobs)
	wg.Wait()

	stats.Duration = time.Since(stats.StartedAt)
	return stats, nil
}

func (s *SyncService) fetchAllCollections(ctx context.Context) ([]Collection, error) {
	var all []Collection
	offset := 0

	for {
		page, err := s.client.GetUserCollections(ctx, s.username, s.pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		offset += len(page.Data)

		if len(page.Data) == 0 || len(page.Data) < s.pageSize {
			return all, nil
		}
	}
}

// importOne resolves the subject's platform and upserts the entry. A failed
// detail fetch falls back to the type-only mapping rather than skipping the
// entry.
func (s *SyncService) importOne(ctx context.Context, col Collection, stats *SyncStats) {
	platform := ""
	if subject, err := s.client.GetSubject(ctx, col.Subject.ID); err != nil {
		log.Printf("[Sync] subject %d detail unavailable: %v, using type default", col.Subject.ID, err)
	} else {
		platform = subject.Platform
	}

	in := buildItem(col, platform)
	err := s.items.Upsert(ctx, &in)
	if err != nil {
		log.Printf("[Sync] import of subject %d failed: %v", col.Subject.ID, err)
	}
	stats.record(in.MediaType, in.Status, err)
}

// buildItem normalizes one collection entry into an import payload.
func buildItem(col Collection, platform string) dto.CreateItemDTO {
	title := col.Subject.Name
	if title == "" {
		title = col.Subject.NameCN
	}

	rating := float64(col.Rate)
	comment := ""
	if col.Comment != nil {
		comment = *col.Comment
	}
	externalID := strconv.Itoa(col.Subject.ID)

	in := dto.CreateItemDTO{
		Title:      title,
		MediaType:  taxonomy.MediaTypeFor(col.Subject.Type, platform),
		Status:     taxonomy.StatusFor(col.Type),
		Rating:     &rating,
		Comment:    &comment,
		ExternalID: &externalID,
	}
	if col.UpdatedAt != "" {
		updatedAt := col.UpdatedAt
		in.UpdatedAt = &updatedAt
	}
	return in
}

// LogSummary prints the per-type and per-status distribution of a finished
// run, mirroring what the collection export reports.
func (st *SyncStats) LogSummary() {
	log.Printf("=== Sync %s finished in %v ===", st.RunID[:8], st.Duration.Round(time.Millisecond))
	log.Printf("total=%d imported=%d failed=%d", st.Total, st.Imported, st.Failed)
	for mediaType, count := range st.ByMediaType {
		log.Printf("  %-6s %d", mediaType, count)
	}
	for status, count := range st.ByStatus {
		log.Printf("  %-8s %d", status, count)
	}
}
