package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"learnassist/internal/domain/entity"
	"learnassist/internal/domain/repository"
	"learnassist/internal/infrastructure/metrics"
)

const (
	backend    = "filesystem"
	recordExt  = ".json"
	recordPerm = 0o644
)

// RecordRepository keeps one JSON file per generation record under basePath.
type RecordRepository struct {
	basePath string
	mu       sync.RWMutex
}

var _ repository.RecordRepository = (*RecordRepository)(nil)

func NewRecordRepository(basePath string) (*RecordRepository, error) {
	info, err := os.Stat(basePath)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(basePath, 0o755); mkErr != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", basePath, mkErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check directory %s: %w", basePath, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %s exists but is not a directory", basePath)
	}

	return &RecordRepository{basePath: basePath}, nil
}

func (r *RecordRepository) BasePath() string {
	return r.basePath
}

func (r *RecordRepository) Create(ctx context.Context, rec *entity.GenerationRecord) error {
	metrics.IncJournalOp(backend, "put")

	path, err := r.recordPath(rec.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		metrics.IncError("fs_record_repo", "marshal_error")
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// write-then-rename so readers never see a partial file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, recordPerm); err != nil {
		metrics.IncError("fs_record_repo", "write_error")
		return fmt.Errorf("failed to write record %s: %w", rec.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		metrics.IncError("fs_record_repo", "write_error")
		return fmt.Errorf("failed to commit record %s: %w", rec.ID, err)
	}

	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id string) (*entity.GenerationRecord, error) {
	metrics.IncJournalOp(backend, "get")

	// Create never stores an id recordPath rejects
	path, err := r.recordPath(id)
	if err != nil {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, err := readRecord(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		metrics.IncError("fs_record_repo", "get_error")
		return nil, err
	}
	return rec, nil
}

func (r *RecordRepository) ListRecent(ctx context.Context, limit int) ([]*entity.GenerationRecord, error) {
	metrics.IncJournalOp(backend, "list")

	recs, err := r.all(ctx)
	if err != nil {
		metrics.IncError("fs_record_repo", "list_error")
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (r *RecordRepository) CountByEndpoint(ctx context.Context, endpoint entity.Endpoint) (int, error) {
	metrics.IncJournalOp(backend, "count")

	recs, err := r.all(ctx)
	if err != nil {
		metrics.IncError("fs_record_repo", "count_error")
		return 0, err
	}

	n := 0
	for _, rec := range recs {
		if rec.Endpoint == endpoint {
			n++
		}
	}
	return n, nil
}

func (r *RecordRepository) all(ctx context.Context) ([]*entity.GenerationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	recs := make([]*entity.GenerationRecord, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != recordExt {
			continue
		}
		rec, err := readRecord(filepath.Join(r.basePath, e.Name()))
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (r *RecordRepository) recordPath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid record id %q", id)
	}
	return filepath.Join(r.basePath, id+recordExt), nil
}

func readRecord(path string) (*entity.GenerationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var rec entity.GenerationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}
