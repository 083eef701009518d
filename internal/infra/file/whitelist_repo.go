// File: internal/infra/file/whitelist_repo.go
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Chakis0/multibot-service/internal/domain/ports/repository"
)

var _ repository.WhitelistRepository = (*WhitelistRepo)(nil)

// WhitelistRepo persists each tenant's dynamic whitelist as a JSON array of
// chat ids in <dir>/whitelist_<botKey>.json. The in-memory view is the source
// of truth at runtime; the file is rewritten on every mutation so a restart
// picks the list back up.
type WhitelistRepo struct {
	dir string

	mu   sync.Mutex
	sets map[string]map[int64]struct{}
}

func NewWhitelistRepo(dir string, botKeys []string) (*WhitelistRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create whitelist dir: %w", err)
	}
	r := &WhitelistRepo{dir: dir, sets: make(map[string]map[int64]struct{}, len(botKeys))}
	for _, key := range botKeys {
		set, err := r.load(key)
		if err != nil {
			return nil, err
		}
		r.sets[key] = set
	}
	return r, nil
}

func (r *WhitelistRepo) path(botKey string) string {
	return filepath.Join(r.dir, fmt.Sprintf("whitelist_%s.json", botKey))
}

func (r *WhitelistRepo) load(botKey string) (map[int64]struct{}, error) {
	b, err := os.ReadFile(r.path(botKey))
	if err != nil {
		if os.IsNotExist(err) {
			return map[int64]struct{}{}, nil
		}
		return nil, fmt.Errorf("read whitelist %s: %w", botKey, err)
	}
	var ids []int64
	if err := json.Unmarshal(b, &ids); err != nil {
		// A corrupt file starts the tenant with an empty dynamic list, the
		// same recovery the original deployment used.
		return map[int64]struct{}{}, nil
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// flush must be called with r.mu held.
func (r *WhitelistRepo) flush(botKey string) error {
	ids := r.sorted(botKey)
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return os.WriteFile(r.path(botKey), b, 0o644)
}

// sorted must be called with r.mu held.
func (r *WhitelistRepo) sorted(botKey string) []int64 {
	set := r.sets[botKey]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *WhitelistRepo) Contains(_ context.Context, botKey string, chatID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sets[botKey][chatID]
	return ok, nil
}

func (r *WhitelistRepo) Add(_ context.Context, botKey string, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sets[botKey] == nil {
		r.sets[botKey] = map[int64]struct{}{}
	}
	r.sets[botKey][chatID] = struct{}{}
	return r.flush(botKey)
}

func (r *WhitelistRepo) Remove(_ context.Context, botKey string, chatID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sets[botKey][chatID]; !ok {
		return false, nil
	}
	delete(r.sets[botKey], chatID)
	return true, r.flush(botKey)
}

func (r *WhitelistRepo) List(_ context.Context, botKey string) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(botKey), nil
}
