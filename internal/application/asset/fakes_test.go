package asset_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con Rollback simulado
// ──────────────────────────────────────────────────────────────────────────────

var errFakeDB = errors.New("fake db failure")

type memStore struct {
	assets     map[int64]*entity.Asset
	sectors    map[int64]string
	history    []*entity.HistoryEntry
	nextAsset  int64
	nextSector int64
	nextHist   int64

	// Inyección de fallas.
	failAppend     bool
	failUpdate     bool
	missingForBulk int64 // AppendForAssets falla (FK) si aparece este id
}

func newMemStore() *memStore {
	return &memStore{
		assets:     map[int64]*entity.Asset{},
		sectors:    map[int64]string{1: "Suporte", 2: "Estoque", 3: "Comercial"},
		nextAsset:  1,
		nextSector: 4,
		nextHist:   1,
	}
}

func (s *memStore) clone() *memStore {
	c := *s
	c.assets = make(map[int64]*entity.Asset, len(s.assets))
	for k, v := range s.assets {
		c.assets[k] = v.Clone()
	}
	c.sectors = make(map[int64]string, len(s.sectors))
	for k, v := range s.sectors {
		c.sectors[k] = v
	}
	c.history = append([]*entity.HistoryEntry(nil), s.history...)
	return &c
}

func (s *memStore) restore(from *memStore) {
	s.assets, s.sectors, s.history = from.assets, from.sectors, from.history
	s.nextAsset, s.nextSector, s.nextHist = from.nextAsset, from.nextSector, from.nextHist
}

func (s *memStore) seed(a *entity.Asset) *entity.Asset {
	a.ID = s.nextAsset
	s.nextAsset++
	s.assets[a.ID] = a.Clone()
	return a
}

func (s *memStore) historyFor(id int64) []*entity.HistoryEntry {
	var out []*entity.HistoryEntry
	for _, h := range s.history {
		if h.AssetID == id {
			out = append(out, h)
		}
	}
	return out
}

type fakeTx struct {
	store     *memStore
	commits   int
	rollbacks int
}

func (f *fakeTx) Run(ctx context.Context, fn func(
	assets repository.AssetRepository,
	sectors repository.SectorRepository,
	history repository.HistoryRepository,
) error) error {
	snap := f.store.clone()
	if err := fn(&memAssets{s: f.store}, &memSectors{s: f.store}, &memHistory{s: f.store}); err != nil {
		f.store.restore(snap)
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

type memAssets struct{ s *memStore }

func (r *memAssets) withSector(a *entity.Asset) *entity.Asset {
	c := a.Clone()
	if c.SectorID != nil {
		c.SectorName = r.s.sectors[*c.SectorID]
	}
	return c
}

func (r *memAssets) Create(_ context.Context, a *entity.Asset) (int64, error) {
	for _, x := range r.s.assets {
		if x.Tag == a.Tag {
			return 0, errors.New("duplicate tag")
		}
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	id := r.s.nextAsset
	r.s.nextAsset++
	c := a.Clone()
	c.ID = id
	r.s.assets[id] = c
	return id, nil
}

func (r *memAssets) GetByID(_ context.Context, id int64) (*entity.Asset, error) {
	a, ok := r.s.assets[id]
	if !ok {
		return nil, nil
	}
	return r.withSector(a), nil
}

func (r *memAssets) GetForUpdate(ctx context.Context, id int64) (*entity.Asset, error) {
	return r.GetByID(ctx, id)
}

func (r *memAssets) GetByTag(_ context.Context, tag string) (*entity.Asset, error) {
	for _, a := range r.s.assets {
		if a.Tag == tag {
			return r.withSector(a), nil
		}
	}
	return nil, nil
}

func (r *memAssets) Update(_ context.Context, a *entity.Asset) error {
	if r.s.failUpdate {
		return errFakeDB
	}
	c := a.Clone()
	c.SectorName = ""
	c.UpdatedAt = time.Now()
	r.s.assets[a.ID] = c
	return nil
}

func (r *memAssets) SetStatus(_ context.Context, id int64, status string) error {
	if a, ok := r.s.assets[id]; ok {
		a.Status = status
	}
	return nil
}

func (r *memAssets) ApplyBulk(_ context.Context, ids []int64, action entity.BulkAction) (int64, error) {
	var n int64
	for _, id := range ids {
		a, ok := r.s.assets[id]
		if !ok {
			continue
		}
		switch act := action.(type) {
		case entity.ChangeSector:
			v := act.SectorID
			a.SectorID = &v
		case entity.ChangeStatus:
			a.Status = act.Status
		case entity.AssignResponsible:
			a.ResponsibleName, a.ResponsibleEmail = act.Name, act.Email
		}
		n++
	}
	return n, nil
}

func (r *memAssets) InvoiceRefs(_ context.Context, ids []int64) ([]string, error) {
	var out []string
	for _, id := range ids {
		if a, ok := r.s.assets[id]; ok && a.InvoiceRef != nil {
			out = append(out, *a.InvoiceRef)
		}
	}
	return out, nil
}

func (r *memAssets) DeleteMany(_ context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.s.assets[id]; ok {
			delete(r.s.assets, id)
			n++
		}
	}
	kept := r.s.history[:0:0]
	for _, h := range r.s.history {
		if _, ok := r.s.assets[h.AssetID]; ok {
			kept = append(kept, h)
		}
	}
	r.s.history = kept
	return n, nil
}

func (r *memAssets) Upsert(_ context.Context, a *entity.Asset) (int64, bool, error) {
	for id, x := range r.s.assets {
		if x.Tag == a.Tag {
			c := a.Clone()
			c.ID = id
			r.s.assets[id] = c
			return id, false, nil
		}
	}
	id := r.s.nextAsset
	r.s.nextAsset++
	c := a.Clone()
	c.ID = id
	r.s.assets[id] = c
	return id, true, nil
}

func (r *memAssets) List(_ context.Context, f entity.AssetFilter, limit, offset int) ([]*entity.Asset, int, error) {
	var all []*entity.Asset
	for _, a := range r.s.assets {
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Name+" "+a.Tag), strings.ToLower(f.Search)) {
			continue
		}
		all = append(all, r.withSector(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if limit <= 0 {
		return all, total, nil
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *memAssets) SimpleSearch(ctx context.Context, term string, limit int) ([]*entity.Asset, error) {
	items, _, err := r.List(ctx, entity.AssetFilter{Search: term}, limit, 0)
	return items, err
}

func (r *memAssets) ListByResponsible(_ context.Context, who string) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for _, a := range r.s.assets {
		if a.ResponsibleName == who || a.ResponsibleEmail == who {
			out = append(out, r.withSector(a))
		}
	}
	return out, nil
}

func (r *memAssets) MaxNumericTag(_ context.Context) (int64, error) {
	var max int64
	for _, a := range r.s.assets {
		var n int64
		for _, ch := range a.Tag {
			if ch >= '0' && ch <= '9' {
				n = n*10 + int64(ch-'0')
			}
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

type memSectors struct{ s *memStore }

func (r *memSectors) List(_ context.Context) ([]*entity.Sector, error) {
	var out []*entity.Sector
	for id, n := range r.s.sectors {
		out = append(out, &entity.Sector{ID: id, Name: n})
	}
	return out, nil
}

func (r *memSectors) GetByID(_ context.Context, id int64) (*entity.Sector, error) {
	n, ok := r.s.sectors[id]
	if !ok {
		return nil, nil
	}
	return &entity.Sector{ID: id, Name: n}, nil
}

func (r *memSectors) Names(_ context.Context) (map[int64]string, error) {
	out := make(map[int64]string, len(r.s.sectors))
	for k, v := range r.s.sectors {
		out[k] = v
	}
	return out, nil
}

func (r *memSectors) Create(ctx context.Context, name string) (*entity.Sector, error) {
	id, err := r.FindOrCreate(ctx, name)
	if err != nil {
		return nil, err
	}
	return &entity.Sector{ID: id, Name: name}, nil
}

func (r *memSectors) FindOrCreate(_ context.Context, name string) (int64, error) {
	for id, n := range r.s.sectors {
		if strings.EqualFold(n, name) {
			return id, nil
		}
	}
	id := r.s.nextSector
	r.s.nextSector++
	r.s.sectors[id] = name
	return id, nil
}

type memHistory struct{ s *memStore }

func (r *memHistory) Append(_ context.Context, e *entity.HistoryEntry) error {
	if r.s.failAppend {
		return errFakeDB
	}
	c := *e
	c.ID = r.s.nextHist
	r.s.nextHist++
	c.Timestamp = time.Now()
	r.s.history = append(r.s.history, &c)
	return nil
}

func (r *memHistory) AppendForAssets(ctx context.Context, ids []int64, action, details, actor string) (int64, error) {
	for _, id := range ids {
		if id == r.s.missingForBulk {
			return 0, errors.New(`insert or update on table "historico" violates foreign key constraint`)
		}
		if err := r.Append(ctx, &entity.HistoryEntry{AssetID: id, Action: action, Details: details, Actor: actor}); err != nil {
			return 0, err
		}
	}
	return int64(len(ids)), nil
}

func (r *memHistory) ListByAsset(_ context.Context, id int64) ([]*entity.HistoryEntry, error) {
	entries := r.s.historyFor(id)
	out := make([]*entity.HistoryEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Archivos y métricas
// ──────────────────────────────────────────────────────────────────────────────

type fakeFiles struct {
	removed []string
}

func (f *fakeFiles) Save(_ context.Context, dir, name string, _ io.Reader) (string, error) {
	return "/" + dir + "/" + name, nil
}

func (f *fakeFiles) Remove(_ context.Context, ref string) error {
	f.removed = append(f.removed, ref)
	return nil
}

type fakeMetrics struct {
	written map[string]int64
	failed  []string
}

func newFakeMetrics() *fakeMetrics { return &fakeMetrics{written: map[string]int64{}} }

func (m *fakeMetrics) HistoryWritten(action string, n int64) { m.written[action] += n }
func (m *fakeMetrics) MutationFailed(op string)              { m.failed = append(m.failed, op) }
