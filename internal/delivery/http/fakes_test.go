package http_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func paginate[T any](items []T, page shared.PageRequest) []T {
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := min(start+page.Size, len(items))
	return items[start:end]
}

func contains(haystack string, needle *string) bool {
	return needle == nil || strings.Contains(strings.ToLower(haystack), strings.ToLower(*needle))
}

// memStatuses is a map-backed uomstatus.Repository.
type memStatuses struct {
	mu     sync.Mutex
	items  map[int64]*uomstatus.Status
	nextID int64
	uoms   *memUOMs
}

func newMemStatuses() *memStatuses {
	return &memStatuses{items: make(map[int64]*uomstatus.Status)}
}

func copyStatus(s *uomstatus.Status) *uomstatus.Status {
	return uomstatus.FromSnapshot(s.Snapshot())
}

func (m *memStatuses) Create(_ context.Context, s *uomstatus.Status) (*uomstatus.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	created := uomstatus.ReconstructStatus(m.nextID, s.Name(), s.Description(), s.IsUsable())
	m.items[created.ID()] = copyStatus(created)
	return created, nil
}

func (m *memStatuses) GetByID(_ context.Context, id int64) (*uomstatus.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return nil, uomstatus.NotFound(id)
	}
	return copyStatus(s), nil
}

func (m *memStatuses) Update(_ context.Context, s *uomstatus.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[s.ID()]; !ok {
		return uomstatus.NotFound(s.ID())
	}
	m.items[s.ID()] = copyStatus(s)
	return nil
}

func (m *memStatuses) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return uomstatus.NotFound(id)
	}
	if m.uoms != nil && m.uoms.references(id) {
		return errors.New(`update or delete on table "uom_status" violates foreign key constraint`)
	}
	delete(m.items, id)
	return nil
}

func (m *memStatuses) sorted() []*uomstatus.Status {
	out := make([]*uomstatus.Status, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, copyStatus(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (m *memStatuses) List(_ context.Context, filter uomstatus.ListFilter) ([]*uomstatus.Status, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*uomstatus.Status
	for _, s := range m.sorted() {
		if !contains(s.Name(), filter.Name) {
			continue
		}
		if filter.IsUsable != nil && s.IsUsable() != *filter.IsUsable {
			continue
		}
		matched = append(matched, s)
	}
	if filter.Page.Sort.Direction == shared.SortDesc {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name() > matched[j].Name() })
	}
	return paginate(matched, filter.Page), int64(len(matched)), nil
}

func (m *memStatuses) ListAll(_ context.Context) ([]*uomstatus.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(), nil
}

func (m *memStatuses) ExistsByID(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[id]
	return ok, nil
}

func (m *memStatuses) ExistsByName(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.items {
		if s.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

// memUOMs is a map-backed uom.Repository.
type memUOMs struct {
	mu     sync.Mutex
	items  map[int64]*uom.UOM
	nextID int64
}

func newMemUOMs() *memUOMs {
	return &memUOMs{items: make(map[int64]*uom.UOM)}
}

func copyUOM(u *uom.UOM) *uom.UOM {
	return uom.FromSnapshot(u.Snapshot())
}

func (m *memUOMs) references(statusID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.StatusID() == statusID {
			return true
		}
	}
	return false
}

func (m *memUOMs) Create(_ context.Context, u *uom.UOM) (*uom.UOM, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	created := uom.ReconstructUOM(m.nextID, u.Name(), u.Description(), u.ConversionFactor().Decimal(), u.StatusID())
	m.items[created.ID()] = copyUOM(created)
	return created, nil
}

func (m *memUOMs) GetByID(_ context.Context, id int64) (*uom.UOM, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, uom.NotFound(id)
	}
	return copyUOM(u), nil
}

func (m *memUOMs) GetByName(_ context.Context, name string) (*uom.UOM, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if strings.EqualFold(u.Name(), name) {
			return copyUOM(u), nil
		}
	}
	return nil, uom.NotFoundByName(name)
}

func (m *memUOMs) Update(_ context.Context, u *uom.UOM) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[u.ID()]; !ok {
		return uom.NotFound(u.ID())
	}
	m.items[u.ID()] = copyUOM(u)
	return nil
}

func (m *memUOMs) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return uom.NotFound(id)
	}
	delete(m.items, id)
	return nil
}

func (m *memUOMs) matching(name *string, statusID *int64) []*uom.UOM {
	var out []*uom.UOM
	for _, u := range m.items {
		if !contains(u.Name(), name) {
			continue
		}
		if statusID != nil && u.StatusID() != *statusID {
			continue
		}
		out = append(out, copyUOM(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (m *memUOMs) List(_ context.Context, filter uom.ListFilter) ([]*uom.UOM, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := m.matching(filter.Name, filter.StatusID)
	return paginate(matched, filter.Page), int64(len(matched)), nil
}

func (m *memUOMs) ListAll(_ context.Context, filter uom.ExportFilter) ([]*uom.UOM, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matching(filter.Name, filter.StatusID), nil
}

func (m *memUOMs) ExistsByID(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[id]
	return ok, nil
}

func (m *memUOMs) ExistsByNameIgnoreCase(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if strings.EqualFold(u.Name(), name) {
			return true, nil
		}
	}
	return false, nil
}
