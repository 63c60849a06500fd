package layouts

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/randomtoy/cardtable-go/internal/domain"
)

//go:embed data/*.json
var layoutFS embed.FS

// registry maps layout IDs to their JSON filenames inside data/.
var registry = map[string]string{
	"default": "data/default.json",
}

// generated layouts are built in code.
var generated = map[string]func() domain.Layout{
	"row": func() domain.Layout {
		l := domain.RowLayout("row", []string{"S_A", "H_2", "D_3", "C_4", "S_5", "H_6"}, domain.Vec3{X: -2}, 1.2)
		l.Name = "Six loose cards"
		return l
	},
}

// EmbeddedStore serves the embedded JSON layouts and the generated ones.
type EmbeddedStore struct {
	once    sync.Once
	layouts map[string]domain.Layout
	err     error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	s.layouts = make(map[string]domain.Layout, len(registry)+len(generated))
	for id, build := range generated {
		s.layouts[id] = build()
	}
	for id, filename := range registry {
		raw, err := layoutFS.ReadFile(filename)
		if err != nil {
			s.err = fmt.Errorf("read embedded layout %s: %w", id, err)
			return
		}
		var l domain.Layout
		if err := json.Unmarshal(raw, &l); err != nil {
			s.err = fmt.Errorf("parse embedded layout %s: %w", id, err)
			return
		}
		l.ID = id
		if l.Name == "" {
			l.Name = id
		}
		s.layouts[id] = l
	}
}

func (s *EmbeddedStore) GetLayout(_ context.Context, layoutID string) (domain.Layout, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Layout{}, s.err
	}
	l, ok := s.layouts[layoutID]
	if !ok {
		return domain.Layout{}, fmt.Errorf("%s: %w", layoutID, domain.ErrLayoutNotFound)
	}
	return l, nil
}

// IDs lists the available layouts in sorted order.
func (s *EmbeddedStore) IDs() []string {
	ids := make([]string, 0, len(registry)+len(generated))
	for id := range registry {
		ids = append(ids, id)
	}
	for id := range generated {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
