package store

import (
	"sort"
	"time"

	"github.com/viosson/agentorg/internal/unit"
)

// unitRecord is the on-disk shape of one unit. The file is a single JSON
// object keyed by unit id.
type unitRecord struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	ProjectID        string        `json:"project_id,omitempty"`
	LeadMember       *unit.Member  `json:"lead_member"`
	ExecutorMembers  []unit.Member `json:"executor_members"`
	SupporterMembers []unit.Member `json:"supporter_members"`
	Status           unit.Status   `json:"status"`
	Priority         int           `json:"priority"`
	CreatedAt        time.Time     `json:"created_at"`
	StartedAt        *time.Time    `json:"started_at,omitempty"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
	Tasks            []unit.Task   `json:"tasks"`
}

// UnitStore reads and writes the unit file. It satisfies unit.Saver so a
// unit.Registry can persist through it directly.
type UnitStore struct {
	path string
}

// NewUnitStore creates a store backed by the given file path.
func NewUnitStore(path string) *UnitStore {
	return &UnitStore{path: path}
}

// Path returns the backing file path.
func (s *UnitStore) Path() string { return s.path }

// SaveUnits writes all unit snapshots atomically.
func (s *UnitStore) SaveUnits(units []unit.Unit) error {
	file := make(map[string]unitRecord, len(units))
	for _, u := range units {
		file[u.ID] = unitRecord{
			ID:               u.ID,
			Name:             u.Name,
			Description:      u.Description,
			ProjectID:        u.ProjectID,
			LeadMember:       u.Lead,
			ExecutorMembers:  u.Executors,
			SupporterMembers: u.Supporters,
			Status:           u.Status,
			Priority:         u.Priority,
			CreatedAt:        u.CreatedAt,
			StartedAt:        u.StartedAt,
			CompletedAt:      u.CompletedAt,
			Tasks:            u.Tasks,
		}
	}
	return writeFileAtomic(s.path, file)
}

// Load reads the unit file. A missing file is a first run and returns no
// units and no error. Units come back sorted by id.
func (s *UnitStore) Load() ([]unit.Unit, error) {
	var file map[string]unitRecord
	found, err := readFile(s.path, &file)
	if err != nil || !found {
		return nil, err
	}

	ids := make([]string, 0, len(file))
	for id := range file {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]unit.Unit, 0, len(ids))
	for _, id := range ids {
		rec := file[id]
		out = append(out, unit.Unit{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			ProjectID:   rec.ProjectID,
			Lead:        rec.LeadMember,
			Executors:   rec.ExecutorMembers,
			Supporters:  rec.SupporterMembers,
			Status:      rec.Status,
			Priority:    rec.Priority,
			CreatedAt:   rec.CreatedAt,
			StartedAt:   rec.StartedAt,
			CompletedAt: rec.CompletedAt,
			Tasks:       rec.Tasks,
		})
	}
	return out, nil
}
