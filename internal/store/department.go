package store

import (
	"sort"
	"time"

	"github.com/viosson/agentorg/internal/catalog"
)

// departmentRecord is the on-disk shape of one department. The file is a
// single JSON object keyed by department id. Positions are keyed by name;
// each agent record embeds its full position definition, and the loader
// rebuilds the position catalog from the first agent record seen per name.
// A position holding zero agents is therefore not persisted and is lost on
// reload. Known limitation of the format, kept for file compatibility.
type departmentRecord struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	Type          catalog.DeptType           `json:"type"`
	Description   string                     `json:"description"`
	LeadAgentID   string                     `json:"lead_agent_id"`
	LeadAgentName string                     `json:"lead_agent_name"`
	Positions     map[string][]catalog.Agent `json:"positions"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// DepartmentStore reads and writes the department file. It satisfies
// catalog.Saver so a catalog.Registry can persist through it directly.
type DepartmentStore struct {
	path string
}

// NewDepartmentStore creates a store backed by the given file path.
func NewDepartmentStore(path string) *DepartmentStore {
	return &DepartmentStore{path: path}
}

// Path returns the backing file path.
func (s *DepartmentStore) Path() string { return s.path }

// SaveDepartments writes all department snapshots atomically.
func (s *DepartmentStore) SaveDepartments(depts []catalog.Department) error {
	file := make(map[string]departmentRecord, len(depts))
	for _, d := range depts {
		rec := departmentRecord{
			ID:            d.ID,
			Name:          d.Name,
			Type:          d.Type,
			Description:   d.Description,
			LeadAgentID:   d.LeadID,
			LeadAgentName: d.LeadName,
			Positions:     make(map[string][]catalog.Agent),
			CreatedAt:     d.CreatedAt,
			UpdatedAt:     d.UpdatedAt,
		}
		for _, pg := range d.Positions {
			if len(pg.Agents) == 0 {
				continue // dropped: the format cannot carry an empty position
			}
			rec.Positions[pg.Position.Name] = pg.Agents
		}
		file[d.ID] = rec
	}
	return writeFileAtomic(s.path, file)
}

// Load reads the department file. A missing file is a first run and returns
// no departments and no error. JSON maps carry no order, so departments and
// positions come back sorted by id and name.
func (s *DepartmentStore) Load() ([]catalog.Department, error) {
	var file map[string]departmentRecord
	found, err := readFile(s.path, &file)
	if err != nil || !found {
		return nil, err
	}

	deptIDs := make([]string, 0, len(file))
	for id := range file {
		deptIDs = append(deptIDs, id)
	}
	sort.Strings(deptIDs)

	out := make([]catalog.Department, 0, len(deptIDs))
	for _, id := range deptIDs {
		rec := file[id]
		d := catalog.Department{
			ID:          rec.ID,
			Name:        rec.Name,
			Type:        rec.Type,
			Description: rec.Description,
			LeadID:      rec.LeadAgentID,
			LeadName:    rec.LeadAgentName,
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
		}
		posNames := make([]string, 0, len(rec.Positions))
		for name := range rec.Positions {
			posNames = append(posNames, name)
		}
		sort.Strings(posNames)
		for _, name := range posNames {
			agents := rec.Positions[name]
			if len(agents) == 0 {
				continue
			}
			d.Positions = append(d.Positions, catalog.PositionGroup{
				Position: agents[0].Position,
				Agents:   agents,
			})
		}
		out = append(out, d)
	}
	return out, nil
}
