// Package hierarchy holds the single project → campus → batch
// selection state machine shared by the entry form, the trainer list
// and the admin dashboard, instead of each view re-deriving it.
package hierarchy

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/closurelabs/traininglog/internal/models"
)

var (
	// ErrCampusRequired: the project has two or more campuses and the
	// caller did not pick one. The single-campus shortcut never
	// applies here.
	ErrCampusRequired = errors.New("campus selection required")
	// ErrCampusMismatch: an explicit campus does not belong to the
	// selected project.
	ErrCampusMismatch = errors.New("campus does not belong to project")
	ErrNoProject      = errors.New("no project selected")
)

// Loader supplies the three collections. The db package implements it;
// tests plug in fakes.
type Loader interface {
	Projects(ctx context.Context) ([]models.Project, error)
	CampusesByProject(ctx context.Context, projectID string) ([]models.Campus, error)
	BatchesByProject(ctx context.Context, projectID string) ([]models.Batch, error)
	BatchesByCampus(ctx context.Context, campusID string) ([]models.Batch, error)
}

type Selection struct {
	ProjectID string `json:"projectId"`
	CampusID  string `json:"campusId"`
	BatchID   string `json:"batchId"`
}

// Selector keeps the dependent lists and the current selection. Lists
// are replaced wholesale on every load (fetch-and-replace, never
// patched in place) and kept name-sorted for stable display and
// deterministic export ordering.
type Selector struct {
	loader Loader
	coll   *collate.Collator

	Projects  []models.Project
	Campuses  []models.Campus
	Batches   []models.Batch
	Selection Selection
}

func NewSelector(loader Loader) *Selector {
	return &Selector{
		loader: loader,
		coll:   collate.New(language.Und, collate.Loose),
	}
}

// Load fetches the project list. A failure leaves an empty list: the
// consumer renders "no projects", it does not crash.
func (s *Selector) Load(ctx context.Context) error {
	projects, err := s.loader.Projects(ctx)
	if err != nil {
		s.Projects = nil
		return err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return s.coll.CompareString(projects[i].Name, projects[j].Name) < 0
	})
	s.Projects = projects
	return nil
}

// SetProject selects a project and reloads both project-scoped lists.
// Campus and batch selections always reset, even when the reload
// fails. An empty id clears everything below the project level.
func (s *Selector) SetProject(ctx context.Context, projectID string) error {
	s.Selection = Selection{ProjectID: projectID}
	s.Campuses = nil
	s.Batches = nil
	if projectID == "" {
		return nil
	}

	campuses, err := s.loader.CampusesByProject(ctx, projectID)
	if err != nil {
		return err
	}
	sort.SliceStable(campuses, func(i, j int) bool {
		return s.coll.CompareString(campuses[i].Name, campuses[j].Name) < 0
	})
	s.Campuses = campuses

	batches, err := s.loader.BatchesByProject(ctx, projectID)
	if err != nil {
		return err
	}
	s.setBatches(batches)
	return nil
}

// SetCampus narrows the batch list to the campus. Supersedes the
// project-scoped batch list and resets the batch selection.
func (s *Selector) SetCampus(ctx context.Context, campusID string) error {
	if s.Selection.ProjectID == "" {
		return ErrNoProject
	}
	s.Selection.CampusID = campusID
	s.Selection.BatchID = ""
	if campusID == "" {
		batches, err := s.loader.BatchesByProject(ctx, s.Selection.ProjectID)
		if err != nil {
			s.Batches = nil
			return err
		}
		s.setBatches(batches)
		return nil
	}

	batches, err := s.loader.BatchesByCampus(ctx, campusID)
	if err != nil {
		s.Batches = nil
		return err
	}
	s.setBatches(batches)
	return nil
}

func (s *Selector) SetBatch(batchID string) {
	s.Selection.BatchID = batchID
}

func (s *Selector) setBatches(batches []models.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		return s.coll.CompareString(batches[i].Name, batches[j].Name) < 0
	})
	s.Batches = batches
	s.Selection.BatchID = ""
}

// ProjectHasCampuses reports whether the selected project has a campus
// level, after a project-scoped campus fetch. Flat projects skip
// straight to batch selection.
func (s *Selector) ProjectHasCampuses() bool {
	return len(s.Campuses) > 0
}

// ResolveCampus applies the single-campus shortcut for operations that
// need a campus (batch creation, entry tagging):
//   - no campuses: the project is flat, campus level absent (nil, nil)
//   - exactly one: that campus is used implicitly
//   - two or more: an explicit choice is mandatory
//
// An explicit id is validated against the loaded campus list.
func (s *Selector) ResolveCampus(explicitID string) (*models.Campus, error) {
	if explicitID != "" {
		for i := range s.Campuses {
			if s.Campuses[i].ID == explicitID {
				return &s.Campuses[i], nil
			}
		}
		return nil, ErrCampusMismatch
	}
	switch len(s.Campuses) {
	case 0:
		return nil, nil
	case 1:
		return &s.Campuses[0], nil
	default:
		return nil, ErrCampusRequired
	}
}
