package hierarchy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closurelabs/traininglog/internal/models"
)

type fakeLoader struct {
	projects []models.Project
	campuses map[string][]models.Campus
	byProj   map[string][]models.Batch
	byCampus map[string][]models.Batch
	fail     bool
}

func (f *fakeLoader) Projects(context.Context) ([]models.Project, error) {
	if f.fail {
		return nil, errors.New("backend down")
	}
	return f.projects, nil
}

func (f *fakeLoader) CampusesByProject(_ context.Context, id string) ([]models.Campus, error) {
	if f.fail {
		return nil, errors.New("backend down")
	}
	return f.campuses[id], nil
}

func (f *fakeLoader) BatchesByProject(_ context.Context, id string) ([]models.Batch, error) {
	return f.byProj[id], nil
}

func (f *fakeLoader) BatchesByCampus(_ context.Context, id string) ([]models.Batch, error) {
	return f.byCampus[id], nil
}

func strPtr(s string) *string { return &s }

func newFake() *fakeLoader {
	return &fakeLoader{
		projects: []models.Project{{ID: "p2", Name: "Zeta"}, {ID: "p1", Name: "Alpha"}},
		campuses: map[string][]models.Campus{
			"p1": {
				{ID: "c2", Name: "Pune", ProjectID: "p1"},
				{ID: "c1", Name: "Mumbai", ProjectID: "p1"},
			},
			"p2": {},
		},
		byProj: map[string][]models.Batch{
			"p1": {{ID: "b1", Name: "Batch B", ProjectID: "p1", CampusID: strPtr("c1")}},
			"p2": {{ID: "b9", Name: "Batch Z", ProjectID: "p2"}},
		},
		byCampus: map[string][]models.Batch{
			"c1": {
				{ID: "b2", Name: "Batch B", ProjectID: "p1", CampusID: strPtr("c1")},
				{ID: "b1", Name: "Batch A", ProjectID: "p1", CampusID: strPtr("c1")},
			},
		},
	}
}

func TestSelectorSortsByName(t *testing.T) {
	s := NewSelector(newFake())
	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.Projects, 2)
	assert.Equal(t, "Alpha", s.Projects[0].Name)
	assert.Equal(t, "Zeta", s.Projects[1].Name)
}

func TestSetProjectCascades(t *testing.T) {
	s := NewSelector(newFake())
	ctx := context.Background()
	require.NoError(t, s.SetProject(ctx, "p1"))

	assert.True(t, s.ProjectHasCampuses())
	require.Len(t, s.Campuses, 2)
	assert.Equal(t, "Mumbai", s.Campuses[0].Name, "campuses sorted by name")
	assert.Equal(t, Selection{ProjectID: "p1"}, s.Selection)

	require.NoError(t, s.SetCampus(ctx, "c1"))
	require.Len(t, s.Batches, 2)
	assert.Equal(t, "Batch A", s.Batches[0].Name, "campus batch list supersedes project list")
	assert.Empty(t, s.Selection.BatchID)

	// switching project resets campus and batch selection
	require.NoError(t, s.SetProject(ctx, "p2"))
	assert.Equal(t, Selection{ProjectID: "p2"}, s.Selection)
	assert.False(t, s.ProjectHasCampuses())
	require.Len(t, s.Batches, 1)
}

func TestSetCampusRequiresProject(t *testing.T) {
	s := NewSelector(newFake())
	assert.ErrorIs(t, s.SetCampus(context.Background(), "c1"), ErrNoProject)
}

func TestResolveCampusShortcut(t *testing.T) {
	ctx := context.Background()

	// two campuses: explicit choice mandatory
	s := NewSelector(newFake())
	require.NoError(t, s.SetProject(ctx, "p1"))
	_, err := s.ResolveCampus("")
	assert.ErrorIs(t, err, ErrCampusRequired)

	campus, err := s.ResolveCampus("c2")
	require.NoError(t, err)
	assert.Equal(t, "Pune", campus.Name)

	_, err = s.ResolveCampus("unknown")
	assert.ErrorIs(t, err, ErrCampusMismatch)

	// zero campuses: flat project, campus level absent
	require.NoError(t, s.SetProject(ctx, "p2"))
	campus, err = s.ResolveCampus("")
	require.NoError(t, err)
	assert.Nil(t, campus)

	// exactly one campus: used implicitly
	f := newFake()
	f.campuses["p1"] = f.campuses["p1"][:1]
	s = NewSelector(f)
	require.NoError(t, s.SetProject(ctx, "p1"))
	campus, err = s.ResolveCampus("")
	require.NoError(t, err)
	require.NotNil(t, campus)
	assert.Equal(t, "Pune", campus.Name)
}

func TestLoadFailureLeavesEmptyList(t *testing.T) {
	f := newFake()
	f.fail = true
	s := NewSelector(f)
	assert.Error(t, s.Load(context.Background()))
	assert.Empty(t, s.Projects)
}
