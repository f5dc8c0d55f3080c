package usecases

import (
	"net/http"
	"testing"

	"realestate-server/apperr"
	"realestate-server/dtos"
	"realestate-server/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectUseCase_Slugs(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.projects.CreateProject(&dtos.CreateProjectRequest{Name: "Green Acres"})
	require.NoError(t, err)
	assert.Equal(t, "green-acres", first.Slug)
	assert.Equal(t, entities.ProjectUpcoming, first.Status)

	second, err := env.projects.CreateProject(&dtos.CreateProjectRequest{Name: "Green Acres"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "green-acres-")

	_, err = env.projects.CreateProject(&dtos.CreateProjectRequest{Name: "Other", Slug: "green-acres"})
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	_, err = env.projects.UpdateProject(second.ID, &dtos.UpdateProjectRequest{Slug: &first.Slug})
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
}

func TestProjectUseCase_GetHidesDraftProperties(t *testing.T) {
	env := newTestEnv(t)
	project, err := env.projects.CreateProject(&dtos.CreateProjectRequest{Name: "Skyline"})
	require.NoError(t, err)

	live := propertyRequest("Tower A 1201")
	live.ProjectID = &project.ID
	_, err = env.properties.CreateProperty(live)
	require.NoError(t, err)

	draft := propertyRequest("Tower A 1202")
	draft.ProjectID = &project.ID
	draft.Status = entities.StatusDraft
	_, err = env.properties.CreateProperty(draft)
	require.NoError(t, err)

	got, err := env.projects.GetProjectBySlug("skyline")
	require.NoError(t, err)
	require.Len(t, got.Properties, 1)
	assert.Equal(t, "Tower A 1201", got.Properties[0].Title)
}

func TestProjectUseCase_DeleteDetachesProperties(t *testing.T) {
	env := newTestEnv(t)
	project, err := env.projects.CreateProject(&dtos.CreateProjectRequest{Name: "Riverside"})
	require.NoError(t, err)
	req := propertyRequest("Riverside 1")
	req.ProjectID = &project.ID
	property, err := env.properties.CreateProperty(req)
	require.NoError(t, err)

	require.NoError(t, env.projects.DeleteProject(project.ID))

	reloaded, err := env.properties.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ProjectID)

	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(env.projects.DeleteProject(project.ID)))
}
