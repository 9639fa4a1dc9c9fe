package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-board-api/internal/dto"
	"github.com/yukikurage/project-board-api/internal/models"
)

func createProject(t *testing.T, c *client, name string) dto.ProjectDTO {
	t.Helper()

	w := c.do(http.MethodPost, "/api/projects", map[string]string{"name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var project dto.ProjectDTO
	decode(t, w, &project)
	return project
}

func TestProjectHandler_RequiresSession(t *testing.T) {
	env := setupTestEnv(t)

	w := env.client(t).do(http.MethodPost, "/api/projects", map[string]string{"name": "Thesis"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.client(t).do(http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupTestEnv(t)
	c := env.client(t)
	userID := c.signUp("alice", "a@x.com", "secret1")

	project := createProject(t, c, "Thesis")
	require.Equal(t, "Thesis", project.Name)
	require.Equal(t, userID, project.CreatorID)

	w := c.do(http.MethodGet, fmt.Sprintf("/api/projects/%d/members", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var members []dto.ProjectMemberDTO
	decode(t, w, &members)
	require.Len(t, members, 1)
	require.Equal(t, userID, members[0].UserID)
	require.Equal(t, models.RoleOwner, members[0].Role)
}

func TestProjectHandler_CreateProjectValidation(t *testing.T) {
	env := setupTestEnv(t)
	c := env.client(t)
	c.signUp("alice", "a@x.com", "secret1")

	w := c.do(http.MethodPost, "/api/projects", map[string]string{"description": "no name"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"field":"name"`)
}

func TestProjectHandler_ListAndGet(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.client(t)
	owner.signUp("alice", "a@x.com", "secret1")
	guest := env.client(t)
	guest.signUp("bob", "b@x.com", "secret1")

	project := createProject(t, owner, "Thesis")

	var listed []dto.ProjectDTO
	w := guest.do(http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())

	w = owner.do(http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	require.Equal(t, project.ID, listed[0].ID)

	w = owner.do(http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusNotFound, owner.do(http.MethodGet, "/api/projects/999", nil).Code)
	require.Equal(t, http.StatusBadRequest, owner.do(http.MethodGet, "/api/projects/abc", nil).Code)
}

func TestProjectHandler_AddMember(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.client(t)
	owner.signUp("alice", "a@x.com", "secret1")
	guestID := env.client(t).signUp("bob", "b@x.com", "secret1")

	project := createProject(t, owner, "Thesis")
	path := fmt.Sprintf("/api/projects/%d/members", project.ID)

	for i := 0; i < 2; i++ {
		w := owner.do(http.MethodPost, path, map[string]interface{}{"userId": guestID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.JSONEq(t, `{"success":true}`, w.Body.String())
	}

	var members []dto.ProjectMemberDTO
	decode(t, owner.do(http.MethodGet, path, nil), &members)
	require.Len(t, members, 2)
	require.Equal(t, models.RoleMember, members[1].Role)

	w := owner.do(http.MethodPost, path, map[string]interface{}{"userId": guestID, "role": "admin"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = owner.do(http.MethodPost, path, map[string]interface{}{"userId": 999})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Progress(t *testing.T) {
	env := setupTestEnv(t)
	c := env.client(t)
	c.signUp("alice", "a@x.com", "secret1")
	project := createProject(t, c, "Thesis")
	path := fmt.Sprintf("/api/projects/%d/progress", project.ID)

	w := c.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"total":0,"completed":0,"percent":0,"byStatus":{"todo":0,"in_progress":0,"done":0}}`, w.Body.String())

	first := createTask(t, c, project.ID, "Draft outline")
	createTask(t, c, project.ID, "Collect sources")

	w = c.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", first.ID), map[string]string{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code)

	var progress dto.ProgressDTO
	decode(t, c.do(http.MethodGet, path, nil), &progress)
	require.Equal(t, 2, progress.Total)
	require.Equal(t, 1, progress.Completed)
	require.InDelta(t, 50.0, progress.Percent, 0.001)
}
