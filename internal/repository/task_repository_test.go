package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/testutil"
	"gorm.io/gorm"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	repo    TaskRepository
	project *models.Project
	user    *models.User
	ctx     context.Context
}

func (s *TaskRepositoryTestSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.repo = NewTaskRepository(s.db)
	s.ctx = context.Background()

	s.user = testutil.CreateUser(s.T(), s.db, "owner", "o@x.com", "secret1")
	s.project = &models.Project{Name: "Board", CreatorID: s.user.ID}
	s.Require().NoError(NewProjectRepository(s.db).CreateWithOwner(s.ctx, s.project))
}

func (s *TaskRepositoryTestSuite) TestCreateForcesTodo() {
	for _, status := range []models.TaskStatus{"", models.TaskStatusDone, models.TaskStatusInProgress, "bogus"} {
		task := &models.Task{ProjectID: s.project.ID, Title: "Draft outline", Status: status}
		s.Require().NoError(s.repo.Create(s.ctx, task))

		stored, err := s.repo.FindByID(s.ctx, task.ID)
		s.Require().NoError(err)
		s.Equal(models.TaskStatusTodo, stored.Status)
	}
}

func (s *TaskRepositoryTestSuite) TestUpdateStatus() {
	task := &models.Task{ProjectID: s.project.ID, Title: "Write"}
	s.Require().NoError(s.repo.Create(s.ctx, task))

	s.Require().NoError(s.repo.UpdateStatus(s.ctx, task.ID, models.TaskStatusDone))

	stored, err := s.repo.FindByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusDone, stored.Status)
}

func (s *TaskRepositoryTestSuite) TestUpdateStatusWritesUnknownValueAsIs() {
	task := &models.Task{ProjectID: s.project.ID, Title: "Write"}
	s.Require().NoError(s.repo.Create(s.ctx, task))

	s.Require().NoError(s.repo.UpdateStatus(s.ctx, task.ID, "archived"))

	stored, err := s.repo.FindByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(models.TaskStatus("archived"), stored.Status)
}

func (s *TaskRepositoryTestSuite) TestUpdateStatusMissingTask() {
	s.ErrorIs(s.repo.UpdateStatus(s.ctx, 4242, models.TaskStatusDone), gorm.ErrRecordNotFound)
}

func (s *TaskRepositoryTestSuite) TestAssignAnyUser() {
	outsider := testutil.CreateUser(s.T(), s.db, "outsider", "out@x.com", "secret1")
	task := &models.Task{ProjectID: s.project.ID, Title: "Review"}
	s.Require().NoError(s.repo.Create(s.ctx, task))

	s.Require().NoError(s.repo.Assign(s.ctx, task.ID, outsider.ID))

	stored, err := s.repo.FindByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.AssigneeID)
	s.Equal(outsider.ID, *stored.AssigneeID)

	s.ErrorIs(s.repo.Assign(s.ctx, 4242, outsider.ID), gorm.ErrRecordNotFound)
}

func (s *TaskRepositoryTestSuite) TestListByProject() {
	other := &models.Project{Name: "Other", CreatorID: s.user.ID}
	s.Require().NoError(NewProjectRepository(s.db).CreateWithOwner(s.ctx, other))

	s.Require().NoError(s.repo.Create(s.ctx, &models.Task{ProjectID: s.project.ID, Title: "A"}))
	s.Require().NoError(s.repo.Create(s.ctx, &models.Task{ProjectID: s.project.ID, Title: "B"}))
	s.Require().NoError(s.repo.Create(s.ctx, &models.Task{ProjectID: other.ID, Title: "C"}))

	tasks, err := s.repo.ListByProject(s.ctx, s.project.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 2)
	s.Equal("A", tasks[0].Title)
	s.Equal("B", tasks[1].Title)

	empty, err := s.repo.ListByProject(s.ctx, 4242)
	s.Require().NoError(err)
	s.Empty(empty)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
