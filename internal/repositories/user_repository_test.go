package repositories

import (
	"context"
	"testing"

	"portfolio-tracker/internal/database"
	"portfolio-tracker/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
	ctx  context.Context
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
	s.ctx = context.Background()
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) TestCreate() {
	user := &models.User{FirstName: "Alice", LastName: "Doe", Email: "alice@x.com"}

	err := s.repo.Create(s.ctx, user)
	s.NoError(err)
	s.Positive(user.ID)

	second := &models.User{FirstName: "Bob", LastName: "Roe", Email: "bob@x.com"}
	s.NoError(s.repo.Create(s.ctx, second))
	s.NotEqual(user.ID, second.ID)
}

func (s *UserRepositorySuite) TestCreate_MissingName() {
	err := s.repo.Create(s.ctx, &models.User{LastName: "Doe"})

	s.Error(err)
	s.Equal(OutcomeConstraint, Classify(err))
	s.ErrorIs(err, models.ErrFirstNameRequired)

	var count int64
	s.NoError(s.db.Model(&models.User{}).Count(&count).Error)
	s.Zero(count)
}

func (s *UserRepositorySuite) TestCreate_Nil() {
	s.Error(s.repo.Create(s.ctx, nil))
}

func (s *UserRepositorySuite) TestGetByID() {
	user := &models.User{FirstName: "Alice", LastName: "Doe", Email: "alice@x.com"}
	s.NoError(s.repo.Create(s.ctx, user))

	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.Equal("Alice", found.FirstName)
	s.Equal("Doe", found.LastName)
	s.Equal("alice@x.com", found.Email)
}

func (s *UserRepositorySuite) TestGetByID_NotFound() {
	found, err := s.repo.GetByID(s.ctx, 999)

	s.Nil(found)
	s.ErrorIs(err, ErrUserNotFound)
	s.Equal(OutcomeNotFound, Classify(err))
}

func (s *UserRepositorySuite) TestUpdateEmail() {
	user := &models.User{FirstName: "Alice", LastName: "Doe", Email: "alice@x.com"}
	s.NoError(s.repo.Create(s.ctx, user))

	s.NoError(s.repo.UpdateEmail(s.ctx, user.ID, "new@x.com"))

	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.Equal("new@x.com", found.Email)
}

func (s *UserRepositorySuite) TestUpdateEmail_AcceptsAnyString() {
	user := &models.User{FirstName: "Alice", LastName: "Doe", Email: "alice@x.com"}
	s.NoError(s.repo.Create(s.ctx, user))

	s.NoError(s.repo.UpdateEmail(s.ctx, user.ID, "definitely not an email"))

	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.Equal("definitely not an email", found.Email)
}

func (s *UserRepositorySuite) TestUpdateEmail_NotFound() {
	err := s.repo.UpdateEmail(s.ctx, 12345, "x@y.z")

	s.ErrorIs(err, ErrUserNotFound)
}
