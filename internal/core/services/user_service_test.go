package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/core/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
	"github.com/propfolio/propfolio-backend/internal/utils"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time, now time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "s3cret-pass",
	}

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.NotEqual(req.Password, saved.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "s3cret-pass",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingAccount() {
	ctx := context.Background()
	existing := &domain.User{
		UserID: uuid.NewString(),
		Email:  "dana@example.com",
	}

	suite.mockRepo.On("FindUserByEmail", ctx, existing.Email).Return(existing, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:    "google-sub",
		Email: existing.Email,
		Name:  "Dana",
	})

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_FirstSignIn() {
	ctx := context.Background()
	email := "new@example.com"

	suite.mockRepo.On("FindUserByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:    "google-sub",
		Email: email,
		Name:  "New User",
	})

	suite.Require().NoError(err)
	suite.Equal(email, user.Email)
	suite.NotEmpty(saved.PasswordHash, "placeholder password must be set")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_LosesCreateRace() {
	ctx := context.Background()
	email := "raced@example.com"
	winner := &domain.User{UserID: uuid.NewString(), Email: email}

	suite.mockRepo.On("FindUserByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, email).Return(winner, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:    "google-sub",
		Email: email,
		Name:  "Raced",
	})

	suite.Require().NoError(err)
	suite.Equal(winner.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_MissingEmail() {
	ctx := context.Background()

	_, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{ID: "google-sub"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestSetRefreshToken_StoresHash() {
	ctx := context.Background()
	userID := uuid.NewString()
	expiry := time.Now().Add(24 * time.Hour)

	suite.mockRepo.On("UpdateRefreshToken", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("*time.Time"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			suite.NotEqual("raw-token", args.String(2), "raw token must never be stored")
			suite.NotEmpty(args.String(2))
		}).Return(nil).Once()

	err := suite.service.SetRefreshToken(ctx, userID, "raw-token", expiry)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
