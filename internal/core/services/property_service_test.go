package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/core/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// MockPropertyRepository is a mock type for the PropertyRepository interface
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) SaveProperty(ctx context.Context, property domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListPropertiesByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) UpdateProperty(ctx context.Context, property domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PropertyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPropertyRepository
	service  portssvc.PropertySvcFacade
}

func (suite *PropertyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPropertyRepository)
	suite.service = services.NewPropertyService(suite.mockRepo, decimal.NewFromFloat(0.10))
}

// --- Test Cases ---

func (suite *PropertyServiceTestSuite) TestCreateProperty_DefaultFee() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := dto.CreatePropertyRequest{
		Name:    "Beach House",
		Address: "1 Shore Rd",
		City:    "Alexandria",
		Country: "Egypt",
	}

	suite.mockRepo.On("SaveProperty", ctx, mock.AnythingOfType("domain.Property")).Return(nil).Once()

	property, err := suite.service.CreateProperty(ctx, req, ownerID)

	suite.Require().NoError(err)
	suite.NotEmpty(property.PropertyID)
	suite.Equal(ownerID, property.OwnerID)
	suite.True(property.ManagementFeePercent.Equal(decimal.NewFromFloat(0.10)))
	suite.Equal(ownerID, property.CreatedBy)
	suite.WithinDuration(time.Now(), property.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PropertyServiceTestSuite) TestCreateProperty_FeeOverride() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	fee := decimal.NewFromFloat(0.15)
	req := dto.CreatePropertyRequest{
		Name:                 "City Flat",
		Address:              "2 Main St",
		City:                 "Cairo",
		Country:              "Egypt",
		ManagementFeePercent: &fee,
	}

	suite.mockRepo.On("SaveProperty", ctx, mock.AnythingOfType("domain.Property")).Return(nil).Once()

	property, err := suite.service.CreateProperty(ctx, req, ownerID)

	suite.Require().NoError(err)
	suite.True(property.ManagementFeePercent.Equal(fee))
}

func (suite *PropertyServiceTestSuite) TestCreateProperty_FeeOutOfRange() {
	ctx := context.Background()
	fee := decimal.NewFromFloat(1.5)
	req := dto.CreatePropertyRequest{
		Name:                 "Bad Fee",
		Address:              "3 Side St",
		City:                 "Cairo",
		Country:              "Egypt",
		ManagementFeePercent: &fee,
	}

	_, err := suite.service.CreateProperty(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProperty", mock.Anything, mock.Anything)
}

func (suite *PropertyServiceTestSuite) TestAuthorizeOwner_WrongOwner() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	property := &domain.Property{
		PropertyID: uuid.NewString(),
		OwnerID:    ownerID,
	}

	suite.mockRepo.On("FindPropertyByID", ctx, property.PropertyID).Return(property, nil).Once()

	_, err := suite.service.AuthorizeOwner(ctx, property.PropertyID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PropertyServiceTestSuite) TestAuthorizeOwner_Missing() {
	ctx := context.Background()
	propertyID := uuid.NewString()

	suite.mockRepo.On("FindPropertyByID", ctx, propertyID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthorizeOwner(ctx, propertyID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PropertyServiceTestSuite) TestUpdateProperty_PatchesFields() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	property := &domain.Property{
		PropertyID:           uuid.NewString(),
		OwnerID:              ownerID,
		Name:                 "Beach House",
		Address:              "1 Shore Rd",
		City:                 "Alexandria",
		Country:              "Egypt",
		ManagementFeePercent: decimal.NewFromFloat(0.10),
	}
	newName := "Beach Villa"

	suite.mockRepo.On("FindPropertyByID", ctx, property.PropertyID).Return(property, nil).Once()
	suite.mockRepo.On("UpdateProperty", ctx, mock.AnythingOfType("domain.Property")).Return(nil).Once()

	updated, err := suite.service.UpdateProperty(ctx, property.PropertyID, dto.UpdatePropertyRequest{Name: &newName}, ownerID)

	suite.Require().NoError(err)
	suite.Equal("Beach Villa", updated.Name)
	suite.Equal("Alexandria", updated.City)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPropertyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PropertyServiceTestSuite))
}
