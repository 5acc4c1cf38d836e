package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/core/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// MockUnitRepository is a mock type for the UnitRepositoryWithTx interface
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) ListUnitsByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) SaveUnitInTx(ctx context.Context, tx pgx.Tx, unit domain.Unit) error {
	args := m.Called(ctx, tx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) UpdateUnitInTx(ctx context.Context, tx pgx.Tx, unit domain.Unit) error {
	args := m.Called(ctx, tx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) SetUnitVisibilityInTx(ctx context.Context, tx pgx.Tx, unitID string, visible bool, userID string, now time.Time) error {
	args := m.Called(ctx, tx, unitID, visible, userID, now)
	return args.Error(0)
}

func (m *MockUnitRepository) SoftDeleteUnitInTx(ctx context.Context, tx pgx.Tx, unitID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, unitID, userID, now)
	return args.Error(0)
}

func (m *MockUnitRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockUnitRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockUnitRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockListingRepository is a mock type for the ListingRepository interface
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) SaveListingInTx(ctx context.Context, tx pgx.Tx, listing domain.Listing) error {
	args := m.Called(ctx, tx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindListingByUnitID(ctx context.Context, unitID string) (*domain.Listing, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) UpdateListingInTx(ctx context.Context, tx pgx.Tx, listing domain.Listing) error {
	args := m.Called(ctx, tx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) SetListingStateInTx(ctx context.Context, tx pgx.Tx, unitID string, active, visible bool, userID string, now time.Time) error {
	args := m.Called(ctx, tx, unitID, active, visible, userID, now)
	return args.Error(0)
}

// MockImageStore is a mock type for the imagestore.Store interface
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, objectPath, base64Image string) (string, error) {
	args := m.Called(ctx, objectPath, base64Image)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(ctx context.Context, urls []string) error {
	args := m.Called(ctx, urls)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UnitServiceTestSuite struct {
	suite.Suite
	mockUnits      *MockUnitRepository
	mockListings   *MockListingRepository
	mockImages     *MockImageStore
	mockAuthorizer *MockPropertyAuthorizer
	service        portssvc.UnitSvcFacade

	ownerID  string
	property *domain.Property
}

func (suite *UnitServiceTestSuite) SetupTest() {
	suite.mockUnits = new(MockUnitRepository)
	suite.mockListings = new(MockListingRepository)
	suite.mockImages = new(MockImageStore)
	suite.mockAuthorizer = new(MockPropertyAuthorizer)
	suite.service = services.NewUnitService(suite.mockUnits, suite.mockListings, suite.mockImages, suite.mockAuthorizer)

	suite.ownerID = uuid.NewString()
	suite.property = &domain.Property{
		PropertyID:           uuid.NewString(),
		OwnerID:              suite.ownerID,
		Name:                 "Beach House",
		Address:              "1 Shore Rd",
		City:                 "Alexandria",
		Country:              "Egypt",
		ManagementFeePercent: decimal.NewFromFloat(0.10),
	}
}

func (suite *UnitServiceTestSuite) liveUnit() *domain.Unit {
	return &domain.Unit{
		UnitID:         uuid.NewString(),
		PropertyID:     suite.property.PropertyID,
		Name:           "Room A",
		PricePerNight:  decimal.NewFromInt(120),
		Bedrooms:       2,
		Bathrooms:      1,
		MaxGuests:      4,
		Status:         domain.UnitVacant,
		IsVisible:      true,
		MainPictureURL: "https://img.example/room-a.jpg",
	}
}

// --- Test Cases ---

func (suite *UnitServiceTestSuite) TestCreateUnit_MirrorsListing() {
	ctx := context.Background()
	req := dto.CreateUnitRequest{
		PropertyID:    suite.property.PropertyID,
		Name:          "Room A",
		PricePerNight: decimal.NewFromInt(120),
		Bedrooms:      2,
		Bathrooms:     1,
		MaxGuests:     4,
		Description:   "Sea view",
		MainPicture:   &dto.ImageUpload{Name: "front.jpg", Base64: "aGVsbG8="},
	}

	suite.mockAuthorizer.On("AuthorizeOwner", ctx, suite.property.PropertyID, suite.ownerID).Return(suite.property, nil).Once()
	suite.mockImages.On("Upload", ctx, mock.AnythingOfType("string"), "aGVsbG8=").Return("https://img.example/front.jpg", nil).Once()
	suite.mockUnits.On("Begin", ctx).Return(nil, nil).Once()

	var savedListing domain.Listing
	suite.mockUnits.On("SaveUnitInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Unit")).Return(nil).Once()
	suite.mockListings.On("SaveListingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Listing")).
		Run(func(args mock.Arguments) {
			savedListing = args.Get(2).(domain.Listing)
		}).Return(nil).Once()
	suite.mockUnits.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockUnits.On("Rollback", ctx, mock.Anything).Return(nil)

	unit, err := suite.service.CreateUnit(ctx, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(unit)
	suite.Equal(domain.UnitVacant, unit.Status)
	suite.True(unit.IsVisible)
	suite.Equal("https://img.example/front.jpg", unit.MainPictureURL)

	suite.Equal("Beach House - Room A", savedListing.Title)
	suite.Equal(unit.UnitID, savedListing.UnitID)
	suite.Equal(unit.MainPictureURL, savedListing.ImageURL)
	suite.Equal("Sea view", savedListing.Description)
	suite.Equal(suite.property.City, savedListing.City)
	suite.True(savedListing.IsActive)
	suite.True(savedListing.IsVisible)
	suite.mockUnits.AssertExpectations(suite.T())
	suite.mockListings.AssertExpectations(suite.T())
}

func (suite *UnitServiceTestSuite) TestUpdateUnit_RefreshesMirrorKeepsVisibility() {
	ctx := context.Background()
	unit := suite.liveUnit()
	// The listing was hidden earlier; an update must not resurface it.
	listing := &domain.Listing{
		ListingID: uuid.NewString(),
		UnitID:    unit.UnitID,
		HostID:    suite.ownerID,
		Title:     "Beach House - Room A",
		ImageURL:  unit.MainPictureURL,
		IsActive:  true,
		IsVisible: false,
	}

	newName := "Room B"
	newPrice := decimal.NewFromInt(150)
	req := dto.UpdateUnitRequest{Name: &newName, PricePerNight: &newPrice}

	suite.mockUnits.On("FindUnitByID", ctx, unit.UnitID).Return(unit, nil).Once()
	suite.mockAuthorizer.On("AuthorizeOwner", ctx, suite.property.PropertyID, suite.ownerID).Return(suite.property, nil).Once()
	suite.mockListings.On("FindListingByUnitID", ctx, unit.UnitID).Return(listing, nil).Once()
	suite.mockUnits.On("Begin", ctx).Return(nil, nil).Once()

	var updatedListing domain.Listing
	suite.mockUnits.On("UpdateUnitInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Unit")).Return(nil).Once()
	suite.mockListings.On("UpdateListingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Listing")).
		Run(func(args mock.Arguments) {
			updatedListing = args.Get(2).(domain.Listing)
		}).Return(nil).Once()
	suite.mockUnits.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockUnits.On("Rollback", ctx, mock.Anything).Return(nil)

	updated, err := suite.service.UpdateUnit(ctx, unit.UnitID, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal("Room B", updated.Name)
	suite.Equal("Beach House - Room B", updatedListing.Title)
	suite.True(updatedListing.PricePerNight.Equal(newPrice))
	suite.Equal(unit.MainPictureURL, updatedListing.ImageURL)
	suite.False(updatedListing.IsVisible, "update must not change listing visibility")
	suite.mockImages.AssertNotCalled(suite.T(), "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UnitServiceTestSuite) TestToggleVisibility_HidesListing() {
	ctx := context.Background()
	unit := suite.liveUnit() // currently visible

	suite.mockUnits.On("FindUnitByID", ctx, unit.UnitID).Return(unit, nil).Once()
	suite.mockAuthorizer.On("AuthorizeOwner", ctx, suite.property.PropertyID, suite.ownerID).Return(suite.property, nil).Once()
	suite.mockUnits.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockUnits.On("SetUnitVisibilityInTx", ctx, mock.Anything, unit.UnitID, false, suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockListings.On("SetListingStateInTx", ctx, mock.Anything, unit.UnitID, false, false, suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockUnits.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockUnits.On("Rollback", ctx, mock.Anything).Return(nil)

	toggled, err := suite.service.ToggleVisibility(ctx, unit.UnitID, suite.ownerID)

	suite.Require().NoError(err)
	suite.False(toggled.IsVisible)
	suite.mockListings.AssertExpectations(suite.T())
}

func (suite *UnitServiceTestSuite) TestSoftDeleteUnit_DeactivatesListing() {
	ctx := context.Background()
	unit := suite.liveUnit()

	suite.mockUnits.On("FindUnitByID", ctx, unit.UnitID).Return(unit, nil).Once()
	suite.mockAuthorizer.On("AuthorizeOwner", ctx, suite.property.PropertyID, suite.ownerID).Return(suite.property, nil).Once()
	suite.mockUnits.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockUnits.On("SoftDeleteUnitInTx", ctx, mock.Anything, unit.UnitID, suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockListings.On("SetListingStateInTx", ctx, mock.Anything, unit.UnitID, false, false, suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockUnits.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockUnits.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.SoftDeleteUnit(ctx, unit.UnitID, suite.ownerID)

	suite.Require().NoError(err)
	suite.mockUnits.AssertExpectations(suite.T())
	suite.mockListings.AssertExpectations(suite.T())
}

func (suite *UnitServiceTestSuite) TestGetUnit_DeletedReportsNotFound() {
	ctx := context.Background()
	unit := suite.liveUnit()
	unit.IsDeleted = true

	suite.mockUnits.On("FindUnitByID", ctx, unit.UnitID).Return(unit, nil).Once()
	suite.mockAuthorizer.On("AuthorizeOwner", ctx, suite.property.PropertyID, suite.ownerID).Return(suite.property, nil).Once()

	_, err := suite.service.GetUnit(ctx, unit.UnitID, suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UnitServiceTestSuite) TestGetUnit_NotOwnerForbidden() {
	ctx := context.Background()
	unit := suite.liveUnit()
	intruder := uuid.NewString()

	suite.mockUnits.On("FindUnitByID", ctx, unit.UnitID).Return(unit, nil).Once()
	suite.mockAuthorizer.On("AuthorizeOwner", ctx, suite.property.PropertyID, intruder).Return(nil, apperrors.ErrForbidden).Once()

	_, err := suite.service.GetUnit(ctx, unit.UnitID, intruder)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestUnitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UnitServiceTestSuite))
}
