package service_test

import (
	"context"
	"testing"

	"github.com/riders-app/pinchazo-backend/internal/models"
	"github.com/riders-app/pinchazo-backend/internal/service"
	"github.com/riders-app/pinchazo-backend/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func locatedGomero(id int64, lat, lng float64) *models.User {
	return &models.User{ID: id, Role: models.RoleGomero, IsActive: true, Available: true, LastLat: &lat, LastLng: &lng}
}

// Asunción city centre, used as the breakdown site in these tests.
var testAlert = &models.PinchazoAlert{Latitude: -25.2637, Longitude: -57.5759}

func TestCandidates_RanksByDistance(t *testing.T) {
	ctrl := gomock.NewController(t)
	usersMock := mocks.NewMockUserDirectory(ctrl)
	resolver := service.NewGomeroResolver(usersMock, 0, 50)

	usersMock.EXPECT().ListAvailableGomeros(gomock.Any()).Return([]*models.User{
		locatedGomero(1, -25.35, -57.65), // ~12 km away
		locatedGomero(2, -25.2640, -57.5760), // ~40 m away
		locatedGomero(3, -25.28, -57.60), // ~3 km away
	}, nil)

	ids, err := resolver.Candidates(context.Background(), testAlert)

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, ids)
}

func TestCandidates_UnlocatedGomerosSortLast(t *testing.T) {
	ctrl := gomock.NewController(t)
	usersMock := mocks.NewMockUserDirectory(ctrl)
	resolver := service.NewGomeroResolver(usersMock, 0, 50)

	usersMock.EXPECT().ListAvailableGomeros(gomock.Any()).Return([]*models.User{
		{ID: 1, Role: models.RoleGomero, Available: true}, // never reported a location
		locatedGomero(2, -25.2640, -57.5760),
	}, nil)

	ids, err := resolver.Candidates(context.Background(), testAlert)

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids)
}

func TestCandidates_RadiusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	usersMock := mocks.NewMockUserDirectory(ctrl)
	resolver := service.NewGomeroResolver(usersMock, 5000, 50)

	usersMock.EXPECT().ListAvailableGomeros(gomock.Any()).Return([]*models.User{
		locatedGomero(1, -25.35, -57.65), // ~12 km, outside the radius
		locatedGomero(2, -25.28, -57.60), // ~3 km, inside
	}, nil)

	ids, err := resolver.Candidates(context.Background(), testAlert)

	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestCandidates_CapsResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	usersMock := mocks.NewMockUserDirectory(ctrl)
	resolver := service.NewGomeroResolver(usersMock, 0, 2)

	usersMock.EXPECT().ListAvailableGomeros(gomock.Any()).Return([]*models.User{
		locatedGomero(1, -25.35, -57.65),
		locatedGomero(2, -25.2640, -57.5760),
		locatedGomero(3, -25.28, -57.60),
	}, nil)

	ids, err := resolver.Candidates(context.Background(), testAlert)

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids)
}
