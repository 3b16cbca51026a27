package service_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riders-app/pinchazo-backend/internal/config"
	"github.com/riders-app/pinchazo-backend/internal/models"
	"github.com/riders-app/pinchazo-backend/internal/service"
	"github.com/riders-app/pinchazo-backend/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAlertService builds a service instance wired to mocks.
func newTestAlertService(t *testing.T) (service.AlertService, *mocks.MockAlertRepository, *mocks.MockUserDirectory, *mocks.MockNotifier) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAlertRepository(ctrl)
	usersMock := mocks.NewMockUserDirectory(ctrl)
	notifierMock := mocks.NewMockNotifier(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // silence logs in tests

	cfg := &config.Config{
		PendingAlertTTL:     30 * time.Minute,
		GomeroMaxCandidates: 50,
	}

	resolver := service.NewGomeroResolver(usersMock, 0, cfg.GomeroMaxCandidates)
	svc := service.NewAlertService(repoMock, usersMock, resolver, notifierMock, logger, cfg)
	return svc, repoMock, usersMock, notifierMock
}

func testRider(id int64) *models.User {
	return &models.User{ID: id, Nombre: "Carlos", Role: models.RoleUser, IsActive: true}
}

func testGomero(id int64) *models.User {
	return &models.User{ID: id, Nombre: "Miguel", Telefono: "+595981234567", Role: models.RoleGomero, IsActive: true, Available: true}
}

func TestSubmit_CancelsPreviousOpenAlerts(t *testing.T) {
	svc, repoMock, usersMock, notifierMock := newTestAlertService(t)
	ctx := context.Background()
	riderID := int64(7)
	newID := uuid.New()

	usersMock.EXPECT().
		FindByID(ctx, riderID).
		Return(testRider(riderID), nil).
		Times(1)

	repoMock.EXPECT().
		CreateReplacingOpen(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, alert *models.PinchazoAlert, _ string) (int64, error) {
			assert.Equal(t, models.StatusPending, alert.Status)
			assert.Equal(t, riderID, alert.UserID)
			alert.ID = newID
			return 1, nil
		}).
		Times(1)

	usersMock.EXPECT().
		ListAvailableGomeros(ctx).
		Return([]*models.User{testGomero(20), testGomero(21)}, nil).
		Times(1)

	notifierMock.EXPECT().
		AlertCreated(ctx, gomock.Any(), "Carlos", gomock.Len(2)).
		Times(1)

	alert, err := svc.Submit(ctx, riderID, -25.2637, -57.5759, "rueda trasera")

	require.NoError(t, err)
	assert.Equal(t, newID, alert.ID)
	assert.Equal(t, models.StatusPending, alert.Status)
}

// Two submits from the same rider race. The store replaces open alerts
// and inserts atomically per call; after both settle the rider must
// hold exactly one open alert.
func TestSubmit_ConcurrentSubmitsLeaveOneOpenAlert(t *testing.T) {
	svc, repoMock, usersMock, notifierMock := newTestAlertService(t)
	riderID := int64(7)

	usersMock.EXPECT().
		FindByID(gomock.Any(), riderID).
		Return(testRider(riderID), nil).
		Times(2)
	usersMock.EXPECT().
		ListAvailableGomeros(gomock.Any()).
		Return(nil, nil).
		Times(2)
	notifierMock.EXPECT().
		AlertCreated(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	var mu sync.Mutex
	open := make(map[uuid.UUID]struct{})
	repoMock.EXPECT().
		CreateReplacingOpen(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, alert *models.PinchazoAlert, _ string) (int64, error) {
			mu.Lock()
			defer mu.Unlock()
			swept := int64(len(open))
			open = map[uuid.UUID]struct{}{}
			alert.ID = uuid.New()
			open[alert.ID] = struct{}{}
			return swept, nil
		}).
		Times(2)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), riderID, -25.2637, -57.5759, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, open, 1, "requester must hold exactly one open alert")
}

func TestSubmit_InvalidLocation(t *testing.T) {
	svc, _, _, _ := newTestAlertService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 7, 120.0, -57.5759, "")
	require.ErrorIs(t, err, service.ErrValidation)

	// The zero point is rejected: it is what broken clients send.
	_, err = svc.Submit(ctx, 7, 0, 0, "")
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestSubmit_RiderNotFound(t *testing.T) {
	svc, _, usersMock, _ := newTestAlertService(t)
	ctx := context.Background()

	usersMock.EXPECT().
		FindByID(ctx, int64(404)).
		Return(nil, nil).
		Times(1)

	_, err := svc.Submit(ctx, 404, -25.2637, -57.5759, "")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSubmit_NoAvailableGomeros(t *testing.T) {
	svc, repoMock, usersMock, notifierMock := newTestAlertService(t)
	ctx := context.Background()
	riderID := int64(7)

	usersMock.EXPECT().FindByID(ctx, riderID).Return(testRider(riderID), nil)
	repoMock.EXPECT().CreateReplacingOpen(ctx, gomock.Any(), gomock.Any()).Return(int64(0), nil)
	usersMock.EXPECT().ListAvailableGomeros(ctx).Return(nil, nil)

	// Nobody to notify, but the alert still lands in the pool.
	notifierMock.EXPECT().AlertCreated(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	alert, err := svc.Submit(ctx, riderID, -25.2637, -57.5759, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, alert.Status)
}

func TestAccept_Success(t *testing.T) {
	svc, repoMock, usersMock, notifierMock := newTestAlertService(t)
	ctx := context.Background()
	gomeroID := int64(20)
	alertID := uuid.New()

	usersMock.EXPECT().
		FindByID(ctx, gomeroID).
		Return(testGomero(gomeroID), nil).
		Times(1)

	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p service.TransitionParams) (*models.PinchazoAlert, error) {
			assert.Equal(t, models.StatusPending, p.From)
			assert.Equal(t, models.StatusAccepted, p.To)
			assert.True(t, p.RequireNoGomero)
			require.NotNil(t, p.SetGomero)
			assert.Equal(t, gomeroID, *p.SetGomero)
			return &models.PinchazoAlert{ID: alertID, UserID: 7, GomeroID: &gomeroID, Status: models.StatusAccepted}, nil
		}).
		Times(1)

	notifierMock.EXPECT().
		GomeroAccepted(ctx, gomock.Any(), "Miguel", "+595981234567").
		Times(1)

	alert, err := svc.Accept(ctx, gomeroID, alertID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, alert.Status)
	require.NotNil(t, alert.GomeroID)
	assert.Equal(t, gomeroID, *alert.GomeroID)
}

func TestAccept_NotAGomero(t *testing.T) {
	svc, _, usersMock, _ := newTestAlertService(t)
	ctx := context.Background()

	usersMock.EXPECT().
		FindByID(ctx, int64(7)).
		Return(testRider(7), nil).
		Times(1)

	_, err := svc.Accept(ctx, 7, uuid.New())
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestAccept_AlreadyTaken(t *testing.T) {
	svc, repoMock, usersMock, _ := newTestAlertService(t)
	ctx := context.Background()
	gomeroID := int64(20)

	usersMock.EXPECT().FindByID(ctx, gomeroID).Return(testGomero(gomeroID), nil)
	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		Return(nil, nil).
		Times(1)

	_, err := svc.Accept(ctx, gomeroID, uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)
}

// Two gomeros race for the same pending alert. The store admits one
// conditional update; the loser must see ErrNotFound and no
// notification may go out on their behalf.
func TestAccept_ConcurrentSingleWinner(t *testing.T) {
	svc, repoMock, usersMock, notifierMock := newTestAlertService(t)
	alertID := uuid.New()
	first, second := int64(20), int64(21)

	usersMock.EXPECT().
		FindByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64) (*models.User, error) {
			return testGomero(id), nil
		}).
		Times(2)

	var mu sync.Mutex
	taken := false
	repoMock.EXPECT().
		ConditionalTransition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p service.TransitionParams) (*models.PinchazoAlert, error) {
			mu.Lock()
			defer mu.Unlock()
			if taken {
				return nil, nil
			}
			taken = true
			return &models.PinchazoAlert{ID: alertID, UserID: 7, GomeroID: p.SetGomero, Status: models.StatusAccepted}, nil
		}).
		Times(2)

	notifierMock.EXPECT().
		GomeroAccepted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(1)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []int64{first, second} {
		wg.Add(1)
		go func(gomeroID int64) {
			defer wg.Done()
			_, err := svc.Accept(context.Background(), gomeroID, alertID)
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, service.ErrNotFound)
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
}

func TestReject_ReturnsAlertToPool(t *testing.T) {
	svc, repoMock, usersMock, notifierMock := newTestAlertService(t)
	ctx := context.Background()
	gomeroID := int64(20)
	alertID := uuid.New()

	usersMock.EXPECT().FindByID(ctx, gomeroID).Return(testGomero(gomeroID), nil)

	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p service.TransitionParams) (*models.PinchazoAlert, error) {
			assert.Equal(t, models.StatusAccepted, p.From)
			assert.Equal(t, models.StatusPending, p.To)
			require.NotNil(t, p.RequireGomero)
			assert.Equal(t, gomeroID, *p.RequireGomero)
			assert.Nil(t, p.SetGomero, "rejecting must clear the assignment")
			return &models.PinchazoAlert{ID: alertID, UserID: 7, Status: models.StatusPending}, nil
		}).
		Times(1)

	notifierMock.EXPECT().
		StatusChanged(ctx, gomock.Any(), models.KindGomeroRejected).
		Times(1)

	alert, err := svc.Reject(ctx, gomeroID, alertID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, alert.Status)
	assert.Nil(t, alert.GomeroID)
}

func TestReject_NotTheHolder(t *testing.T) {
	svc, repoMock, usersMock, _ := newTestAlertService(t)
	ctx := context.Background()
	gomeroID := int64(20)

	usersMock.EXPECT().FindByID(ctx, gomeroID).Return(testGomero(gomeroID), nil)
	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		Return(nil, nil).
		Times(1)

	_, err := svc.Reject(ctx, gomeroID, uuid.New())
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestAdvance_Success(t *testing.T) {
	svc, repoMock, usersMock, notifierMock := newTestAlertService(t)
	ctx := context.Background()
	gomeroID := int64(20)
	alertID := uuid.New()

	usersMock.EXPECT().FindByID(ctx, gomeroID).Return(testGomero(gomeroID), nil)
	repoMock.EXPECT().
		GetByID(ctx, alertID).
		Return(&models.PinchazoAlert{ID: alertID, UserID: 7, GomeroID: &gomeroID, Status: models.StatusAccepted}, nil)

	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p service.TransitionParams) (*models.PinchazoAlert, error) {
			assert.Equal(t, models.StatusAccepted, p.From)
			assert.Equal(t, models.StatusOnWay, p.To)
			return &models.PinchazoAlert{ID: alertID, UserID: 7, GomeroID: &gomeroID, Status: models.StatusOnWay}, nil
		}).
		Times(1)

	notifierMock.EXPECT().
		StatusChanged(ctx, gomock.Any(), models.KindGomeroOnWay).
		Times(1)

	alert, err := svc.Advance(ctx, gomeroID, alertID, models.StatusOnWay)

	require.NoError(t, err)
	assert.Equal(t, models.StatusOnWay, alert.Status)
}

func TestAdvance_InvalidTarget(t *testing.T) {
	svc, _, _, _ := newTestAlertService(t)

	_, err := svc.Advance(context.Background(), 20, uuid.New(), models.StatusPending)
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestAdvance_AssignedToAnotherGomero(t *testing.T) {
	svc, repoMock, usersMock, _ := newTestAlertService(t)
	ctx := context.Background()
	gomeroID, otherID := int64(20), int64(99)
	alertID := uuid.New()

	usersMock.EXPECT().FindByID(ctx, gomeroID).Return(testGomero(gomeroID), nil)
	repoMock.EXPECT().
		GetByID(ctx, alertID).
		Return(&models.PinchazoAlert{ID: alertID, UserID: 7, GomeroID: &otherID, Status: models.StatusAccepted}, nil)

	_, err := svc.Advance(ctx, gomeroID, alertID, models.StatusOnWay)
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestAdvance_OutOfOrder(t *testing.T) {
	svc, repoMock, usersMock, _ := newTestAlertService(t)
	ctx := context.Background()
	gomeroID := int64(20)
	alertID := uuid.New()

	usersMock.EXPECT().FindByID(ctx, gomeroID).Return(testGomero(gomeroID), nil)
	// The alert is still accepted; jumping straight to arrived is
	// rejected by the guarded update.
	repoMock.EXPECT().
		GetByID(ctx, alertID).
		Return(&models.PinchazoAlert{ID: alertID, UserID: 7, GomeroID: &gomeroID, Status: models.StatusAccepted}, nil)
	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		Return(nil, nil).
		Times(1)

	_, err := svc.Advance(ctx, gomeroID, alertID, models.StatusArrived)
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestCancel_ByRequester(t *testing.T) {
	svc, repoMock, _, notifierMock := newTestAlertService(t)
	ctx := context.Background()
	riderID := int64(7)
	alertID := uuid.New()

	repoMock.EXPECT().
		GetByID(ctx, alertID).
		Return(&models.PinchazoAlert{ID: alertID, UserID: riderID, Status: models.StatusPending}, nil)

	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p service.TransitionParams) (*models.PinchazoAlert, error) {
			assert.ElementsMatch(t, models.OpenStatuses, p.FromAnyOf)
			assert.Equal(t, models.StatusCancelled, p.To)
			assert.Nil(t, p.RequireGomero)
			return &models.PinchazoAlert{ID: alertID, UserID: riderID, Status: models.StatusCancelled}, nil
		}).
		Times(1)

	// A rider cancelling their own alert produces no push.
	notifierMock.EXPECT().StatusChanged(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	alert, err := svc.Cancel(ctx, riderID, alertID, "ya lo arreglé")

	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, alert.Status)
}

func TestCancel_ByAssignedGomero(t *testing.T) {
	svc, repoMock, _, notifierMock := newTestAlertService(t)
	ctx := context.Background()
	gomeroID := int64(20)
	alertID := uuid.New()

	repoMock.EXPECT().
		GetByID(ctx, alertID).
		Return(&models.PinchazoAlert{ID: alertID, UserID: 7, GomeroID: &gomeroID, Status: models.StatusOnWay}, nil)

	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p service.TransitionParams) (*models.PinchazoAlert, error) {
			require.NotNil(t, p.RequireGomero)
			assert.Equal(t, gomeroID, *p.RequireGomero)
			return &models.PinchazoAlert{ID: alertID, UserID: 7, Status: models.StatusCancelled}, nil
		}).
		Times(1)

	notifierMock.EXPECT().
		StatusChanged(ctx, gomock.Any(), models.KindServiceCancelled).
		Times(1)

	_, err := svc.Cancel(ctx, gomeroID, alertID, "")
	require.NoError(t, err)
}

func TestCancel_ForeignActor(t *testing.T) {
	svc, repoMock, _, _ := newTestAlertService(t)
	ctx := context.Background()
	alertID := uuid.New()

	repoMock.EXPECT().
		GetByID(ctx, alertID).
		Return(&models.PinchazoAlert{ID: alertID, UserID: 7, Status: models.StatusPending}, nil)

	_, err := svc.Cancel(ctx, 999, alertID, "")
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestCancel_AlreadyClosed(t *testing.T) {
	svc, repoMock, _, _ := newTestAlertService(t)
	ctx := context.Background()
	riderID := int64(7)
	alertID := uuid.New()

	repoMock.EXPECT().
		GetByID(ctx, alertID).
		Return(&models.PinchazoAlert{ID: alertID, UserID: riderID, Status: models.StatusCompleted}, nil)
	repoMock.EXPECT().
		ConditionalTransition(ctx, gomock.Any()).
		Return(nil, nil).
		Times(1)

	_, err := svc.Cancel(ctx, riderID, alertID, "")
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestGetAlert_NotFound(t *testing.T) {
	svc, repoMock, _, _ := newTestAlertService(t)
	ctx := context.Background()
	alertID := uuid.New()

	repoMock.EXPECT().GetByID(ctx, alertID).Return(nil, nil)

	_, err := svc.GetAlert(ctx, alertID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestExpireStalePending(t *testing.T) {
	svc, repoMock, _, _ := newTestAlertService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		CancelStalePending(ctx, 30*time.Minute).
		Return(int64(3), nil).
		Times(1)

	expired, err := svc.ExpireStalePending(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)
}
