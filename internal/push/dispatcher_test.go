package push_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/riders-app/pinchazo-backend/internal/config"
	"github.com/riders-app/pinchazo-backend/internal/models"
	"github.com/riders-app/pinchazo-backend/internal/push"
	"github.com/riders-app/pinchazo-backend/internal/push/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func testConfig(batchSize int) *config.Config {
	return &config.Config{
		PushBatchSize:     batchSize,
		PushTimeout:       5 * time.Second,
		PushSummaryWindow: 10 * time.Millisecond,
	}
}

// expoStub records every batch it receives and answers one ticket per
// message, with overridable outcomes per token.
type expoStub struct {
	mu      sync.Mutex
	batches [][]push.Message

	// failFor makes the whole batch containing the token fail with 500.
	failFor map[string]bool
	// deadFor answers DeviceNotRegistered for the token.
	deadFor map[string]bool
}

func (s *expoStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var batch []push.Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))

		s.mu.Lock()
		s.batches = append(s.batches, batch)
		s.mu.Unlock()

		for _, m := range batch {
			if s.failFor[m.To] {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		tickets := make([]push.Ticket, len(batch))
		for i, m := range batch {
			if s.deadFor[m.To] {
				tickets[i] = push.Ticket{Status: "error", Details: &push.TicketDetails{Error: "DeviceNotRegistered"}}
				continue
			}
			tickets[i] = push.Ticket{Status: "ok"}
		}
		json.NewEncoder(w).Encode(map[string][]push.Ticket{"data": tickets})
	}
}

func expoTokens(n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("ExponentPushToken[%03d]", i)
	}
	return tokens
}

func TestDispatch_SplitsLargeAudienceIntoBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	stub := &expoStub{}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	tokensMock := mocks.NewMockTokenSource(ctrl)
	tokensMock.EXPECT().
		TokensForUsers(gomock.Any(), gomock.Any()).
		Return(expoTokens(150), nil)

	cfg := testConfig(100)
	d := push.NewDispatcher(nil, tokensMock, push.NewExpoTransport(server.URL, cfg.PushTimeout), testLogger(), cfg)

	res := d.Dispatch(context.Background(), push.Job{Kind: models.KindPinchazoAlert, Recipients: []int64{1}})

	assert.True(t, res.OK())
	assert.Equal(t, 150, res.Targets)
	assert.Equal(t, 150, res.Sent)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Len(t, stub.batches, 2)
	sizes := []int{len(stub.batches[0]), len(stub.batches[1])}
	assert.ElementsMatch(t, []int{100, 50}, sizes)
}

func TestDispatch_DropsMalformedTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	stub := &expoStub{}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	tokensMock := mocks.NewMockTokenSource(ctrl)
	tokensMock.EXPECT().
		TokensForUsers(gomock.Any(), gomock.Any()).
		Return([]string{"ExponentPushToken[good]", "apns-raw-token", "fcm:something"}, nil)

	cfg := testConfig(100)
	d := push.NewDispatcher(nil, tokensMock, push.NewExpoTransport(server.URL, cfg.PushTimeout), testLogger(), cfg)

	res := d.Dispatch(context.Background(), push.Job{Kind: models.KindTest, Recipients: []int64{1}})

	assert.Equal(t, 2, res.Dropped)
	assert.Equal(t, 1, res.Targets)
	assert.Equal(t, 1, res.Sent)
}

func TestDispatch_NoValidRecipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	tokensMock := mocks.NewMockTokenSource(ctrl)
	tokensMock.EXPECT().
		TokensForUsers(gomock.Any(), gomock.Any()).
		Return([]string{"bogus-1", "bogus-2"}, nil)

	cfg := testConfig(100)
	d := push.NewDispatcher(nil, tokensMock, push.NewExpoTransport(server.URL, cfg.PushTimeout), testLogger(), cfg)

	res := d.Dispatch(context.Background(), push.Job{Kind: models.KindTest, Recipients: []int64{1}})

	assert.True(t, res.NoValidRecipients)
	assert.Equal(t, 2, res.Dropped)
	assert.Zero(t, requests, "nothing should reach the transport")
}

func TestDispatch_PrunesDeadTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	dead := "ExponentPushToken[dead]"
	stub := &expoStub{deadFor: map[string]bool{dead: true}}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	pruned := make(chan []string, 1)
	tokensMock := mocks.NewMockTokenSource(ctrl)
	tokensMock.EXPECT().
		TokensForUsers(gomock.Any(), gomock.Any()).
		Return([]string{"ExponentPushToken[live]", dead}, nil)
	tokensMock.EXPECT().
		DeleteTokens(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tokens []string) (int64, error) {
			pruned <- tokens
			return int64(len(tokens)), nil
		})

	cfg := testConfig(100)
	d := push.NewDispatcher(nil, tokensMock, push.NewExpoTransport(server.URL, cfg.PushTimeout), testLogger(), cfg)

	res := d.Dispatch(context.Background(), push.Job{Kind: models.KindGomeroAccepted, Recipients: []int64{7}})

	assert.Equal(t, 1, res.Sent, "the dead device does not count as delivered")
	assert.Equal(t, 1, res.TicketErrors)

	select {
	case tokens := <-pruned:
		assert.Equal(t, []string{dead}, tokens)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the dead token to be pruned")
	}
}

func TestDispatch_ChunkFailureDoesNotAbortSiblings(t *testing.T) {
	ctrl := gomock.NewController(t)
	bad := "ExponentPushToken[bad]"
	stub := &expoStub{failFor: map[string]bool{bad: true}}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	tokensMock := mocks.NewMockTokenSource(ctrl)
	tokensMock.EXPECT().
		TokensForUsers(gomock.Any(), gomock.Any()).
		Return([]string{"ExponentPushToken[ok]", bad}, nil)

	// Batch size 1 puts each token in its own chunk.
	cfg := testConfig(1)
	d := push.NewDispatcher(nil, tokensMock, push.NewExpoTransport(server.URL, cfg.PushTimeout), testLogger(), cfg)

	res := d.Dispatch(context.Background(), push.Job{Kind: models.KindTest, Recipients: []int64{1, 2}})

	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.ChunkErrors)
	assert.False(t, res.OK())
}

func TestDispatch_BroadcastResolvesAllExceptSender(t *testing.T) {
	ctrl := gomock.NewController(t)
	stub := &expoStub{}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	tokensMock := mocks.NewMockTokenSource(ctrl)
	tokensMock.EXPECT().
		TokensForAllExcept(gomock.Any(), int64(7)).
		Return(expoTokens(3), nil)

	cfg := testConfig(100)
	d := push.NewDispatcher(nil, tokensMock, push.NewExpoTransport(server.URL, cfg.PushTimeout), testLogger(), cfg)

	res := d.Dispatch(context.Background(), push.Job{Kind: models.KindTest, Broadcast: true, ExceptUserID: 7})

	assert.Equal(t, 3, res.Sent)
}

func TestDispatch_SilentJobOmitsSound(t *testing.T) {
	ctrl := gomock.NewController(t)
	stub := &expoStub{}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	tokensMock := mocks.NewMockTokenSource(ctrl)
	tokensMock.EXPECT().
		TokensForUsers(gomock.Any(), gomock.Any()).
		Return(expoTokens(1), nil)

	cfg := testConfig(100)
	d := push.NewDispatcher(nil, tokensMock, push.NewExpoTransport(server.URL, cfg.PushTimeout), testLogger(), cfg)

	d.Dispatch(context.Background(), push.Job{Kind: models.KindChatMessage, Recipients: []int64{1}, Silent: true})

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Len(t, stub.batches, 1)
	assert.Empty(t, stub.batches[0][0].Sound)
	assert.Equal(t, "high", stub.batches[0][0].Priority)
}
