package annotate

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmechtley/hstfocus/internal/common/errors"
	"github.com/mmechtley/hstfocus/internal/common/logger"
	"github.com/mmechtley/hstfocus/internal/focus/query"
)

// ==========================
// Mock Fetcher Implementation
// ==========================

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetModelData(ctx context.Context, params query.Params) (*query.Result, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.Result), args.Error(1)
}

// ==========================
// Fake Header Implementation
// ==========================

type fakeHeader struct {
	cards     map[string]string
	writes    []float64
	readErr   error
	writeErr  error
	lastWrite string
}

func newFakeHeader() *fakeHeader {
	return &fakeHeader{cards: map[string]string{
		"DATE-OBS": "2010-06-21",
		"TIME-OBS": "12:15:00",
	}}
}

func (h *fakeHeader) Name() string { return "test.fits" }

func (h *fakeHeader) ReadCard(name string) (string, error) {
	if h.readErr != nil {
		return "", h.readErr
	}
	value, ok := h.cards[name]
	if !ok {
		return "", stderrors.New("keyword " + name + " not present")
	}
	return value, nil
}

func (h *fakeHeader) WriteCard(name string, value float64, comment string) error {
	if h.writeErr != nil {
		return h.writeErr
	}
	h.lastWrite = name
	h.writes = append(h.writes, value)
	return nil
}

// ==========================
// Test Helpers
// ==========================

func newTestService(t *testing.T, fetcher Fetcher) *Service {
	t.Helper()
	svc, err := NewService(ServiceDependencies{
		Logger:  logger.NewTestLogger(t),
		Fetcher: fetcher,
	}, DefaultConfig())
	require.NoError(t, err)
	return svc
}

func tableOf(values ...float64) *query.FocusTable {
	table := &query.FocusTable{}
	base := time.Date(2010, 6, 21, 12, 0, 0, 0, time.UTC)
	for i, v := range values {
		table.Rows = append(table.Rows, query.Row{
			Timestamp: base.Add(time.Duration(i) * 5 * time.Minute),
			Defocus:   v,
		})
	}
	return table
}

// ==========================
// Tests
// ==========================

func TestAddMeanFocus_WritesMean(t *testing.T) {
	hdr := newFakeHeader()
	svc := newTestService(t, nil)

	mean, err := svc.AddMeanFocus(context.Background(), hdr, tableOf(1.0, 2.0, 6.0))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mean, 1e-9)
	require.Len(t, hdr.writes, 1)
	assert.Equal(t, "MEANFOCS", hdr.lastWrite)
	assert.InDelta(t, 3.0, hdr.writes[0], 1e-9)
}

func TestAddMeanFocus_OverwritesNotAccumulates(t *testing.T) {
	hdr := newFakeHeader()
	svc := newTestService(t, nil)

	_, err := svc.AddMeanFocus(context.Background(), hdr, tableOf(2.0, 4.0))
	require.NoError(t, err)
	_, err = svc.AddMeanFocus(context.Background(), hdr, tableOf(10.0))
	require.NoError(t, err)

	require.Len(t, hdr.writes, 2)
	assert.InDelta(t, 3.0, hdr.writes[0], 1e-9)
	assert.InDelta(t, 10.0, hdr.writes[1], 1e-9, "second write carries the new mean, not a sum")
}

func TestAddMeanFocus_EmptyTableLeavesHeaderUntouched(t *testing.T) {
	hdr := newFakeHeader()
	svc := newTestService(t, nil)

	_, err := svc.AddMeanFocus(context.Background(), hdr, &query.FocusTable{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEmptyTable), "got %v", err)
	assert.Empty(t, hdr.writes)
}

func TestAddMeanFocus_FetchesWhenNoTableSupplied(t *testing.T) {
	hdr := newFakeHeader()
	fetcher := new(MockFetcher)
	fetcher.On("GetModelData", mock.Anything, mock.MatchedBy(func(p query.Params) bool {
		// Window centred on TIME-OBS 12:15:00 with the default 15m half-width.
		return p.Year == 2010 && p.Date == "06/21" && p.Start == "12:00" && p.Stop == "12:30"
	})).Return(&query.Result{Table: tableOf(1.5, 2.5)}, nil)

	svc := newTestService(t, fetcher)

	mean, err := svc.AddMeanFocus(context.Background(), hdr, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 1e-9)
	require.Len(t, hdr.writes, 1)
	fetcher.AssertExpectations(t)
}

func TestAddMeanFocus_WindowClampedToObservationDay(t *testing.T) {
	hdr := newFakeHeader()
	hdr.cards["TIME-OBS"] = "00:05:00"

	fetcher := new(MockFetcher)
	fetcher.On("GetModelData", mock.Anything, mock.MatchedBy(func(p query.Params) bool {
		return p.Start == "00:00" && p.Stop == "00:20"
	})).Return(&query.Result{Table: tableOf(0.5)}, nil)

	svc := newTestService(t, fetcher)

	_, err := svc.AddMeanFocus(context.Background(), hdr, nil)
	require.NoError(t, err)
	fetcher.AssertExpectations(t)
}

func TestAddMeanFocus_FetchFailurePropagates(t *testing.T) {
	hdr := newFakeHeader()
	fetcher := new(MockFetcher)
	fetcher.On("GetModelData", mock.Anything, mock.Anything).
		Return(nil, errors.NewBadHTTPStatusError(500, "500 Internal Server Error"))

	svc := newTestService(t, fetcher)

	_, err := svc.AddMeanFocus(context.Background(), hdr, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadHTTPStatus))
	assert.Empty(t, hdr.writes)
}

func TestAddMeanFocus_MissingObservationCards(t *testing.T) {
	hdr := newFakeHeader()
	delete(hdr.cards, "TIME-OBS")

	svc := newTestService(t, new(MockFetcher))

	_, err := svc.AddMeanFocus(context.Background(), hdr, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMetadataReadFailed), "got %v", err)
}

func TestAddMeanFocus_WriteFailure(t *testing.T) {
	hdr := newFakeHeader()
	hdr.writeErr = stderrors.New("permission denied")

	svc := newTestService(t, nil)

	_, err := svc.AddMeanFocus(context.Background(), hdr, tableOf(1.0))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMetadataWriteFailed), "got %v", err)
}

func TestNewService_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MeanKeyword = "WAY-TOO-LONG-KEYWORD"
	_, err := NewService(ServiceDependencies{}, cfg)
	require.Error(t, err)
}
