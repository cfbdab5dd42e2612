package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/infra/storage/calendarmem"
	policyRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/policy"
	"github.com/katiabooking/KB-BookingService/internal/integrations/payservice"
	"github.com/katiabooking/KB-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type mockPolicyRepo struct {
	policy *domain.BookingPolicy
	err    error
}

func (m *mockPolicyRepo) GetWithHierarchy(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error) {
	return m.policy, m.err
}

type mockPayClient struct {
	refund   *payservice.Refund
	err      error
	requests []payservice.RefundRequest
}

func (m *mockPayClient) CreateRefund(ctx context.Context, req payservice.RefundRequest) (*payservice.Refund, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.refund, nil
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 20, hour, min, 0, 0, time.UTC)
}

func seedConfirmed(t *testing.T, store *calendarmem.Store, deposit int64, chargeRef *string) *domain.ReservationRecord {
	t.Helper()
	rec := &domain.ReservationRecord{
		ID:            "r1",
		MasterID:      10,
		SalonID:       1,
		ClientID:      100,
		Interval:      domain.Interval{Start: at(14, 0), End: at(15, 0)},
		Status:        domain.StatusConfirmed,
		DepositAmount: deposit,
		ChargeRef:     chargeRef,
	}
	require.NoError(t, store.Append(context.Background(), rec.MasterID, rec.Interval.Start, rec))
	return rec
}

func newTestUseCase(store *calendarmem.Store, pay *mockPayClient, clock *fixedTimeProvider) *UseCase {
	return NewUseCase(
		store,
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		pay,
		nopLogger{},
	).WithTimeProvider(clock)
}

func TestExecute_CancelWithFullRefund(t *testing.T) {
	// Отмена за 48 часов до визита: полный возврат по дефолтной политике
	clock := &fixedTimeProvider{now: at(14, 0).Add(-48 * time.Hour)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	pay := &mockPayClient{refund: &payservice.Refund{ID: "ref-1", Amount: 10000, Status: "succeeded"}}
	uc := newTestUseCase(store, pay, clock)

	seedConfirmed(t, store, 10000, ptr.Ptr("charge-1"))

	resp, err := uc.Execute(context.Background(), Request{
		ReservationID: "r1",
		ClientID:      100,
		Reason:        "передумала",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Record.Status)
	assert.Equal(t, int64(10000), resp.RefundAmount)
	require.NotNil(t, resp.RefundID)
	assert.Equal(t, "ref-1", *resp.RefundID)

	require.Len(t, pay.requests, 1)
	assert.Equal(t, int64(10000), pay.requests[0].Amount)
	assert.Equal(t, "charge-1", pay.requests[0].ChargeRef)

	stored, err := store.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancellationReason)
	assert.Equal(t, "передумала", *stored.CancellationReason)
	require.NotNil(t, stored.CancelledAt)
}

func TestExecute_PartialRefundTier(t *testing.T) {
	// За 15 часов: частичный возврат 50%
	clock := &fixedTimeProvider{now: at(14, 0).Add(-15 * time.Hour)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	pay := &mockPayClient{refund: &payservice.Refund{ID: "ref-2", Amount: 5000}}
	uc := newTestUseCase(store, pay, clock)

	seedConfirmed(t, store, 10000, ptr.Ptr("charge-1"))

	resp, err := uc.Execute(context.Background(), Request{ReservationID: "r1", ClientID: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), resp.RefundAmount)
}

func TestExecute_LateCancellationNoRefund(t *testing.T) {
	// За 2 часа: возврата нет, шлюз не вызывается
	clock := &fixedTimeProvider{now: at(14, 0).Add(-2 * time.Hour)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	pay := &mockPayClient{}
	uc := newTestUseCase(store, pay, clock)

	seedConfirmed(t, store, 10000, ptr.Ptr("charge-1"))

	resp, err := uc.Execute(context.Background(), Request{ReservationID: "r1", ClientID: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.RefundAmount)
	assert.Nil(t, resp.RefundID)
	assert.Empty(t, pay.requests)
}

func TestExecute_NoDepositSkipsGateway(t *testing.T) {
	clock := &fixedTimeProvider{now: at(14, 0).Add(-48 * time.Hour)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	pay := &mockPayClient{}
	uc := newTestUseCase(store, pay, clock)

	seedConfirmed(t, store, 0, nil)

	resp, err := uc.Execute(context.Background(), Request{ReservationID: "r1", ClientID: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.RefundAmount)
	assert.Empty(t, pay.requests)
}

func TestExecute_RefundFailureAbortsCancellation(t *testing.T) {
	clock := &fixedTimeProvider{now: at(14, 0).Add(-48 * time.Hour)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	pay := &mockPayClient{err: errors.New("gateway timeout")}
	uc := newTestUseCase(store, pay, clock)

	seedConfirmed(t, store, 10000, ptr.Ptr("charge-1"))

	_, err := uc.Execute(context.Background(), Request{ReservationID: "r1", ClientID: 100})
	assert.ErrorIs(t, err, ErrRefundFailed)

	// Запись осталась активной
	stored, err := store.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestExecute_NoShowByStaff(t *testing.T) {
	clock := &fixedTimeProvider{now: at(14, 0).Add(time.Hour)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	pay := &mockPayClient{}
	uc := newTestUseCase(store, pay, clock)

	seedConfirmed(t, store, 10000, ptr.Ptr("charge-1"))

	// Дефолтная политика запрещает возврат при no-show
	resp, err := uc.Execute(context.Background(), Request{
		ReservationID: "r1",
		IsStaff:       true,
		Reason:        "клиент не пришел",
		IsNoShow:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.RefundAmount)
	assert.Empty(t, pay.requests)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	clock := &fixedTimeProvider{now: at(14, 0).Add(-48 * time.Hour)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	uc := newTestUseCase(store, &mockPayClient{}, clock)

	seedConfirmed(t, store, 0, nil)

	_, err := uc.Execute(context.Background(), Request{ReservationID: "r1", ClientID: 100})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), Request{ReservationID: "r1", ClientID: 100})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_AccessDenied(t *testing.T) {
	clock := &fixedTimeProvider{now: at(14, 0).Add(-48 * time.Hour)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	uc := newTestUseCase(store, &mockPayClient{}, clock)

	seedConfirmed(t, store, 0, nil)

	_, err := uc.Execute(context.Background(), Request{ReservationID: "r1", ClientID: 200})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Сотрудник салона может отменить чужую запись
	_, err = uc.Execute(context.Background(), Request{ReservationID: "r1", IsStaff: true})
	assert.NoError(t, err)
}

func TestExecute_RecordNotFound(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	uc := newTestUseCase(calendarmem.NewStoreWithTimeProvider(clock), &mockPayClient{}, clock)

	_, err := uc.Execute(context.Background(), Request{ReservationID: "missing", ClientID: 100})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestExecute_ExpiredHoldCannotBeCancelled(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	uc := newTestUseCase(store, &mockPayClient{}, clock)

	expired := clock.now.Add(-time.Minute)
	rec := &domain.ReservationRecord{
		ID:        "h1",
		MasterID:  10,
		SalonID:   1,
		ClientID:  100,
		Interval:  domain.Interval{Start: at(14, 0), End: at(15, 0)},
		Status:    domain.StatusTempHold,
		ExpiresAt: &expired,
	}
	require.NoError(t, store.Append(context.Background(), rec.MasterID, rec.Interval.Start, rec))

	_, err := uc.Execute(context.Background(), Request{ReservationID: "h1", ClientID: 100})
	assert.ErrorIs(t, err, ErrCannotCancel)
}
