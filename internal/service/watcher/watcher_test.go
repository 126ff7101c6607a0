package watcher

import (
	"context"
	"errors"
	"testing"

	"github.com/anatoliyserebry/cryptowatchlive/internal/entity"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/notification"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSubRepo struct {
	subs        map[int64]*entity.Subscription
	findErr     error
	lastEvalErr error
}

func newMemSubRepo(subs ...entity.Subscription) *memSubRepo {
	r := &memSubRepo{subs: make(map[int64]*entity.Subscription)}
	for i := range subs {
		s := subs[i]
		r.subs[s.Id] = &s
	}
	return r
}

func (r *memSubRepo) Create(ctx context.Context, sub entity.Subscription) (int64, error) {
	sub.Id = int64(len(r.subs) + 1)
	r.subs[sub.Id] = &sub
	return sub.Id, nil
}

func (r *memSubRepo) FindByOwner(ctx context.Context, ownerId int64) ([]entity.Subscription, error) {
	var out []entity.Subscription
	for _, s := range r.subs {
		if s.OwnerId == ownerId {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSubRepo) FindActive(ctx context.Context) ([]entity.Subscription, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []entity.Subscription
	for _, s := range r.subs {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSubRepo) UpdateStatus(ctx context.Context, id, ownerId int64, active bool) (bool, error) {
	s, ok := r.subs[id]
	if !ok || s.OwnerId != ownerId {
		return false, nil
	}
	s.IsActive = active
	return true, nil
}

func (r *memSubRepo) UpdateLastEval(ctx context.Context, id int64, ok bool) error {
	if r.lastEvalErr != nil {
		return r.lastEvalErr
	}
	v := ok
	r.subs[id].LastEval = &v
	return nil
}

func (r *memSubRepo) Delete(ctx context.Context, id, ownerId int64) (bool, error) {
	s, ok := r.subs[id]
	if !ok || s.OwnerId != ownerId {
		return false, nil
	}
	delete(r.subs, id)
	return true, nil
}

func (r *memSubRepo) DeleteByOwner(ctx context.Context, ownerId int64) (int64, error) {
	var n int64
	for id, s := range r.subs {
		if s.OwnerId == ownerId {
			delete(r.subs, id)
			n++
		}
	}
	return n, nil
}

type memUserRepo struct {
	muted map[int64]bool
	err   error
}

func (r *memUserRepo) EnsureExists(ctx context.Context, ownerId int64) error {
	return nil
}

func (r *memUserRepo) IsMuted(ctx context.Context, ownerId int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.muted[ownerId], nil
}

func (r *memUserRepo) SetMuted(ctx context.Context, ownerId int64, muted bool) error {
	if r.muted == nil {
		r.muted = make(map[int64]bool)
	}
	r.muted[ownerId] = muted
	return nil
}

type stubResolver struct {
	quote rate.Quote
	err   error
}

func (s *stubResolver) Resolve(ctx context.Context, base, quote string) (rate.Quote, error) {
	return s.quote, s.err
}

type recordSink struct {
	events []notification.Event
}

func (r *recordSink) Enqueue(event notification.Event) {
	r.events = append(r.events, event)
}

func boolPtr(b bool) *bool {
	return &b
}

func newSub(id int64, lastEval *bool) entity.Subscription {
	return entity.Subscription{
		Id:        id,
		OwnerId:   100,
		Base:      "BTC",
		Quote:     "USD",
		Operator:  ">",
		Threshold: 30000,
		IsActive:  true,
		LastEval:  lastEval,
	}
}

func TestScan_NotifyOnFirstCrossing(t *testing.T) {
	subRepo := newMemSubRepo(newSub(1, nil))
	sink := &recordSink{}
	w := NewWatcher(subRepo, &memUserRepo{}, &stubResolver{quote: rate.Quote{Price: 31000}}, WithSink(sink))

	require.NoError(t, w.Scan(context.Background()))

	require.Len(t, sink.events, 1)
	event := sink.events[0]
	assert.Equal(t, int64(1), event.SubscriptionId)
	assert.Equal(t, int64(100), event.OwnerId)
	assert.Equal(t, "BTC", event.Base)
	assert.Equal(t, "USD", event.Quote)
	assert.Equal(t, 31000.0, event.Price)

	require.NotNil(t, subRepo.subs[1].LastEval)
	assert.True(t, *subRepo.subs[1].LastEval)
}

func TestScan_NoRepeatWhileTrue(t *testing.T) {
	subRepo := newMemSubRepo(newSub(1, boolPtr(true)))
	sink := &recordSink{}
	w := NewWatcher(subRepo, &memUserRepo{}, &stubResolver{quote: rate.Quote{Price: 31000}}, WithSink(sink))

	require.NoError(t, w.Scan(context.Background()))

	assert.Empty(t, sink.events, "condition still true, no repeat notification")
	assert.True(t, *subRepo.subs[1].LastEval)
}

func TestScan_ReArmAfterFalse(t *testing.T) {
	subRepo := newMemSubRepo(newSub(1, boolPtr(true)))
	sink := &recordSink{}
	resolver := &stubResolver{quote: rate.Quote{Price: 29000}}
	w := NewWatcher(subRepo, &memUserRepo{}, resolver, WithSink(sink))

	// 跌破阈值: 不通知, last_eval 置 false
	require.NoError(t, w.Scan(context.Background()))
	assert.Empty(t, sink.events)
	assert.False(t, *subRepo.subs[1].LastEval)

	// 再次突破: 重新通知
	resolver.quote = rate.Quote{Price: 32000}
	require.NoError(t, w.Scan(context.Background()))
	assert.Len(t, sink.events, 1)
}

func TestScan_MutedSuppressesDeliveryNotTracking(t *testing.T) {
	subRepo := newMemSubRepo(newSub(1, nil))
	users := &memUserRepo{muted: map[int64]bool{100: true}}
	sink := &recordSink{}
	resolver := &stubResolver{quote: rate.Quote{Price: 31000}}
	w := NewWatcher(subRepo, users, resolver, WithSink(sink))

	require.NoError(t, w.Scan(context.Background()))
	assert.Empty(t, sink.events)
	require.NotNil(t, subRepo.subs[1].LastEval)
	assert.True(t, *subRepo.subs[1].LastEval, "edge state advances even while muted")

	// 解除静音后条件仍为true: 不能立刻触发旧的一次
	users.muted[100] = false
	require.NoError(t, w.Scan(context.Background()))
	assert.Empty(t, sink.events)
}

func TestScan_ResolveFailureKeepsLastEval(t *testing.T) {
	subRepo := newMemSubRepo(newSub(1, boolPtr(false)))
	sink := &recordSink{}
	w := NewWatcher(subRepo, &memUserRepo{}, &stubResolver{err: rate.ErrNoRateAvailable}, WithSink(sink))

	require.NoError(t, w.Scan(context.Background()), "one bad pair must not break the cycle")
	assert.Empty(t, sink.events)
	require.NotNil(t, subRepo.subs[1].LastEval)
	assert.False(t, *subRepo.subs[1].LastEval, "skipped subscription keeps its prior edge state")
}

func TestScan_StoreFailurePropagates(t *testing.T) {
	subRepo := newMemSubRepo()
	subRepo.findErr = errors.New("store unavailable")
	w := NewWatcher(subRepo, &memUserRepo{}, &stubResolver{}, WithSink(&recordSink{}))

	assert.Error(t, w.Scan(context.Background()))
}

func TestScan_ChangeIncludedInEvent(t *testing.T) {
	subRepo := newMemSubRepo(newSub(1, nil))
	sink := &recordSink{}
	ch := 2.5
	w := NewWatcher(subRepo, &memUserRepo{}, &stubResolver{quote: rate.Quote{Price: 31000, Change: &ch}}, WithSink(sink))

	require.NoError(t, w.Scan(context.Background()))
	require.Len(t, sink.events, 1)
	require.NotNil(t, sink.events[0].Change)
	assert.Equal(t, 2.5, *sink.events[0].Change)
}

func TestScan_PersistFailureWithholdsNotification(t *testing.T) {
	subRepo := newMemSubRepo(newSub(1, nil))
	subRepo.lastEvalErr = errors.New("disk full")
	sink := &recordSink{}
	w := NewWatcher(subRepo, &memUserRepo{}, &stubResolver{quote: rate.Quote{Price: 31000}}, WithSink(sink))

	// 落盘失败: 不投递, 边沿状态保持未推进
	require.NoError(t, w.Scan(context.Background()))
	assert.Empty(t, sink.events, "no notification without a persisted edge state")
	assert.Nil(t, subRepo.subs[1].LastEval)

	// 存储恢复且条件持续为true: 这次才通知, 且只通知一次
	subRepo.lastEvalErr = nil
	require.NoError(t, w.Scan(context.Background()))
	assert.Len(t, sink.events, 1)

	require.NoError(t, w.Scan(context.Background()))
	assert.Len(t, sink.events, 1, "condition continuously true, no repeat")
}

func TestScan_CorruptOperatorSkipped(t *testing.T) {
	sub := newSub(1, nil)
	sub.Operator = "="
	subRepo := newMemSubRepo(sub)
	sink := &recordSink{}
	w := NewWatcher(subRepo, &memUserRepo{}, &stubResolver{quote: rate.Quote{Price: 31000}}, WithSink(sink))

	require.NoError(t, w.Scan(context.Background()))
	assert.Empty(t, sink.events)
	assert.Nil(t, subRepo.subs[1].LastEval, "corrupt row is skipped, not evaluated")
}

func TestScan_MuteReadFailureAssumesUnmuted(t *testing.T) {
	subRepo := newMemSubRepo(newSub(1, nil))
	sink := &recordSink{}
	users := &memUserRepo{err: errors.New("store hiccup")}
	w := NewWatcher(subRepo, users, &stubResolver{quote: rate.Quote{Price: 31000}}, WithSink(sink))

	require.NoError(t, w.Scan(context.Background()))
	assert.Len(t, sink.events, 1)
}
