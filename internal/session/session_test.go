package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/th3funto/ninja-store/internal/pricing"
	"github.com/th3funto/ninja-store/pkg/redis"
)

type fakeKV struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := f.data[key]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	f.data[key] = data
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestDefaults_New(t *testing.T) {
	sess := DefaultDefaults().New()

	assert.Equal(t, StepIdle, sess.Step)
	assert.Equal(t, "Iphone 16 / 125gb", sess.ProductName)
	assert.Equal(t, pricing.DefaultRawInputs(), sess.Inputs)
	assert.Equal(t, pricing.VisaMasterID, sess.Profile)
	assert.InDelta(t, 4850.0, sess.Breakdown().FinalCashPrice, 1e-9)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewRedisStore(kv, time.Hour)

	_, err := store.Get(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)

	sess := DefaultDefaults().New()
	sess.ProductName = "PS5"
	require.NoError(t, store.Save(ctx, 42, sess))
	assert.Equal(t, time.Hour, kv.ttls["session:42"])

	var raw map[string]any
	require.NoError(t, json.Unmarshal(kv.data["session:42"], &raw))
	assert.Equal(t, "PS5", raw["product_name"])

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Clear(ctx, 42))
	_, err = store.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	kv := newFakeKV()
	kv.data["session:7"] = []byte("{not json")

	_, err := NewRedisStore(kv, time.Hour).Get(context.Background(), 7)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)

	sess := DefaultDefaults().New()
	require.NoError(t, store.Save(ctx, 1, sess))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Clear(ctx, 1))
	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expires(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	require.NoError(t, store.Save(context.Background(), 1, DefaultDefaults().New()))

	time.Sleep(50 * time.Millisecond)

	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Edits(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(time.Hour), DefaultDefaults())

	sess, err := m.SetStep(ctx, 9, StepUSDPrice)
	require.NoError(t, err)
	assert.Equal(t, StepUSDPrice, sess.Step)

	sess, err = m.SetField(ctx, 9, StepUSDPrice, " 1000 ")
	require.NoError(t, err)
	assert.Equal(t, StepIdle, sess.Step)
	assert.Equal(t, "1000", sess.Inputs.ForeignPrice)

	sess, err = m.SetField(ctx, 9, StepMargin, "dez")
	require.NoError(t, err)
	assert.Equal(t, "dez", sess.Inputs.MarginPct)
	assert.InDelta(t, sess.Breakdown().TotalCost, sess.Breakdown().RawCashPrice, 1e-9)

	sess, err = m.ToggleRounding(ctx, 9)
	require.NoError(t, err)
	assert.False(t, sess.Inputs.SmartRounding)

	sess, err = m.SetProfile(ctx, 9, pricing.EloAmexID)
	require.NoError(t, err)
	profile, err := sess.FeeProfile()
	require.NoError(t, err)
	assert.Equal(t, "Elo / Amex", profile.Name)

	_, err = m.SetProfile(ctx, 9, "diners")
	assert.ErrorIs(t, err, pricing.ErrUnknownProfile)

	stored, err := m.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, pricing.EloAmexID, stored.Profile)

	sess, err = m.Reset(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, DefaultDefaults().New(), sess)
}

func TestManager_StoreFailure(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = true
	m := NewManager(NewRedisStore(kv, time.Hour), DefaultDefaults())

	_, err := m.Get(context.Background(), 1)
	assert.Error(t, err)

	_, err = m.ToggleRounding(context.Background(), 1)
	assert.Error(t, err)
}
