package confirm

import (
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm_RunsEffectOnce(t *testing.T) {
	r := NewRegistry()
	calls := 0

	token := r.Request(KindCheckout, "payload", func() (any, error) {
		calls++
		return "done", nil
	})
	assert.NotEmpty(t, token)

	kind, res, err := r.Confirm(token)
	require.NoError(t, err)
	assert.Equal(t, KindCheckout, kind)
	assert.Equal(t, "done", res)
	assert.Equal(t, 1, calls)

	_, _, err = r.Confirm(token)
	assert.ErrorIs(t, err, e.ErrConfirmationNotFound)
	assert.Equal(t, 1, calls)
}

func TestCancel_AbandonsWithoutSideEffect(t *testing.T) {
	r := NewRegistry()
	calls := 0

	token := r.Request(KindRemoveItem, nil, func() (any, error) {
		calls++
		return nil, nil
	})

	r.Cancel(token)
	r.Cancel(token)
	r.Cancel("unknown")

	_, _, err := r.Confirm(token)
	assert.ErrorIs(t, err, e.ErrConfirmationNotFound)
	assert.Equal(t, 0, calls)
}

func TestConfirm_EffectErrorIsReturnedAndTokenConsumed(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")

	token := r.Request(KindCheckout, nil, func() (any, error) {
		return nil, boom
	})

	_, _, err := r.Confirm(token)
	assert.ErrorIs(t, err, boom)

	_, ok := r.Get(token)
	assert.False(t, ok)
}

func TestPending_OrderedByCreation(t *testing.T) {
	r := NewRegistry()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first := r.Request(KindPrescription, int64(4), nil)
	second := r.Request(KindCheckout, nil, nil)

	pending := r.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, first, pending[0].Token)
	assert.Equal(t, int64(4), pending[0].Payload)
	assert.Equal(t, second, pending[1].Token)
}

func TestPending_SameTimestampKeepsRequestOrder(t *testing.T) {
	r := NewRegistry()
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	var want []Token
	for i := 0; i < 20; i++ {
		want = append(want, r.Request(KindRemoveItem, i, nil))
	}

	// порядок обхода map случаен, проверяем несколько раз
	for round := 0; round < 5; round++ {
		pending := r.Pending()
		require.Len(t, pending, len(want))
		for i, p := range pending {
			assert.Equal(t, want[i], p.Token)
			assert.Equal(t, i, p.Payload)
		}
	}
}

func TestCancelKind(t *testing.T) {
	r := NewRegistry()
	r.Request(KindCheckout, nil, nil)
	r.Request(KindCheckout, nil, nil)
	keep := r.Request(KindRemoveItem, nil, nil)

	r.CancelKind(KindCheckout)

	pending := r.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, keep, pending[0].Token)
}
