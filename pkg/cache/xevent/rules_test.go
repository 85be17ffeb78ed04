package xevent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_PaymentDetected(t *testing.T) {
	rules := DefaultRules()

	pred, ok := rules.Resolve(PaymentDetected{CorridorID: "usdc-xlm"})
	require.True(t, ok)

	assert.True(t, pred("corridor:usdc-xlm:stats"))
	assert.True(t, pred("corridor:usdc-xlm:volume"))
	assert.False(t, pred("corridor:usdc-eur:stats"))
	assert.False(t, pred("anchor:anchor-a:health"))
}

func TestDefaultRules_AnchorStatusChanged(t *testing.T) {
	rules := DefaultRules()

	pred, ok := rules.Resolve(AnchorStatusChanged{AnchorID: "anchor-a"})
	require.True(t, ok)

	assert.True(t, pred("anchor:anchor-a:health"))
	assert.False(t, pred("anchor:anchor-b:health"))
	assert.False(t, pred("corridor:anchor-a:stats"))
}

func TestDefaultRules_AdminInvalidate(t *testing.T) {
	rules := DefaultRules()

	pred, ok := rules.Resolve(AdminInvalidate{Pattern: "corridor:*:stats"})
	require.True(t, ok)

	assert.True(t, pred("corridor:usdc-xlm:stats"))
	assert.False(t, pred("corridor:usdc-xlm:volume"))
}

func TestDefaultRules_StructuralEventsUnresolved(t *testing.T) {
	rules := DefaultRules()

	// TTLSweep 与 MemoryPressure 由维护循环结构化处理，不在规则表内。
	_, ok := rules.Resolve(TTLSweep{})
	assert.False(t, ok)

	_, ok = rules.Resolve(MemoryPressure{TargetSize: 10})
	assert.False(t, ok)
}

func TestRules_Resolve_Nil(t *testing.T) {
	rules := DefaultRules()

	_, ok := rules.Resolve(nil)
	assert.False(t, ok)
}

func TestRules_Register(t *testing.T) {
	t.Run("new variant", func(t *testing.T) {
		rules := NewRules()
		err := rules.Register(KindAdminInvalidate, func(Event) Predicate {
			return func(string) bool { return true }
		})
		require.NoError(t, err)

		pred, ok := rules.Resolve(AdminInvalidate{Pattern: "ignored"})
		require.True(t, ok)
		assert.True(t, pred("anything"))
	})

	t.Run("nil matcher", func(t *testing.T) {
		rules := NewRules()
		err := rules.Register(KindAdminInvalidate, nil)
		assert.True(t, errors.Is(err, ErrNilMatcher))
	})

	t.Run("matcher rejects wrong type", func(t *testing.T) {
		rules := DefaultRules()

		// 匹配器对不匹配的动态类型返回 nil 谓词，Resolve 报告未解析。
		type fakePayment struct{ Event }
		_, ok := rules.Resolve(fakePayment{Event: AnchorStatusChanged{AnchorID: "x"}})
		assert.False(t, ok)
	})
}
