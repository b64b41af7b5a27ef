package guard_test

import (
	"errors"
	"sync"
	"testing"

	"procurement/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard returns nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value guard returns supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("PublishOrderCommand must be created via NewPublishOrderCommand")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value guard falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errNotConstructed := errors.New("rejectCommand must be created via newRejectCommand")

	type rejectCommand struct {
		reason string
		guard  guard.ConstructorGuard
	}

	newRejectCommand := func(reason string) rejectCommand {
		return rejectCommand{reason: reason, guard: guard.NewConstructorGuard()}
	}

	t.Run("should accept command built by constructor", func(t *testing.T) {
		cmd := newRejectCommand("budget cut")
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, "budget cut", cmd.reason)
	})

	t.Run("should reject struct literal", func(t *testing.T) {
		cmd := rejectCommand{reason: "budget cut"}
		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("copies keep their construction state", func(t *testing.T) {
		original := newRejectCommand("duplicate")
		copied := original
		require.NoError(t, copied.guard.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(nil))
		}()
	}
	wg.Wait()
}
