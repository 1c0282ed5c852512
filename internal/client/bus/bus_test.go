package bus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublish_DeliversToAllInOrder(t *testing.T) {
	t.Parallel()

	b := New(nil)
	var got []string

	b.Subscribe(func(e Event) { got = append(got, "first") })
	b.Subscribe(func(e Event) { got = append(got, "second") })

	b.Publish(AuthChanged{})
	require.Equal(t, []string{"first", "second"}, got)
}

func TestPublish_TypedPayloads(t *testing.T) {
	t.Parallel()

	b := New(nil)
	var keys []string
	var visible []bool

	b.Subscribe(func(e Event) {
		switch ev := e.(type) {
		case StorageChanged:
			keys = append(keys, ev.Key)
		case ShowFeedbackPanel:
			visible = append(visible, ev.Visible)
		}
	})

	b.Publish(StorageChanged{Key: "auth_token"})
	b.Publish(ShowFeedbackPanel{Visible: true})
	b.Publish(AuthChanged{})

	require.Equal(t, []string{"auth_token"}, keys)
	require.Equal(t, []bool{true}, visible)
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()

	b := New(nil)
	n := 0
	unsub := b.Subscribe(func(e Event) { n++ })

	b.Publish(AuthChanged{})
	unsub()
	unsub() // second call is a no-op
	b.Publish(AuthChanged{})

	require.Equal(t, 1, n)
}

func TestPublish_HandlerPanicIsAbsorbed(t *testing.T) {
	t.Parallel()

	b := New(nil)
	reached := false

	b.Subscribe(func(e Event) { panic("broken consumer") })
	b.Subscribe(func(e Event) { reached = true })

	require.NotPanics(t, func() { b.Publish(AuthChanged{}) })
	require.True(t, reached, "later subscribers still run")
}

func TestSubscribe_Reentrant(t *testing.T) {
	t.Parallel()

	b := New(nil)
	n := 0
	b.Subscribe(func(e Event) {
		n++
		if n == 1 {
			b.Subscribe(func(e Event) { n += 10 })
		}
	})

	b.Publish(AuthChanged{}) // new subscriber must not see this event
	require.Equal(t, 1, n)

	b.Publish(AuthChanged{})
	require.Equal(t, 12, n)
}
