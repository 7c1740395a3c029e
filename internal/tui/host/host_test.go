package host

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
	"github.com/stretchr/testify/require"
)

type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) { c <- msg }

func receive(t *testing.T, c chanSender) tea.Msg {
	t.Helper()
	select {
	case msg := <-c:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message sent to program")
		return nil
	}
}

func newManager(t *testing.T, h *Host) *overlay.Manager {
	t.Helper()
	m := overlay.NewManager()
	require.NoError(t, m.Init(h))
	t.Cleanup(m.Dispose)
	return m
}

func TestInsertRequiresReady(t *testing.T) {
	h := New()
	_, err := h.Insert(overlay.Layer{ID: "a"})
	require.ErrorIs(t, err, overlay.ErrHostUnavailable)

	h.SetReady(true)
	tok, err := h.Insert(overlay.Layer{ID: "a"})
	require.NoError(t, err)
	require.Len(t, h.Layers(), 1)

	h.Remove(tok)
	h.Remove(tok)
	h.Remove("not a token")
	require.Empty(t, h.Layers())
}

func TestLayersKeepZOrder(t *testing.T) {
	h := New()
	h.SetReady(true)
	_, err := h.Insert(overlay.Layer{ID: "bottom"})
	require.NoError(t, err)
	mid, err := h.Insert(overlay.Layer{ID: "middle"})
	require.NoError(t, err)
	_, err = h.Insert(overlay.Layer{ID: "top"})
	require.NoError(t, err)

	top, ok := h.Topmost()
	require.True(t, ok)
	require.Equal(t, "top", top.ID)

	h.Remove(mid)
	var ids []string
	for _, l := range h.Layers() {
		ids = append(ids, l.ID)
	}
	require.Equal(t, []string{"bottom", "top"}, ids)
}

func TestTopmostEmpty(t *testing.T) {
	_, ok := New().Topmost()
	require.False(t, ok)
}

func TestNotifiesProgram(t *testing.T) {
	h := New()
	sent := make(chanSender, 8)
	h.Attach(sent)

	h.SetReady(true)
	require.Equal(t, ReadyMsg{}, receive(t, sent))
	h.SetReady(true)

	tok, err := h.Insert(overlay.Layer{ID: "a"})
	require.NoError(t, err)
	require.Equal(t, LayersChangedMsg{Count: 1}, receive(t, sent))

	h.Remove(tok)
	require.Equal(t, LayersChangedMsg{Count: 0}, receive(t, sent))

	h.Attach(nil)
	_, err = h.Insert(overlay.Layer{ID: "b"})
	require.NoError(t, err)
	select {
	case msg := <-sent:
		t.Fatalf("unexpected message %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeferredOverlaysFlushWhenReady(t *testing.T) {
	h := New()
	m := newManager(t, h)

	toast, err := m.ShowToast("saved", overlay.WithID("t1"))
	require.NoError(t, err)
	require.True(t, m.IsOpen(toast.ID()))
	require.Empty(t, h.Layers())

	h.SetReady(true)
	layers := h.Layers()
	require.Len(t, layers, 1)
	require.Equal(t, "t1", layers[0].ID)
	require.Equal(t, overlay.CategoryToast, layers[0].Category)

	require.True(t, m.Close(toast, nil))
	require.Empty(t, h.Layers())
}

func TestDismissTopmostSkipsNonDismissible(t *testing.T) {
	h := New()
	h.SetReady(true)
	m := newManager(t, h)

	dialog, err := m.ShowDialog("confirm?", overlay.WithID("d1"))
	require.NoError(t, err)
	_, err = m.ShowBanner("offline", overlay.WithID("b1"), overlay.WithDismissible(false))
	require.NoError(t, err)

	require.True(t, h.DismissTopmost())
	require.False(t, m.IsOpen("d1"))
	require.True(t, m.IsOpen("b1"))

	res, ok := dialog.Result()
	require.True(t, ok)
	require.Nil(t, res)

	require.False(t, h.DismissTopmost())
	require.Len(t, h.Layers(), 1)
}

func TestDismissTopmostFallsThroughExitingLayer(t *testing.T) {
	h := New()
	h.SetReady(true)
	m := overlay.NewManager()
	require.NoError(t, m.Init(h, overlay.WithControllerOptions(
		overlay.WithTransitions(overlay.TimedTransitions(0, 300*time.Millisecond)),
	)))
	defer m.Dispose()

	_, err := m.ShowDialog("below", overlay.WithID("below"))
	require.NoError(t, err)
	_, err = m.ShowDialog("above", overlay.WithID("above"))
	require.NoError(t, err)

	require.True(t, h.DismissTopmost())
	require.False(t, m.IsOpen("above"))
	require.True(t, m.IsOpen("below"))
	top, ok := h.Topmost()
	require.True(t, ok)
	require.Equal(t, "above", top.ID, "exiting layer stays drawn")

	require.True(t, h.DismissTopmost())
	require.False(t, m.IsOpen("below"))
	require.False(t, h.DismissTopmost())

	require.Eventually(t, func() bool { return len(h.Layers()) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestForwardsLifecycleEvents(t *testing.T) {
	h := New()
	h.SetReady(true)
	sent := make(chanSender, 16)
	h.Attach(sent)

	m := overlay.NewManager()
	require.NoError(t, m.Init(h, overlay.WithControllerOptions(overlay.WithObserver(h))))
	defer m.Dispose()

	_, err := m.ShowToast("hi", overlay.WithID("t1"))
	require.NoError(t, err)

	var types []overlay.EventType
	deadline := time.After(time.Second)
	for len(types) < 2 {
		select {
		case msg := <-sent:
			if ev, ok := msg.(EventMsg); ok {
				require.Equal(t, "t1", ev.Event.Handle.ID())
				types = append(types, ev.Event.Type)
			}
		case <-deadline:
			t.Fatalf("got events %v", types)
		}
	}
	require.ElementsMatch(t, []overlay.EventType{overlay.EventShown, overlay.EventVisible}, types)
}
