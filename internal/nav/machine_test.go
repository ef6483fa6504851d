package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMachine(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, Building, m.CurrentObject())
	assert.Equal(t, Building, m.Current.Get())
	assert.Equal(t, Idle, m.Mode.Get())
	assert.False(t, m.IsLoading())
	assert.Equal(t, []string{Building}, m.History())
	assert.Equal(t, Building, m.Displayed())
	assert.True(t, m.Ready())
}

func TestModes(t *testing.T) {
	m := NewMachine()

	m.EnterLinkCreate()
	assert.Equal(t, LinkCreate, m.Mode.Get())
	m.EnterLinkRemove()
	assert.Equal(t, LinkRemove, m.Mode.Get())
	m.EnterLinkCreate()
	assert.Equal(t, LinkCreate, m.Mode.Get())
	m.ExitToIdle()
	assert.Equal(t, Idle, m.Mode.Get())
	m.ExitToIdle()
	assert.Equal(t, Idle, m.Mode.Get())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "link-create", LinkCreate.String())
	assert.Equal(t, "link-remove", LinkRemove.String())
	assert.Equal(t, "unknown", Mode(7).String())
}

func TestGoBackReturnsToSentinel(t *testing.T) {
	m := NewMachine()
	for _, target := range []string{"floor1.glb", "officeRoom.glb", "floor2.glb"} {
		m.NavigateTo(target)
	}

	for m.Depth() > 1 {
		_, ok := m.GoBack()
		require.True(t, ok)
	}
	assert.Equal(t, Building, m.CurrentObject())

	req, ok := m.GoBack()
	assert.False(t, ok)
	assert.Equal(t, Request{}, req)
	assert.Equal(t, Building, m.CurrentObject())
}

func TestNavigateDuplicates(t *testing.T) {
	m := NewMachine()
	m.NavigateTo("floor2.glb")
	original := m.History()

	m.NavigateTo("floor1.glb")
	m.NavigateTo("floor1.glb")
	assert.Len(t, m.History(), len(original)+2)

	req, ok := m.GoBack()
	require.True(t, ok)
	assert.Equal(t, "floor1.glb", req.Target)

	req, ok = m.GoBack()
	require.True(t, ok)
	assert.Equal(t, "floor2.glb", req.Target)
	assert.Equal(t, original, m.History())
	assert.Equal(t, "floor2.glb", m.CurrentObject())
}

func TestResetToBuilding(t *testing.T) {
	m := NewMachine()
	m.NavigateTo("floor1.glb")
	m.NavigateTo("officeRoom.glb")

	req := m.ResetToBuilding()
	assert.Equal(t, Building, req.Target)
	assert.Equal(t, []string{Building}, m.History())
	assert.Equal(t, Building, m.Current.Get())
}

func TestGenerations(t *testing.T) {
	m := NewMachine()

	first := m.NavigateTo("floor1.glb")
	assert.True(t, m.IsCurrent(first.Generation))

	second := m.NavigateTo("floor2.glb")
	assert.False(t, m.IsCurrent(first.Generation))
	assert.True(t, m.IsCurrent(second.Generation))

	back, ok := m.GoBack()
	require.True(t, ok)
	assert.Greater(t, back.Generation, second.Generation)
	assert.False(t, m.IsCurrent(second.Generation))

	reset := m.ResetToBuilding()
	assert.True(t, m.IsCurrent(reset.Generation))
}

func TestRefresh(t *testing.T) {
	m := NewMachine()
	first := m.NavigateTo("floor1.glb")

	req := m.Refresh()
	assert.Equal(t, "floor1.glb", req.Target)
	assert.Greater(t, req.Generation, first.Generation)
	assert.False(t, m.IsCurrent(first.Generation))
	assert.Equal(t, []string{Building, "floor1.glb"}, m.History())
}

func TestFailedGoBackKeepsGeneration(t *testing.T) {
	m := NewMachine()
	req := m.ResetToBuilding()

	_, ok := m.GoBack()
	assert.False(t, ok)
	assert.True(t, m.IsCurrent(req.Generation))
}

func TestCurrentNotifications(t *testing.T) {
	m := NewMachine()
	var seen []string
	cancel := m.Current.Subscribe(func(object string) { seen = append(seen, object) })

	m.NavigateTo("floor1.glb")
	m.NavigateTo("floor1.glb") // unchanged value, no notification
	m.GoBack()
	m.ResetToBuilding()
	cancel()
	m.NavigateTo("floor2.glb")

	assert.Equal(t, []string{"floor1.glb", Building}, seen)
}

func TestLoadingFlag(t *testing.T) {
	m := NewMachine()
	var seen []bool
	m.Loading.Subscribe(func(v bool) { seen = append(seen, v) })

	m.SetLoading(true)
	m.SetLoading(true)
	m.SetLoading(false)

	assert.False(t, m.IsLoading())
	assert.Equal(t, []bool{true, false}, seen)
}

// start mirrors what the viewer does for a non-building target.
func start(m *Machine, target string) Request {
	req := m.NavigateTo(target)
	m.SetLoading(true)
	return req
}

func TestResolve_LastNavigationWins(t *testing.T) {
	tests := []struct {
		name       string
		firstLands bool
	}{
		{"in order", true},
		{"out of order", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			a := start(m, "floor1.glb")
			b := start(m, "floor2.glb")
			assert.False(t, m.Ready())

			if tt.firstLands {
				assert.Equal(t, Discard, m.Resolve(a.Generation, nil))
				assert.True(t, m.IsLoading())
				assert.Equal(t, Apply, m.Resolve(b.Generation, nil))
			} else {
				assert.Equal(t, Apply, m.Resolve(b.Generation, nil))
				assert.Equal(t, Discard, m.Resolve(a.Generation, nil))
			}

			assert.Equal(t, "floor2.glb", m.Displayed())
			assert.False(t, m.IsLoading())
			assert.True(t, m.Ready())
		})
	}
}

func TestResolve_StaleFailureIsDiscarded(t *testing.T) {
	m := NewMachine()
	a := start(m, "floor1.glb")
	b := start(m, "floor2.glb")

	assert.Equal(t, Discard, m.Resolve(a.Generation, errors.New("boom")))
	assert.True(t, m.IsLoading())
	assert.Equal(t, Apply, m.Resolve(b.Generation, nil))
	assert.True(t, m.Ready())
}

func TestResolve_FailedCurrent(t *testing.T) {
	m := NewMachine()
	first := start(m, "floor1.glb")
	require.Equal(t, Apply, m.Resolve(first.Generation, nil))

	failed := start(m, "broken.glb")
	assert.Equal(t, Fail, m.Resolve(failed.Generation, errors.New("decode failed")))

	assert.False(t, m.IsLoading())
	assert.Equal(t, "broken.glb", m.CurrentObject())
	assert.Equal(t, "floor1.glb", m.Displayed())
	assert.False(t, m.Ready())
	assert.Equal(t, []string{Building, "floor1.glb", "broken.glb"}, m.History())

	back, ok := m.GoBack()
	require.True(t, ok)
	m.SetLoading(true)
	assert.False(t, m.Ready())
	assert.Equal(t, Apply, m.Resolve(back.Generation, nil))
	assert.True(t, m.Ready())
}

func TestResolve_Immediate(t *testing.T) {
	m := NewMachine()
	start(m, "floor1.glb")

	reset := m.ResetToBuilding()
	assert.Equal(t, Apply, m.Resolve(reset.Generation, nil))
	assert.Equal(t, Building, m.Displayed())
	assert.True(t, m.Ready())
}

func TestResolve_LoadingNotifiedAfterDisplayed(t *testing.T) {
	m := NewMachine()
	req := start(m, "floor1.glb")

	var readyOnNotify bool
	m.Loading.Subscribe(func(loading bool) {
		if !loading {
			readyOnNotify = m.Ready()
		}
	})
	m.Resolve(req.Generation, nil)
	assert.True(t, readyOnNotify)
}

func TestResolutionString(t *testing.T) {
	assert.Equal(t, "discard", Discard.String())
	assert.Equal(t, "apply", Apply.String())
	assert.Equal(t, "fail", Fail.String())
	assert.Equal(t, "unknown", Resolution(9).String())
}
