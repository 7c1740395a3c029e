package overlay

import (
	"github.com/stretchr/testify/mock"
)

// MockObserver is a testify mock of Observer.
//
// Example usage:
//
//	obs := new(MockObserver)
//	obs.On("OnEvent", mock.MatchedBy(func(ev Event) bool {
//	    return ev.Type == EventDismissed
//	})).Return()
//	obs.On("OnEvent", mock.Anything).Return()
//
//	ctrl.Init(host, WithObserver(obs))
//	obs.AssertCalled(t, "OnEvent", mock.Anything)
type MockObserver struct {
	mock.Mock
}

// OnEvent records the event.
func (m *MockObserver) OnEvent(ev Event) {
	m.Called(ev)
}
