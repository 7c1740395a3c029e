package overlay

import (
	"fmt"
	"sync"
)

// Manager aggregates one Controller per Category. Beyond the controllers it
// only remembers whether Init has run.
type Manager struct {
	mu          sync.RWMutex
	initialized bool
	controllers map[Category]*Controller
}

// ManagerOption configures Manager.Init.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	common      []Option
	perCategory map[Category][]Option
}

// WithControllerOptions applies opts to every controller.
func WithControllerOptions(opts ...Option) ManagerOption {
	return func(m *managerOptions) {
		m.common = append(m.common, opts...)
	}
}

// WithCategoryOptions applies opts to the controller of one category, after
// the common options.
func WithCategoryOptions(category Category, opts ...Option) ManagerOption {
	return func(m *managerOptions) {
		m.perCategory[category] = append(m.perCategory[category], opts...)
	}
}

// NewManager builds a Manager with an uninitialized controller per category.
func NewManager() *Manager {
	controllers := make(map[Category]*Controller, len(Categories()))
	for _, c := range Categories() {
		controllers[c] = NewController(c)
	}
	return &Manager{controllers: controllers}
}

// Init initializes every controller against host. If one fails, the
// controllers already initialized are disposed again.
func (m *Manager) Init(host ViewHost, opts ...ManagerOption) error {
	mo := managerOptions{perCategory: make(map[Category][]Option)}
	for _, opt := range opts {
		if opt != nil {
			opt(&mo)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return fmt.Errorf("init overlays: %w", ErrAlreadyInitialized)
	}
	done := make([]*Controller, 0, len(m.controllers))
	for _, c := range Categories() {
		ctrl := m.controllers[c]
		ctrlOpts := append(append([]Option{}, mo.common...), mo.perCategory[c]...)
		if err := ctrl.Init(host, ctrlOpts...); err != nil {
			for _, d := range done {
				d.Dispose()
			}
			return fmt.Errorf("init overlays: %w", err)
		}
		done = append(done, ctrl)
	}
	m.initialized = true
	return nil
}

// IsInitialized reports whether Init succeeded and Dispose has not run since.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Dispose disposes every controller, resolving pending completions with nil.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range Categories() {
		m.controllers[c].Dispose()
	}
	m.initialized = false
}

// Controller returns the controller for category, or nil for an unknown one.
func (m *Manager) Controller(category Category) *Controller {
	return m.controllers[category]
}

func (m *Manager) Dialogs() *Controller { return m.controllers[CategoryDialog] }
func (m *Manager) Banners() *Controller { return m.controllers[CategoryBanner] }
func (m *Manager) Toasts() *Controller  { return m.controllers[CategoryToast] }
func (m *Manager) Sheets() *Controller  { return m.controllers[CategorySheet] }

// Show delegates to the controller of category.
func (m *Manager) Show(category Category, content any, opts ...ShowOption) (Handle, error) {
	ctrl := m.Controller(category)
	if ctrl == nil {
		return Handle{}, fmt.Errorf("show: unknown overlay %s", category)
	}
	return ctrl.Show(content, opts...)
}

// ShowAsync delegates to the controller of category.
func (m *Manager) ShowAsync(category Category, content any, opts ...ShowOption) (Handle, error) {
	ctrl := m.Controller(category)
	if ctrl == nil {
		return Handle{}, fmt.Errorf("show: unknown overlay %s", category)
	}
	return ctrl.ShowAsync(content, opts...)
}

func (m *Manager) ShowDialog(content any, opts ...ShowOption) (Handle, error) {
	return m.Dialogs().ShowAsync(content, opts...)
}

func (m *Manager) ShowBanner(content any, opts ...ShowOption) (Handle, error) {
	return m.Banners().Show(content, opts...)
}

func (m *Manager) ShowToast(content any, opts ...ShowOption) (Handle, error) {
	return m.Toasts().Show(content, opts...)
}

func (m *Manager) ShowSheet(content any, opts ...ShowOption) (Handle, error) {
	return m.Sheets().ShowAsync(content, opts...)
}

// Close routes h to the controller of its category.
func (m *Manager) Close(h Handle, result any) bool {
	ctrl := m.Controller(h.Category())
	if ctrl == nil {
		return false
	}
	return ctrl.Close(h, result)
}

// CloseByID closes the first open overlay with id, searching categories in
// order. Ids are only unique per category.
func (m *Manager) CloseByID(id string, result any) bool {
	for _, c := range Categories() {
		if m.controllers[c].CloseByID(id, result) {
			return true
		}
	}
	return false
}

// CloseByTag closes tagged overlays in every category.
func (m *Manager) CloseByTag(tag string, result any) int {
	n := 0
	for _, c := range Categories() {
		n += m.controllers[c].CloseByTag(tag, result)
	}
	return n
}

// CloseAll closes every overlay, one category after the other. It is not
// atomic across categories.
func (m *Manager) CloseAll(result any) int {
	n := 0
	for _, c := range Categories() {
		n += m.controllers[c].CloseAll(result)
	}
	return n
}

// IsOpen reports whether any category has an open overlay with id.
func (m *Manager) IsOpen(id string) bool {
	for _, c := range Categories() {
		if m.controllers[c].IsOpen(id) {
			return true
		}
	}
	return false
}

// GetByTag returns tagged handles across categories.
func (m *Manager) GetByTag(tag string) []Handle {
	var out []Handle
	for _, c := range Categories() {
		out = append(out, m.controllers[c].GetByTag(tag)...)
	}
	return out
}

// ByCategory returns the open handles of one category.
func (m *Manager) ByCategory(category Category) []Handle {
	ctrl := m.Controller(category)
	if ctrl == nil {
		return nil
	}
	return ctrl.Handles()
}

// ActiveCount returns the number of open overlays across categories.
func (m *Manager) ActiveCount() int {
	n := 0
	for _, c := range Categories() {
		n += m.controllers[c].ActiveCount()
	}
	return n
}

// ActiveCounts returns the open overlay count per category.
func (m *Manager) ActiveCounts() map[Category]int {
	counts := make(map[Category]int, len(m.controllers))
	for _, c := range Categories() {
		counts[c] = m.controllers[c].ActiveCount()
	}
	return counts
}

// HostReady flushes deferred insertions in every category.
func (m *Manager) HostReady() {
	for _, c := range Categories() {
		m.controllers[c].HostReady()
	}
}
