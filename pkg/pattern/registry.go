package pattern

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"

	"github.com/banhbao/phapdien/pkg/statute"
)

// Registry manages a collection of numbering conventions.
type Registry interface {
	// Register adds a convention to the registry
	Register(conv *Convention) error

	// Unregister removes a convention from the registry
	Unregister(name string) error

	// Get returns a convention by name
	Get(name string) (*Convention, bool)

	// List returns all registered conventions
	List() []*Convention

	// ListByLanguage returns conventions for a specific language
	ListByLanguage(language string) []*Convention

	// Reload reloads all conventions from the configured directory
	Reload() error

	// Watch starts watching the convention directory for changes
	Watch() error

	// StopWatch stops watching the convention directory
	StopWatch()

	// LoadDirectory loads all conventions from a directory
	LoadDirectory(dir string) error

	// LoadFile loads a single convention file
	LoadFile(path string) error
}

// DefaultRegistry is the default implementation of the convention
// Registry. The built-in Vietnamese convention is always present and
// survives Reload and Clear.
type DefaultRegistry struct {
	mu          sync.RWMutex
	conventions map[string]*Convention
	dir         string
	watcher     *fsnotify.Watcher
	stopChan    chan struct{}
	onChange    func(event string, conv *Convention)
}

// NewRegistry creates a registry holding only the built-in convention.
func NewRegistry() *DefaultRegistry {
	r := &DefaultRegistry{
		conventions: make(map[string]*Convention),
	}
	r.registerBuiltin()
	return r
}

// registerBuiltin installs the built-in convention. Its constant
// pattern sources are the ones statute.NewClassifier compiles, so this
// cannot fail.
func (r *DefaultRegistry) registerBuiltin() {
	conv := Default()
	conv.compiled = statute.NewClassifier()

	r.mu.Lock()
	r.conventions[conv.Name] = conv
	r.mu.Unlock()
}

// NewRegistryWithDirectory creates a registry and loads conventions
// from the directory on top of the built-in one.
func NewRegistryWithDirectory(dir string) (*DefaultRegistry, error) {
	r := NewRegistry()
	r.dir = dir

	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}

	return r, nil
}

// Register adds a convention to the registry.
func (r *DefaultRegistry) Register(conv *Convention) error {
	if conv == nil {
		return fmt.Errorf("convention cannot be nil")
	}

	if err := conv.Validate(); err != nil {
		return fmt.Errorf("invalid convention: %w", err)
	}

	if !conv.IsCompiled() {
		if err := conv.Compile(); err != nil {
			return fmt.Errorf("compiling convention %q: %w", conv.Name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Allow update only when the version changed
	if existing, ok := r.conventions[conv.Name]; ok {
		if existing.Version == conv.Version {
			return fmt.Errorf("convention %q version %s already registered", conv.Name, conv.Version)
		}
	}

	r.conventions[conv.Name] = conv
	return nil
}

// Unregister removes a convention. The built-in convention cannot be
// removed.
func (r *DefaultRegistry) Unregister(name string) error {
	if name == DefaultName {
		return fmt.Errorf("convention %q is built in and cannot be removed", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conventions[name]; !ok {
		return fmt.Errorf("convention %q not found", name)
	}

	delete(r.conventions, name)
	return nil
}

// Get returns a convention by name.
func (r *DefaultRegistry) Get(name string) (*Convention, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conventions[name]
	return conv, ok
}

// List returns all registered conventions.
func (r *DefaultRegistry) List() []*Convention {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conventions := make([]*Convention, 0, len(r.conventions))
	for _, c := range r.conventions {
		conventions = append(conventions, c)
	}
	return conventions
}

// ListByLanguage returns conventions for a specific language.
func (r *DefaultRegistry) ListByLanguage(language string) []*Convention {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var conventions []*Convention
	languageLower := strings.ToLower(language)
	for _, c := range r.conventions {
		if strings.ToLower(c.Language) == languageLower {
			conventions = append(conventions, c)
		}
	}
	return conventions
}

// Count returns the number of registered conventions.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conventions)
}

// LoadDirectory loads all YAML convention files from a directory.
func (r *DefaultRegistry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Directory doesn't exist, nothing to load
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		path := filepath.Join(dir, name)
		if err := r.LoadFile(path); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading conventions: %s", strings.Join(loadErrors, "; "))
	}

	return nil
}

// LoadFile loads a single convention file.
func (r *DefaultRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var conv Convention
	if err := yaml.Unmarshal(data, &conv); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	if err := r.Register(&conv); err != nil {
		return fmt.Errorf("registering convention: %w", err)
	}

	return nil
}

// Reload drops all loaded conventions, keeps the built-in one and
// loads the configured directory again.
func (r *DefaultRegistry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	r.Clear()
	return r.LoadDirectory(r.dir)
}

// SetOnChange sets a callback invoked when a watched convention changes.
func (r *DefaultRegistry) SetOnChange(fn func(event string, conv *Convention)) {
	r.onChange = fn
}

// Watch starts watching the convention directory for changes.
func (r *DefaultRegistry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go r.watchLoop()

	if err := watcher.Add(r.dir); err != nil {
		r.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}

	return nil
}

// watchLoop handles file system events.
func (r *DefaultRegistry) watchLoop() {
	for {
		select {
		case <-r.stopChan:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}

			if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handleFileChange(event.Name, "create")

			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handleFileChange(event.Name, "modify")

			case event.Op&fsnotify.Remove == fsnotify.Remove:
				r.handleFileRemove(event.Name)

			case event.Op&fsnotify.Rename == fsnotify.Rename:
				r.handleFileRemove(event.Name)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			_ = err
		}
	}
}

// handleFileChange handles file creation or modification.
func (r *DefaultRegistry) handleFileChange(path string, eventType string) {
	if err := r.LoadFile(path); err != nil {
		_ = err
		return
	}

	if r.onChange != nil {
		conv, ok := r.getConventionByFile(path)
		if ok {
			r.onChange(eventType, conv)
		}
	}
}

// handleFileRemove handles file removal by reloading the directory.
func (r *DefaultRegistry) handleFileRemove(path string) {
	if err := r.Reload(); err != nil {
		_ = err
	}

	if r.onChange != nil {
		r.onChange("remove", nil)
	}
}

// getConventionByFile finds the convention loaded from the given file,
// using the filename as the convention name heuristic.
func (r *DefaultRegistry) getConventionByFile(path string) (*Convention, bool) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")

	return r.Get(name)
}

// StopWatch stops watching the convention directory.
func (r *DefaultRegistry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
}

// Clear removes all loaded conventions and re-registers the built-in.
func (r *DefaultRegistry) Clear() {
	r.mu.Lock()
	r.conventions = make(map[string]*Convention)
	r.mu.Unlock()

	r.registerBuiltin()
}
