package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says what a changed file feeds.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota + 1
	ChangeLevel
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSpec:
		return "spec"
	case ChangeLevel:
		return "level"
	case ChangeScript:
		return "script"
	default:
		return "unknown"
	}
}

// Change is one debounced file notification.
type Change struct {
	Path string
	Kind ChangeKind
}

// Classify maps a path to the reload it needs. Editor backups and unrelated
// files report false.
func Classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeSpec, true
	case ".json":
		return ChangeLevel, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}

const watchDebounce = 100 * time.Millisecond

// Watcher turns fsnotify events in the watched directories into Changes.
// Repeats for the same path inside watchDebounce are dropped.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the loop; Changes and Errors are closed when it returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Changes)

	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.stop:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			kind, ok := Classify(ev.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if at, ok := seen[ev.Name]; ok && now.Sub(at) < watchDebounce {
				continue
			}
			seen[ev.Name] = now
			select {
			case w.Changes <- Change{Path: ev.Name, Kind: kind}:
			case <-w.stop:
				return
			}
		}
	}
}
