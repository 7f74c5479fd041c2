package todo

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"todo-list-api/internal/models"
	"todo-list-api/internal/storage"

	"github.com/charmbracelet/log"
)

// Storage loads and saves full registry snapshots.
type Storage interface {
	// LoadData returns the last saved snapshot, or nil if nothing was saved.
	LoadData() (*models.Snapshot, error)
	// SaveData replaces the saved snapshot.
	SaveData(models.Snapshot) error
}

// Options controls construction of a Registry.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to log.Default().
	Logger *log.Logger
	// Notifier, if set, receives an Event after every persisted change.
	Notifier Notifier
	// ResetCorrupt installs the default snapshot when stored data is corrupt
	// instead of failing Init.
	ResetCorrupt bool
}

// Section is one named, ordered list of projects.
type Section struct {
	Key      string
	Title    string
	Projects []*models.Project
}

// Registry owns every project and task and persists them through Storage.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	store    Storage
	now      func() time.Time
	logger   *log.Logger
	notifier Notifier
	reset    bool

	ready    bool
	sections []*Section // default, userProjects
}

// New returns an uninitialized registry writing to store.
func New(store Storage, opts Options) *Registry {
	r := &Registry{
		store:    store,
		now:      opts.Now,
		logger:   opts.Logger,
		notifier: opts.Notifier,
		reset:    opts.ResetCorrupt,
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Init loads the persisted snapshot, or the default one when nothing is
// stored, and makes the registry ready. Stored data that fails validation
// is an error wrapping storage.ErrCorruptSnapshot unless ResetCorrupt is set.
func (r *Registry) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return ErrAlreadyInitialized
	}

	sections, err := r.load()
	if err != nil {
		if !r.reset || !errors.Is(err, storage.ErrCorruptSnapshot) {
			return err
		}
		r.logger.Warn("stored snapshot is corrupt, installing defaults", "err", err)
		sections, err = buildSections(models.DefaultSnapshot())
		if err != nil {
			return err
		}
	}

	r.sections = sections
	r.ready = true
	r.ensureSingleActive()
	r.refreshViews()
	r.logger.Info("registry ready", "projects", len(r.allProjects()), "tasks", len(r.ownedTasks(nil)))
	return nil
}

// Ready reports whether Init has completed.
func (r *Registry) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

func (r *Registry) load() ([]*Section, error) {
	snap, err := r.store.LoadData()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		r.logger.Info("no stored snapshot, using defaults")
		return buildSections(models.DefaultSnapshot())
	}
	sections, err := buildSections(*snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, err)
	}
	return sections, nil
}

func buildSections(snap models.Snapshot) ([]*Section, error) {
	recs := []struct {
		key string
		rec models.SectionRecord
	}{
		{models.SectionDefault, snap.Default},
		{models.SectionUserProjects, snap.UserProjects},
	}

	sections := make([]*Section, 0, len(recs))
	hasDefault := false
	for _, s := range recs {
		sec := &Section{Key: s.key, Title: s.rec.Title, Projects: make([]*models.Project, 0, len(s.rec.Items))}
		for i, pr := range s.rec.Items {
			p, err := models.ProjectFromRecord(pr)
			if err != nil {
				return nil, fmt.Errorf("%s.items[%d]: %w", s.key, i, err)
			}
			if isDefault(p) {
				hasDefault = true
			}
			sec.Projects = append(sec.Projects, p)
		}
		sections = append(sections, sec)
	}
	if !hasDefault {
		return nil, ErrNoDefaultProject
	}
	return sections, nil
}

// ensureSingleActive repairs snapshots where zero or several projects are active
// by keeping the first active project, or the default project if none is.
func (r *Registry) ensureSingleActive() {
	var keep *models.Project
	for _, p := range r.allProjects() {
		if p.Active() {
			if keep == nil {
				keep = p
				continue
			}
			r.logger.Warn("deactivating extra active project", "project", p.Name())
			setActive(p, false)
		}
	}
	if keep == nil {
		def, _ := r.find(isDefault)
		r.logger.Warn("no active project, activating default", "project", def.Name())
		setActive(def, true)
	}
}

// refreshViews rebuilds the task lists of the computed projects.
func (r *Registry) refreshViews() {
	for _, p := range r.allProjects() {
		if !p.Dummy() {
			continue
		}
		p.RemoveTasks()
		switch p.Name() {
		case models.TodayName:
			p.AddTasks(r.todaysTasks())
		case models.UpcomingName:
			p.AddTasks(r.upcomingTasks())
		}
	}
}

// persist writes the full snapshot and announces evt on success.
func (r *Registry) persist(evt Event) error {
	snap := models.Snapshot{Version: models.SnapshotVersion}
	for _, sec := range r.sections {
		rec := models.SectionRecord{Title: sec.Title, Items: make([]models.ProjectRecord, 0, len(sec.Projects))}
		for _, p := range sec.Projects {
			pr := p.ToRecord()
			if p.Dummy() {
				pr.Tasks = []models.TaskRecord{}
			}
			rec.Items = append(rec.Items, pr)
		}
		switch sec.Key {
		case models.SectionDefault:
			snap.Default = rec
		case models.SectionUserProjects:
			snap.UserProjects = rec
		}
	}

	if err := r.store.SaveData(snap); err != nil {
		r.logger.Error("persist snapshot", "event", evt.Type, "err", err)
		return fmt.Errorf("persist snapshot: %w", err)
	}
	r.logger.Debug("snapshot persisted", "event", evt.Type, "project", evt.ProjectID, "task", evt.TaskID)

	if r.notifier != nil {
		evt.Version = models.SnapshotVersion
		r.notifier.Notify(evt)
	}
	return nil
}

func (r *Registry) section(key string) *Section {
	for _, s := range r.sections {
		if s.Key == key {
			return s
		}
	}
	return nil
}

func (r *Registry) allProjects() []*models.Project {
	var out []*models.Project
	for _, s := range r.sections {
		out = append(out, s.Projects...)
	}
	return out
}

func (r *Registry) find(match func(*models.Project) bool) (*models.Project, bool) {
	for _, s := range r.sections {
		for _, p := range s.Projects {
			if match(p) {
				return p, true
			}
		}
	}
	return nil, false
}

func (r *Registry) projectByID(id string) (*models.Project, bool) {
	return r.find(func(p *models.Project) bool { return p.ID() == id })
}

func (r *Registry) sectionOf(p *models.Project) *Section {
	for _, s := range r.sections {
		if slices.Contains(s.Projects, p) {
			return s
		}
	}
	return nil
}

func isDefault(p *models.Project) bool {
	return p.Preserved() && !p.Dummy()
}

func setActive(p *models.Project, active bool) {
	p.Update(models.ProjectPatch{Active: &active})
}
