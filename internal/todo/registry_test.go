package todo

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"todo-list-api/internal/kv"
	"todo-list-api/internal/models"
	"todo-list-api/internal/storage"
	"todo-list-api/internal/testutil"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, store Storage, clock *testutil.Clock) *Registry {
	t.Helper()
	if clock == nil {
		clock = testutil.NewClock(time.Date(2025, 6, 15, 10, 30, 0, 0, time.Local))
	}
	r := New(store, Options{Now: clock.Now, Logger: log.New(io.Discard)})
	require.NoError(t, r.Init())
	return r
}

func projectNamed(t *testing.T, r *Registry, name string) *models.Project {
	t.Helper()
	ps := r.Projects(func(p *models.Project) bool { return p.Name() == name })
	require.Len(t, ps, 1, "project %q", name)
	return ps[0]
}

func taskTitles(tasks []*models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title())
	}
	return out
}

func TestInit_DefaultSnapshot(t *testing.T) {
	store := storage.NewMemoryStore("todo")
	r := newTestRegistry(t, store, nil)

	sections := r.Sections()
	require.Len(t, sections, 2)
	require.Equal(t, models.SectionDefault, sections[0].Key)
	require.Equal(t, models.SectionUserProjects, sections[1].Key)
	require.Empty(t, sections[1].Projects)

	defaults := sections[0].Projects
	require.Len(t, defaults, 3)
	inbox, today, upcoming := defaults[0], defaults[1], defaults[2]
	require.Equal(t, models.InboxName, inbox.Name())
	require.True(t, inbox.Active())
	require.True(t, inbox.Preserved())
	require.False(t, inbox.Dummy())
	for _, p := range []*models.Project{today, upcoming} {
		require.True(t, p.Preserved())
		require.True(t, p.Dummy())
		require.False(t, p.Active())
	}
	require.Equal(t, models.TodayName, today.Name())
	require.Equal(t, models.UpcomingName, upcoming.Name())

	def, ok := r.DefaultProject()
	require.True(t, ok)
	require.Equal(t, models.InboxName, def.Name())
	active, ok := r.ActiveProject()
	require.True(t, ok)
	require.Equal(t, models.InboxName, active.Name())

	// loading defaults does not write
	require.Equal(t, 0, store.Saves())
}

func TestRegistry_Lifecycle(t *testing.T) {
	r := New(storage.NewMemoryStore("todo"), Options{Logger: log.New(io.Discard)})
	require.False(t, r.Ready())

	_, ok := r.DefaultProject()
	require.False(t, ok)
	require.Nil(t, r.Projects(nil))
	_, err := r.AddProject(models.NewProject("x", models.ProjectOptions{}))
	require.ErrorIs(t, err, ErrNotReady)
	require.ErrorIs(t, r.ChangeActiveProject("x"), ErrNotReady)

	require.NoError(t, r.Init())
	require.True(t, r.Ready())
	require.ErrorIs(t, r.Init(), ErrAlreadyInitialized)
}

func TestTodayAndUpcoming(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 10, 30, 0, 0, time.Local))
	r := newTestRegistry(t, storage.NewMemoryStore("todo"), clock)
	inbox, _ := r.DefaultProject()
	work, err := r.AddProject(models.NewProject("Work", models.ProjectOptions{}))
	require.NoError(t, err)

	add := func(p *models.Project, title string, day int) {
		_, err := r.AddTask(p.ID(), models.NewTask(title, "", clock.Day(day).Add(15*time.Hour), models.PriorityNormal))
		require.NoError(t, err)
	}
	add(inbox, "week", 7)
	add(inbox, "tomorrow", 1)
	add(work, "yesterday", -1)
	add(work, "today", 0)
	add(inbox, "nodate", 0)
	_, err = r.UpdateTask(r.Tasks(func(t *models.Task) bool { return t.Title() == "nodate" })[0].ID(),
		TaskChanges{DueDate: &time.Time{}})
	require.NoError(t, err)

	require.Equal(t, []string{"today"}, taskTitles(r.TodaysTasks()))
	require.Equal(t, []string{"today", "tomorrow", "week"}, taskTitles(r.UpcomingTasks()))

	// computed projects reflect the same views
	require.Equal(t, []string{"today"}, taskTitles(projectNamed(t, r, models.TodayName).Tasks(nil)))
	require.Equal(t, []string{"today", "tomorrow", "week"}, taskTitles(projectNamed(t, r, models.UpcomingName).Tasks(nil)))

	// views follow the clock
	clock.Advance(24 * time.Hour)
	require.Equal(t, []string{"tomorrow"}, taskTitles(r.TodaysTasks()))
	require.Equal(t, []string{"tomorrow"}, taskTitles(projectNamed(t, r, models.TodayName).Tasks(nil)))
	require.Equal(t, []string{"tomorrow", "week"}, taskTitles(r.UpcomingTasks()))
}

func TestUpcoming_StableOnTies(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local))
	r := newTestRegistry(t, storage.NewMemoryStore("todo"), clock)
	inbox, _ := r.DefaultProject()

	for _, tc := range []struct {
		title string
		day   int
	}{{"c3", 3}, {"a2", 2}, {"b3", 3}, {"d2", 2}, {"e3", 3}} {
		_, err := r.AddTask(inbox.ID(), models.NewTask(tc.title, "", clock.Day(tc.day), models.PriorityNormal))
		require.NoError(t, err)
	}
	require.Equal(t, []string{"a2", "d2", "c3", "b3", "e3"}, taskTitles(r.UpcomingTasks()))
}

func TestTasks_ExcludesComputedProjects(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local))
	r := newTestRegistry(t, storage.NewMemoryStore("todo"), clock)
	inbox, _ := r.DefaultProject()
	_, err := r.AddTask(inbox.ID(), models.NewTask("due today", "", clock.Day(0), models.PriorityHigh))
	require.NoError(t, err)

	// the task now also sits in Today and Upcoming
	require.Equal(t, 1, projectNamed(t, r, models.TodayName).Len())
	require.Len(t, r.Tasks(nil), 1)
}

func TestNotFound_DoesNotPersist(t *testing.T) {
	store := storage.NewMemoryStore("todo")
	r := newTestRegistry(t, store, nil)
	const missing = "does-not-exist"
	title := "x"

	_, ok := r.ProjectByID(missing)
	require.False(t, ok)
	_, ok = r.TaskByID(missing)
	require.False(t, ok)

	_, err := r.UpdateProject(missing, models.ProjectPatch{Name: &title})
	require.ErrorIs(t, err, ErrProjectNotFound)
	_, err = r.RemoveProject(missing)
	require.ErrorIs(t, err, ErrProjectNotFound)
	require.ErrorIs(t, r.ChangeActiveProject(missing), ErrProjectNotFound)
	_, err = r.AddTask(missing, models.NewTask("t", "", time.Time{}, models.PriorityNormal))
	require.ErrorIs(t, err, ErrProjectNotFound)
	_, err = r.UpdateTask(missing, TaskChanges{Title: &title})
	require.ErrorIs(t, err, ErrTaskNotFound)
	_, err = r.RemoveTask(missing)
	require.ErrorIs(t, err, ErrTaskNotFound)
	_, err = r.ToggleCompleted(missing)
	require.ErrorIs(t, err, ErrTaskNotFound)

	// an existing task moved to an unknown project
	inbox, _ := r.DefaultProject()
	task, err := r.AddTask(inbox.ID(), models.NewTask("t", "", time.Time{}, models.PriorityNormal))
	require.NoError(t, err)
	saves := store.Saves()
	_, err = r.UpdateTask(task.ID(), TaskChanges{ProjectID: ptr(missing), Title: &title})
	require.ErrorIs(t, err, ErrProjectNotFound)
	require.Equal(t, "t", task.Title())

	// repeated deletes of the same task are harmless
	_, err = r.RemoveTask(task.ID())
	require.NoError(t, err)
	_, err = r.RemoveTask(task.ID())
	require.ErrorIs(t, err, ErrTaskNotFound)

	require.Equal(t, saves+1, store.Saves())
}

func TestAddProject_Idempotent(t *testing.T) {
	store := storage.NewMemoryStore("todo")
	r := newTestRegistry(t, store, nil)
	p := models.NewProject("Home", models.ProjectOptions{})

	got, err := r.AddProject(p)
	require.NoError(t, err)
	require.Same(t, p, got)
	require.Equal(t, 1, store.Saves())

	got, err = r.AddProject(p)
	require.NoError(t, err)
	require.Same(t, p, got)
	require.Equal(t, 1, store.Saves())
	require.Len(t, r.Projects(nil), 4)
}

func TestAddProject_ActiveTakesOver(t *testing.T) {
	r := newTestRegistry(t, storage.NewMemoryStore("todo"), nil)
	p, err := r.AddProject(models.NewProject("Home", models.ProjectOptions{Active: true}))
	require.NoError(t, err)

	active := r.Projects((*models.Project).Active)
	require.Equal(t, []*models.Project{p}, active)
}

func TestChangeActiveProject_SingleActive(t *testing.T) {
	r := newTestRegistry(t, storage.NewMemoryStore("todo"), nil)
	for _, name := range []string{"A", "B", "C"} {
		_, err := r.AddProject(models.NewProject(name, models.ProjectOptions{}))
		require.NoError(t, err)
	}
	all := r.Projects(nil)
	def, _ := r.DefaultProject()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		target := all[rng.Intn(len(all))]
		require.NoError(t, r.ChangeActiveProject(target.ID()))
		active := r.Projects((*models.Project).Active)
		require.Len(t, active, 1)
		require.Same(t, target, active[0])

		again, _ := r.DefaultProject()
		require.Same(t, def, again)
	}
}

func TestRemoveProject(t *testing.T) {
	store := storage.NewMemoryStore("todo")
	r := newTestRegistry(t, store, nil)
	inbox, _ := r.DefaultProject()

	saves := store.Saves()
	for _, p := range r.Projects(nil) {
		_, err := r.RemoveProject(p.ID())
		require.ErrorIs(t, err, ErrProjectPreserved)
	}
	require.Equal(t, saves, store.Saves())

	home, err := r.AddProject(models.NewProject("Home", models.ProjectOptions{}))
	require.NoError(t, err)
	task, err := r.AddTask(home.ID(), models.NewTask("Fix sink", "", time.Time{}, models.PriorityHigh))
	require.NoError(t, err)
	require.NoError(t, r.ChangeActiveProject(home.ID()))

	removed, err := r.RemoveProject(home.ID())
	require.NoError(t, err)
	require.Same(t, home, removed)
	_, ok := r.ProjectByID(home.ID())
	require.False(t, ok)
	_, ok = r.TaskByID(task.ID())
	require.False(t, ok)

	active, ok := r.ActiveProject()
	require.True(t, ok)
	require.Same(t, inbox, active)
}

func TestUpdateProject_Rules(t *testing.T) {
	r := newTestRegistry(t, storage.NewMemoryStore("todo"), nil)
	inbox, _ := r.DefaultProject()
	home, err := r.AddProject(models.NewProject("Home", models.ProjectOptions{}))
	require.NoError(t, err)

	name := "Renamed"
	yes := true
	_, err = r.UpdateProject(inbox.ID(), models.ProjectPatch{Name: &name})
	require.ErrorIs(t, err, ErrProjectPreserved)
	_, err = r.UpdateProject(home.ID(), models.ProjectPatch{Active: &yes})
	require.ErrorIs(t, err, ErrUseChangeActive)
	_, err = r.UpdateProject(home.ID(), models.ProjectPatch{Dummy: &yes})
	require.ErrorIs(t, err, ErrFlagsReadOnly)

	got, err := r.UpdateProject(home.ID(), models.ProjectPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name())
}

func TestTaskOperations(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local))
	store := storage.NewMemoryStore("todo")
	r := newTestRegistry(t, store, clock)
	inbox, _ := r.DefaultProject()
	home, err := r.AddProject(models.NewProject("Home", models.ProjectOptions{}))
	require.NoError(t, err)

	task, err := r.AddTask(inbox.ID(), models.NewTask("Water plants", "", clock.Day(0), models.PriorityLow))
	require.NoError(t, err)
	require.Same(t, inbox, task.Project())

	// moving to a computed project is rejected
	today := projectNamed(t, r, models.TodayName)
	_, err = r.AddTask(today.ID(), models.NewTask("nope", "", time.Time{}, models.PriorityNormal))
	require.ErrorIs(t, err, models.ErrDummyProject)
	_, err = r.UpdateTask(task.ID(), TaskChanges{ProjectID: ptr(today.ID())})
	require.ErrorIs(t, err, models.ErrDummyProject)

	prio := models.PriorityHigh
	got, err := r.UpdateTask(task.ID(), TaskChanges{ProjectID: ptr(home.ID()), Priority: &prio})
	require.NoError(t, err)
	require.Same(t, task, got)
	require.Same(t, home, task.Project())
	_, ok := inbox.TaskByID(task.ID())
	require.False(t, ok)
	require.Equal(t, models.PriorityHigh, task.Priority())

	saves := store.Saves()
	completed, err := r.ToggleCompleted(task.ID())
	require.NoError(t, err)
	require.True(t, completed)
	require.Equal(t, saves+1, store.Saves())

	// the task is referenced by Today as well as its owner
	require.Equal(t, 1, projectNamed(t, r, models.TodayName).Len())
	removed, err := r.RemoveTask(task.ID())
	require.NoError(t, err)
	require.Same(t, task, removed)
	require.Nil(t, task.Project())
	require.Equal(t, 0, today.Len())
	require.Equal(t, 0, home.Len())
}

func TestReload_RoundTrip(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local))
	items := kv.NewMapStore[string, []byte](kv.Options{})
	r := newTestRegistry(t, storage.NewMemoryStoreOn(items, "todo"), clock)

	home, err := r.AddProject(models.NewProject("Home", models.ProjectOptions{}))
	require.NoError(t, err)
	_, err = r.AddTask(home.ID(), models.NewTask("Paint", "fence", clock.Day(0).Add(20*time.Hour), models.PriorityMedium))
	require.NoError(t, err)
	done, err := r.AddTask(home.ID(), models.NewTask("Sweep", "", time.Time{}, models.PriorityLow))
	require.NoError(t, err)
	_, err = r.ToggleCompleted(done.ID())
	require.NoError(t, err)
	require.NoError(t, r.ChangeActiveProject(home.ID()))

	reloaded := newTestRegistry(t, storage.NewMemoryStoreOn(items, "todo"), clock)
	got := projectNamed(t, reloaded, "Home")
	require.NotEqual(t, home.ID(), got.ID())
	require.True(t, got.Active())
	require.Equal(t, []string{"Paint", "Sweep"}, taskTitles(got.Tasks(nil)))

	paint := got.Tasks(nil)[0]
	require.Equal(t, "fence", paint.Description())
	require.Equal(t, models.PriorityMedium, paint.Priority())
	require.True(t, models.SameDay(clock.Day(0), paint.DueDate()))
	require.True(t, got.Tasks(nil)[1].Completed())

	// computed projects are rebuilt, not duplicated
	require.Equal(t, []string{"Paint"}, taskTitles(projectNamed(t, reloaded, models.TodayName).Tasks(nil)))
	require.Len(t, reloaded.Tasks(nil), 2)
}

func TestInit_CorruptSnapshot(t *testing.T) {
	items := kv.NewMapStore[string, []byte](kv.Options{})
	items.Set("todo", []byte(`{"default": {"items": "nope"}}`))

	r := New(storage.NewMemoryStoreOn(items, "todo"), Options{Logger: log.New(io.Discard)})
	require.ErrorIs(t, r.Init(), storage.ErrCorruptSnapshot)
	require.False(t, r.Ready())

	r = New(storage.NewMemoryStoreOn(items, "todo"), Options{Logger: log.New(io.Discard), ResetCorrupt: true})
	require.NoError(t, r.Init())
	def, ok := r.DefaultProject()
	require.True(t, ok)
	require.Equal(t, models.InboxName, def.Name())
}

func TestInit_MissingDefaultProject(t *testing.T) {
	store := storage.NewMemoryStore("todo")
	snap := models.DefaultSnapshot()
	snap.Default.Items = snap.Default.Items[1:]
	require.NoError(t, store.SaveData(snap))

	r := New(store, Options{Logger: log.New(io.Discard)})
	err := r.Init()
	require.ErrorIs(t, err, storage.ErrCorruptSnapshot)
	require.ErrorIs(t, err, ErrNoDefaultProject)
}

func TestInit_RepairsActiveFlags(t *testing.T) {
	store := storage.NewMemoryStore("todo")
	snap := models.DefaultSnapshot()
	snap.Default.Items[0].Active = false
	require.NoError(t, store.SaveData(snap))

	r := newTestRegistry(t, store, nil)
	active, ok := r.ActiveProject()
	require.True(t, ok)
	require.Equal(t, models.InboxName, active.Name())

	snap = models.DefaultSnapshot()
	snap.UserProjects.Items = []models.ProjectRecord{{Name: "Also active", Active: true}}
	require.NoError(t, store.SaveData(snap))
	r = newTestRegistry(t, store, nil)
	require.Len(t, r.Projects((*models.Project).Active), 1)
}

func TestNotifier(t *testing.T) {
	var events []Event
	clock := testutil.NewClock(time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local))
	r := New(storage.NewMemoryStore("todo"), Options{
		Now:      clock.Now,
		Logger:   log.New(io.Discard),
		Notifier: NotifierFunc(func(e Event) { events = append(events, e) }),
	})
	require.NoError(t, r.Init())

	home, err := r.AddProject(models.NewProject("Home", models.ProjectOptions{}))
	require.NoError(t, err)
	task, err := r.AddTask(home.ID(), models.NewTask("t", "", time.Time{}, models.PriorityNormal))
	require.NoError(t, err)
	_, _ = r.RemoveTask("missing")

	require.Equal(t, []Event{
		{Type: EventProjectAdded, ProjectID: home.ID(), Version: models.SnapshotVersion},
		{Type: EventTaskAdded, ProjectID: home.ID(), TaskID: task.ID(), Version: models.SnapshotVersion},
	}, events)
}

type failingStore struct{ Storage }

func (failingStore) SaveData(models.Snapshot) error { return errors.New("quota exceeded") }

func TestPersistFailure(t *testing.T) {
	r := newTestRegistry(t, failingStore{storage.NewMemoryStore("todo")}, nil)
	_, err := r.AddProject(models.NewProject("Home", models.ProjectOptions{}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")
}

func ptr[T any](v T) *T { return &v }

func TestCreateTask(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local))
	store := storage.NewMemoryStore("todo")
	r := newTestRegistry(t, store, clock)
	inbox, _ := r.DefaultProject()

	task, err := r.CreateTask(inbox.ID(), TaskInput{
		Title:    "Pay rent",
		DueDate:  clock.Now(),
		Priority: models.PriorityHigh,
	})
	require.NoError(t, err)
	require.Same(t, inbox, task.Project())
	require.Equal(t, clock.Day(0), task.DueDate())
	require.Equal(t, []string{"Pay rent"}, taskTitles(r.TodaysTasks()))
	require.Equal(t, 1, store.Saves())

	_, err = r.CreateTask("missing", TaskInput{Title: "x"})
	require.ErrorIs(t, err, ErrProjectNotFound)
	today := projectNamed(t, r, models.TodayName)
	_, err = r.CreateTask(today.ID(), TaskInput{Title: "x"})
	require.ErrorIs(t, err, models.ErrDummyProject)
	require.Equal(t, 1, store.Saves())
}

func TestNilArguments(t *testing.T) {
	store := storage.NewMemoryStore("todo")
	r := newTestRegistry(t, store, nil)
	inbox, _ := r.DefaultProject()

	_, err := r.AddTask(inbox.ID(), nil)
	require.ErrorIs(t, err, ErrInvalidTask)
	_, err = r.AddProject(nil)
	require.ErrorIs(t, err, ErrInvalidProject)
	require.Equal(t, 0, store.Saves())
}
