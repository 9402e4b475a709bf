package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ytget/mediagrab/internal/engine"
	"github.com/ytget/mediagrab/internal/model"
	"github.com/ytget/mediagrab/internal/platform"
)

// CancelMessage is the standard failure message used during forced shutdown
const CancelMessage = "download canceled: application shutting down"

// Concurrency limit bounds, enforced on whatever the settings provider returns
const (
	MinConcurrentLimit = 1
	MaxConcurrentLimit = 10
)

// Service orchestrates downloads. It owns the live-task registry and the
// pending queue behind one mutex; all state transitions go through it.
type Service struct {
	settings SettingsProvider
	locator  BinaryLocator
	spawn    Spawner
	logger   *slog.Logger
	validate *validator.Validate

	mu           sync.Mutex
	tasks        map[string]*activeTask
	pending      []*pendingEntry
	draining     bool
	drainWake    bool
	shuttingDown bool
	subscribers  []func(model.Event)
}

// activeTask pairs a task record with its live process handle
type activeTask struct {
	task        *model.Task
	proc        engine.Process
	expectedExt string
}

// pendingEntry is a not-yet-admitted task plus everything needed to spawn its
// process later
type pendingEntry struct {
	task        *model.Task
	enginePath  string
	args        []string
	expectedExt string
}

// NewService creates a new download orchestrator
func NewService(settings SettingsProvider, locator BinaryLocator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		settings: settings,
		locator:  locator,
		spawn: func(ctx context.Context, binPath string, args []string) (engine.Process, error) {
			return engine.Spawn(ctx, binPath, args)
		},
		logger:   logger,
		validate: validator.New(),
		tasks:    make(map[string]*activeTask),
	}
}

// SetSpawner overrides engine process creation; used by tests
func (s *Service) SetSpawner(spawn Spawner) {
	s.spawn = spawn
}

// Subscribe registers an observer for lifecycle events. Subscribers must not
// block; they are invoked synchronously in submission order.
func (s *Service) Subscribe(fn func(model.Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Start validates the request, enqueues a task, and triggers a drain. The
// returned task is already in the queued state. Invalid requests are rejected
// synchronously and never become tasks.
func (s *Service) Start(req model.DownloadRequest) (*model.Task, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrEmptyURL
	}
	if err := s.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("invalid download request: %w", err)
	}
	dir := s.settings.DownloadDirectory()
	if dir == "" {
		return nil, ErrNoDownloadDirectory
	}

	enginePath, err := s.locator.DownloadEngine()
	if err != nil {
		return nil, fmt.Errorf("download engine unavailable: %w", err)
	}
	remuxPath, err := s.locator.RemuxEngine()
	if err != nil {
		remuxPath = ""
		s.logger.Warn("remux engine unavailable, post-processing disabled", "error", err)
	}

	kind := req.Kind
	if kind != model.MediaAudio {
		kind = model.MediaVideo
	}

	task := &model.Task{
		ID:        req.ID,
		URL:       req.URL,
		Kind:      kind,
		Status:    model.StatusQueued,
		Dir:       dir,
		StartedAt: time.Now(),
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if req.Metadata != nil {
		task.Title = req.Metadata.Title
		task.ThumbnailURL = req.Metadata.ThumbnailURL
		task.Duration = req.Metadata.Duration
		task.DurationText = req.Metadata.DurationText
		task.Source = req.Metadata.Source
	}
	if task.Title == "" {
		task.Title = platform.TitleFromURL(req.URL)
	}

	ext := s.containerFor(kind)
	if req.OutputFormat != "" {
		ext = req.OutputFormat
	}

	if req.Overwrite && req.ExistingPath != "" {
		// Retry with overwrite replaces the prior file.
		if err := os.Remove(req.ExistingPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove prior file", "path", req.ExistingPath, "error", err)
		}
	}

	template, target := platform.ResolveTarget(dir, task.Title, ext, req.Overwrite)
	task.OutputPath = target

	opts := engine.Options{
		Kind:           kind,
		Format:         req.Format,
		OutputTemplate: template,
		VideoContainer: s.settings.PreferredVideoContainer(),
		AudioContainer: s.settings.PreferredAudioContainer(),
		Overwrite:      req.Overwrite,
		RemuxPath:      remuxPath,
		ExtraArgs:      s.settings.ExtraEngineArgs(),
	}
	args, err := opts.Args(req.URL)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.shuttingDown {
		s.mu.Unlock()
		return nil, ErrShuttingDown
	}
	s.pending = append(s.pending, &pendingEntry{
		task:        task,
		enginePath:  enginePath,
		args:        args,
		expectedExt: ext,
	})
	s.mu.Unlock()

	s.emit(model.Event{Type: model.EventQueued, TaskID: task.ID, Task: task})
	s.drainQueue()
	return task, nil
}

// SetConcurrencyLimit persists a new limit and re-evaluates admission
func (s *Service) SetConcurrencyLimit(count int) {
	s.settings.SetMaxConcurrentDownloads(count)
	s.drainQueue()
}

// Shutdown force-cancels everything: every live process is signaled to
// terminate without waiting for confirmation, and every pending entry is
// failed with the standard cancellation message.
func (s *Service) Shutdown() {
	s.mu.Lock()
	s.shuttingDown = true
	active := make([]*activeTask, 0, len(s.tasks))
	for _, at := range s.tasks {
		active = append(active, at)
	}
	s.tasks = make(map[string]*activeTask)
	pend := s.pending
	s.pending = nil

	now := time.Now()
	for _, at := range active {
		at.task.Status = model.StatusCanceled
		at.task.LastError = CancelMessage
		at.task.FinishedAt = now
	}
	for _, e := range pend {
		e.task.Status = model.StatusCanceled
		e.task.LastError = CancelMessage
		e.task.FinishedAt = now
	}
	s.mu.Unlock()

	for _, at := range active {
		if err := at.proc.Kill(); err != nil {
			s.logger.Warn("failed to kill engine process", "task", at.task.ID, "error", err)
		}
		s.emit(model.Event{Type: model.EventFailed, TaskID: at.task.ID, Message: CancelMessage})
		s.emit(model.Event{Type: model.EventRemoved, TaskID: at.task.ID})
	}
	for _, e := range pend {
		s.emit(model.Event{Type: model.EventFailed, TaskID: e.task.ID, Message: CancelMessage})
		s.emit(model.Event{Type: model.EventRemoved, TaskID: e.task.ID})
	}
}

// Task returns a live task by ID
func (s *Service) Task(id string) (*model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if at, ok := s.tasks[id]; ok {
		return at.task, true
	}
	for _, e := range s.pending {
		if e.task.ID == id {
			return e.task, true
		}
	}
	return nil, false
}

// ActiveCount returns the number of tasks with a live process
func (s *Service) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// PendingCount returns the number of not-yet-admitted tasks
func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// drainQueue admits pending entries while capacity allows. A call that finds
// a drain already running records a wakeup instead of returning silently, and
// the running drain honors it before giving up the draining flag. Without the
// handoff, capacity freed between the drain's last capacity check and its
// exit would strand a pending entry.
func (s *Service) drainQueue() {
	s.mu.Lock()
	if s.shuttingDown {
		s.mu.Unlock()
		return
	}
	if s.draining {
		s.drainWake = true
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	for {
		limit := clampLimit(s.settings.MaxConcurrentDownloads())

		s.mu.Lock()
		if s.shuttingDown || len(s.pending) == 0 || len(s.tasks) >= limit {
			if s.drainWake && !s.shuttingDown {
				s.drainWake = false
				s.mu.Unlock()
				continue
			}
			s.draining = false
			s.mu.Unlock()
			return
		}
		s.drainWake = false
		entry := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		// A failed admission reports that entry and keeps draining.
		if err := s.admit(entry); err != nil {
			s.logger.Error("admission failed", "task", entry.task.ID, "error", err)
			s.failPending(entry.task, fmt.Sprintf("failed to start download: %v", err))
		}
	}
}

// admit spawns the entry's process and registers the handle. Registration
// happens before any output is consumed, so no event can reference an
// unregistered task.
func (s *Service) admit(e *pendingEntry) error {
	s.warnLowDisk(e.task.Dir)

	proc, err := s.spawn(context.Background(), e.enginePath, e.args)
	if err != nil {
		return err
	}

	at := &activeTask{task: e.task, proc: proc, expectedExt: e.expectedExt}
	s.mu.Lock()
	s.tasks[e.task.ID] = at
	s.mu.Unlock()

	go s.watch(at)
	return nil
}

// watch consumes the process's merged output until both streams close, then
// handles the exit status. One goroutine per live task.
func (s *Service) watch(at *activeTask) {
	for line := range at.proc.Lines() {
		s.applySignal(at, engine.ParseLine(line))
	}
	s.handleExit(at, <-at.proc.Done())
}

// applySignal merges one parsed output signal into the task record and emits
// the corresponding progress or failure event. Signals arriving after a
// terminal state are dropped.
func (s *Service) applySignal(at *activeTask, sig engine.Signal) {
	if sig.Kind == engine.SignalNone {
		return
	}

	s.mu.Lock()
	task := at.task
	if task.Status.IsTerminal() {
		s.mu.Unlock()
		return
	}

	var events []model.Event
	switch sig.Kind {
	case engine.SignalDestination:
		task.OutputPath = sig.Path
		if task.Title == "" {
			base := filepath.Base(sig.Path)
			task.Title = strings.TrimSuffix(base, filepath.Ext(base))
		}
		path := sig.Path
		percent := task.Percent
		title := task.Title
		events = append(events, model.Event{
			Type:     model.EventProgress,
			TaskID:   task.ID,
			Progress: &model.Progress{OutputPath: &path, Percent: &percent, Title: &title},
		})

	case engine.SignalPercent:
		progress := &model.Progress{}
		if task.Status == model.StatusQueued {
			task.Status = model.StatusDownloading
			status := task.Status
			progress.Status = &status
		}
		// Percent is monotonic while downloading; the processing phase pins
		// it at 100 and ignores stray percent lines.
		if task.Status == model.StatusDownloading && sig.Percent >= task.Percent {
			task.Percent = sig.Percent
			percent := sig.Percent
			progress.Percent = &percent
		}
		if sig.HasSpeed {
			task.Speed = sig.Speed
			speed := sig.Speed
			progress.Speed = &speed
		}
		if sig.HasETA {
			task.ETA = sig.ETA
			eta := sig.ETA
			progress.ETA = &eta
		}
		if progress.Status != nil || progress.Percent != nil || progress.Speed != nil || progress.ETA != nil {
			events = append(events, model.Event{Type: model.EventProgress, TaskID: task.ID, Progress: progress})
		}

	case engine.SignalProcessing:
		task.Status = model.StatusProcessing
		task.Percent = 100
		status := task.Status
		percent := task.Percent
		events = append(events, model.Event{
			Type:     model.EventProgress,
			TaskID:   task.ID,
			Progress: &model.Progress{Status: &status, Percent: &percent},
		})

	case engine.SignalError:
		// Fatal regardless of the eventual exit code.
		task.Status = model.StatusFailed
		task.LastError = sig.Message
		task.FinishedAt = time.Now()
		events = append(events, model.Event{Type: model.EventFailed, TaskID: task.ID, Message: sig.Message})
	}
	s.mu.Unlock()

	for _, ev := range events {
		s.emit(ev)
	}
}

// handleExit resolves the task's terminal state once the process is gone and
// re-drives the queue.
func (s *Service) handleExit(at *activeTask, st engine.ExitStatus) {
	s.mu.Lock()
	_, registered := s.tasks[at.task.ID]
	delete(s.tasks, at.task.ID)
	task := at.task
	terminal := task.Status.IsTerminal()
	s.mu.Unlock()

	if !registered {
		// Shutdown already reported this task.
		return
	}

	var events []model.Event
	switch {
	case terminal:
		// An explicit error line already failed the task; the exit code is
		// suppressed so it is not double-reported.
	case st.Code == 0:
		s.finalize(task, at.expectedExt)
		s.mu.Lock()
		task.Status = model.StatusCompleted
		task.Percent = 100
		task.FinishedAt = time.Now()
		s.mu.Unlock()
		events = append(events, model.Event{
			Type:     model.EventCompleted,
			TaskID:   task.ID,
			FilePath: task.OutputPath,
			Title:    task.Title,
			Dir:      task.Dir,
			FileSize: task.FileSize,
		})
	default:
		msg := fmt.Sprintf("download engine exited with code %d", st.Code)
		s.mu.Lock()
		task.Status = model.StatusFailed
		task.LastError = msg
		task.FinishedAt = time.Now()
		s.mu.Unlock()
		events = append(events, model.Event{Type: model.EventFailed, TaskID: task.ID, Message: msg})
	}
	events = append(events, model.Event{Type: model.EventRemoved, TaskID: task.ID})

	for _, ev := range events {
		s.emit(ev)
	}

	s.drainQueue()
}

// failPending marks a never-admitted task failed and reports it
func (s *Service) failPending(task *model.Task, msg string) {
	if msg == "" {
		msg = "download failed"
	}
	s.mu.Lock()
	task.Status = model.StatusFailed
	task.LastError = msg
	task.FinishedAt = time.Now()
	s.mu.Unlock()

	s.emit(model.Event{Type: model.EventFailed, TaskID: task.ID, Message: msg})
	s.emit(model.Event{Type: model.EventRemoved, TaskID: task.ID})
}

// emit delivers one event to all subscribers outside the service lock
func (s *Service) emit(ev model.Event) {
	s.mu.Lock()
	subs := make([]func(model.Event), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func (s *Service) containerFor(kind model.MediaKind) string {
	if kind == model.MediaAudio {
		return s.settings.PreferredAudioContainer()
	}
	return s.settings.PreferredVideoContainer()
}

func clampLimit(count int) int {
	if count < MinConcurrentLimit {
		return MinConcurrentLimit
	}
	if count > MaxConcurrentLimit {
		return MaxConcurrentLimit
	}
	return count
}
