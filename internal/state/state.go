package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"teamtask/internal/model"
	"teamtask/internal/notify"
)

// Store is the slice of the task store client the application state uses.
type Store interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListAssignees(ctx context.Context) ([]model.Assignee, error)
	SaveTask(ctx context.Context, task model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	SaveAssignee(ctx context.Context, assignee model.Assignee) (*model.Assignee, error)
	DeleteAssignee(ctx context.Context, id string) error
}

// Phases of the UI lifecycle.
const (
	PhaseIdle    = "idle"
	PhaseLoading = "loading"
	PhaseReady   = "ready"
	PhaseError   = "error"
)

// View modes within the ready phase.
const (
	ViewList      = "list"
	ViewDashboard = "dashboard"
)

// messageTTL is how long a flash message stays visible.
const messageTTL = 4 * time.Second

var ErrNotifierDisabled = errors.New("notifications are not configured")

// AppState owns the task and assignee collections shown in the UI and the
// transient pieces around them: phase, view mode and the flash message.
// Mutations go to the store first; local state is only patched from the
// store's response, so a failed call leaves everything as it was.
type AppState struct {
	store  Store
	sender notify.Sender
	now    func() time.Time

	mu        sync.Mutex
	tasks     []model.Task
	assignees []model.Assignee
	phase     string
	view      string
	message   string
	msgTTL    time.Duration
	msgTimer  *time.Timer
	loadErr   error
}

func New(store Store, sender notify.Sender) *AppState {
	return &AppState{
		store:  store,
		sender: sender,
		now:    time.Now,
		phase:  PhaseIdle,
		view:   ViewList,
		msgTTL: messageTTL,
	}
}

// SetMessageTTL overrides how long a flash message stays visible. Tests
// shorten it.
func (s *AppState) SetMessageTTL(d time.Duration) {
	s.mu.Lock()
	s.msgTTL = d
	s.mu.Unlock()
}

// Load fetches both collections and replaces the local copies entirely.
// The last successful fetch wins; there is no merging.
func (s *AppState) Load(ctx context.Context) error {
	s.mu.Lock()
	s.phase = PhaseLoading
	s.mu.Unlock()

	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		s.setLoadError(fmt.Errorf("ไม่สามารถดึงข้อมูลงานจากฐานข้อมูลได้: %w", err))
		return err
	}

	assignees, err := s.store.ListAssignees(ctx)
	if err != nil {
		s.setLoadError(fmt.Errorf("ไม่สามารถดึงข้อมูลผู้รับผิดชอบได้: %w", err))
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.assignees = assignees
	s.phase = PhaseReady
	s.loadErr = nil
	s.mu.Unlock()
	return nil
}

// SaveTask submits a create or update depending on whether the task has an
// id, patches local state from the response, and fires the matching chat
// notification.
func (s *AppState) SaveTask(ctx context.Context, task model.Task) (*model.Task, error) {
	creating := task.IsNew()

	saved, err := s.store.SaveTask(ctx, task)
	if err != nil {
		s.showError(err)
		return nil, err
	}

	s.mu.Lock()
	if creating {
		s.tasks = append(s.tasks, *saved)
	} else {
		s.replaceTask(*saved)
	}
	s.mu.Unlock()

	if creating {
		s.showMessage(fmt.Sprintf(`มอบหมายงาน "%s" สำเร็จ!`, saved.Title))
		s.sendAsync(notify.NewTaskMessage(*saved))
	} else {
		s.showMessage(fmt.Sprintf(`แก้ไขงาน "%s" สำเร็จ!`, saved.Title))
		s.sendAsync(notify.UpdatedMessage(*saved))
	}
	return saved, nil
}

// CompleteTask marks the task completed through the store. Confirmation is
// the caller's responsibility; this only performs the transition.
func (s *AppState) CompleteTask(ctx context.Context, task model.Task) (*model.Task, error) {
	task.Status = model.StatusCompleted

	saved, err := s.store.SaveTask(ctx, task)
	if err != nil {
		s.showError(err)
		return nil, err
	}

	s.mu.Lock()
	s.replaceTask(*saved)
	s.mu.Unlock()

	s.showMessage(fmt.Sprintf(`งาน "%s" เสร็จสิ้นแล้ว!`, saved.Title))
	s.sendAsync(notify.CompletedMessage(*saved))
	return saved, nil
}

// RemoveTask deletes by id and filters the task out of local state.
func (s *AppState) RemoveTask(ctx context.Context, id string) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		s.showError(err)
		return err
	}

	s.mu.Lock()
	filtered := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	s.tasks = filtered
	s.mu.Unlock()

	s.showMessage("ลบงานสำเร็จ!")
	return nil
}

// Notify sends the reminder for a task. Unlike the event notifications this
// is the user's primary action, so the delivery error is returned.
func (s *AppState) Notify(ctx context.Context, task model.Task) error {
	if s.sender == nil {
		return ErrNotifierDisabled
	}

	if err := s.sender.Send(ctx, notify.ReminderMessage(s.now(), task)); err != nil {
		s.showError(err)
		return err
	}

	s.showMessage(fmt.Sprintf(`ส่งข้อความแจ้งเตือนสำหรับงาน "%s" แล้ว!`, task.Title))
	return nil
}

// SaveAssignee creates or updates an assignee and patches local state.
func (s *AppState) SaveAssignee(ctx context.Context, assignee model.Assignee) (*model.Assignee, error) {
	creating := assignee.IsNew()

	saved, err := s.store.SaveAssignee(ctx, assignee)
	if err != nil {
		s.showError(err)
		return nil, err
	}

	s.mu.Lock()
	if creating {
		s.assignees = append(s.assignees, *saved)
	} else {
		for i, a := range s.assignees {
			if a.ID == saved.ID {
				s.assignees[i] = *saved
				break
			}
		}
	}
	s.mu.Unlock()
	return saved, nil
}

// RemoveAssignee deletes by id and filters the assignee out of local state.
// Tasks referencing the assignee by name are left untouched.
func (s *AppState) RemoveAssignee(ctx context.Context, id string) error {
	if err := s.store.DeleteAssignee(ctx, id); err != nil {
		s.showError(err)
		return err
	}

	s.mu.Lock()
	filtered := s.assignees[:0]
	for _, a := range s.assignees {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	s.assignees = filtered
	s.mu.Unlock()
	return nil
}

// FindTask looks a task up by id in the local collection.
func (s *AppState) FindTask(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Tasks returns a copy of the current task collection.
func (s *AppState) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Assignees returns a copy of the current assignee collection.
func (s *AppState) Assignees() []model.Assignee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Assignee, len(s.assignees))
	copy(out, s.assignees)
	return out
}

// SetView switches between the list and dashboard views.
func (s *AppState) SetView(view string) error {
	if view != ViewList && view != ViewDashboard {
		return fmt.Errorf("unknown view %q", view)
	}
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	return nil
}

// Snapshot is the transient UI state alongside the collections.
type Snapshot struct {
	Phase     string `json:"phase"`
	View      string `json:"view"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	TaskCount int    `json:"taskCount"`
}

func (s *AppState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:     s.phase,
		View:      s.view,
		Message:   s.message,
		TaskCount: len(s.tasks),
	}
	if s.loadErr != nil {
		snap.Error = s.loadErr.Error()
	}
	return snap
}

// Message returns the current flash message, if any.
func (s *AppState) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// replaceTask swaps the stored task with the same id. Caller holds the lock.
func (s *AppState) replaceTask(saved model.Task) {
	for i, t := range s.tasks {
		if t.ID == saved.ID {
			s.tasks[i] = saved
			return
		}
	}
}

func (s *AppState) setLoadError(err error) {
	s.mu.Lock()
	s.phase = PhaseError
	s.loadErr = err
	s.mu.Unlock()
}

// showMessage displays a flash message that clears itself after the TTL.
// A newer message stops the older one's timer so it cannot clobber it.
func (s *AppState) showMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.msgTimer != nil {
		s.msgTimer.Stop()
	}
	s.message = msg
	s.msgTimer = time.AfterFunc(s.msgTTL, func() {
		s.mu.Lock()
		if s.message == msg {
			s.message = ""
		}
		s.mu.Unlock()
	})
}

func (s *AppState) showError(err error) {
	s.showMessage(fmt.Sprintf("เกิดข้อผิดพลาด: %v", err))
}

// sendAsync delivers an event notification without blocking the mutation
// that triggered it. Failures are logged and otherwise swallowed.
func (s *AppState) sendAsync(message string) {
	if s.sender == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.sender.Send(ctx, message); err != nil {
			log.Printf("⚠️  Failed to send notification: %v", err)
		}
	}()
}
