package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"scrub/internal/modules/session/domain"
	"scrub/internal/modules/session/dto"
	sessionout "scrub/internal/modules/session/port/out"
	"scrub/internal/modules/session/service"
	"scrub/internal/modules/session/usecase"
	apperrors "scrub/internal/platform/errors"
	"scrub/internal/platform/tx"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type fakeID struct{ n int }

func (g *fakeID) New() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fakeSessionStore struct {
	sessions       map[string]domain.Session
	order          []string
	completedToday int
	saveErr        error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]domain.Session{}}
}

func (s *fakeSessionStore) Save(_ context.Context, session domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if _, ok := s.sessions[session.ID]; !ok {
		s.order = append(s.order, session.ID)
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, sessionID string) (domain.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.Session{}, apperrors.ErrNotFound
	}
	return session, nil
}

func (s *fakeSessionStore) Latest(_ context.Context, areaID string) (domain.Session, error) {
	for i := len(s.order) - 1; i >= 0; i-- {
		if session := s.sessions[s.order[i]]; session.AreaID == areaID {
			return session, nil
		}
	}
	return domain.Session{}, apperrors.ErrNotFound
}

func (s *fakeSessionStore) InProgress(_ context.Context, areaID string) (domain.Session, bool, error) {
	for _, id := range s.order {
		session := s.sessions[id]
		if session.AreaID == areaID && session.InProgress() {
			return session, true, nil
		}
	}
	return domain.Session{}, false, nil
}

func (s *fakeSessionStore) ListByArea(_ context.Context, areaID string) ([]domain.Session, error) {
	var out []domain.Session
	for _, id := range s.order {
		if session := s.sessions[id]; session.AreaID == areaID {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) CountCompletedOn(_ context.Context, _ time.Time) (int, error) {
	return s.completedToday, nil
}

func (s *fakeSessionStore) LastPassedVerification(_ context.Context) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

type fakePhotoStore struct{}

func (fakePhotoStore) Import(_ context.Context, areaID, srcPath string) (string, error) {
	if srcPath == "" {
		return "", apperrors.ErrPhotoRequired
	}
	return "photos/" + areaID + "/" + srcPath, nil
}

type fakeGenerator struct {
	generation sessionout.Generation
	err        error
	calls      int
}

func (g *fakeGenerator) Generate(_ context.Context, _, _, _ string) (sessionout.Generation, error) {
	g.calls++
	return g.generation, g.err
}

type fakeSink struct{ events []domain.CompletionEvent }

func (s *fakeSink) Record(_ context.Context, event domain.CompletionEvent) error {
	s.events = append(s.events, event)
	return nil
}

type fakeHook struct{ awards int }

func (h *fakeHook) AwardBonus(_ context.Context, _ string) error {
	h.awards++
	return nil
}

type fakeReports struct{ err error }

func (r *fakeReports) Save(_ context.Context, session domain.Session, _ string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "sessions/" + session.ID + ".md", nil
}

type fakeAreaGateway struct {
	area        sessionout.AreaInfo
	firstVision string
}

func (g *fakeAreaGateway) Get(_ context.Context, areaID string) (sessionout.AreaInfo, error) {
	if areaID != g.area.ID {
		return sessionout.AreaInfo{}, apperrors.ErrNotFound
	}
	info := g.area
	if g.firstVision != "" {
		info.FirstVisionPath = g.firstVision
	}
	return info, nil
}

func (g *fakeAreaGateway) SetFirstVision(_ context.Context, _, path string) error {
	g.firstVision = path
	return nil
}

type fakeEconomyGateway struct {
	target       int
	streakStarts int
}

func (g *fakeEconomyGateway) DailyTarget(_ context.Context) (int, error) { return g.target, nil }

func (g *fakeEconomyGateway) RecordSessionStart(_ context.Context, _ time.Time) error {
	g.streakStarts++
	return nil
}

type harness struct {
	interactor interface {
		Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
		CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.CompleteTaskOutput, error)
		Status(ctx context.Context, areaID string) (dto.SessionOutput, error)
	}
	store     *fakeSessionStore
	generator *fakeGenerator
	sink      *fakeSink
	hook      *fakeHook
	areas     *fakeAreaGateway
	economy   *fakeEconomyGateway
	reports   *fakeReports
}

func newHarness() *harness {
	store := newFakeSessionStore()
	generator := &fakeGenerator{generation: sessionout.Generation{
		Tasks:     []sessionout.GeneratedTask{{Title: "Wipe counters", Points: 10}, {Title: "Mop floor", Points: 15}},
		ImagePath: "vision-gen.png",
	}}
	sink := &fakeSink{}
	hook := &fakeHook{}
	areas := &fakeAreaGateway{area: sessionout.AreaInfo{ID: "kitchen", Name: "Kitchen", Persona: "chef"}}
	economy := &fakeEconomyGateway{target: 2}
	reports := &fakeReports{}
	svc := service.NewSessionService(fakeClock{now: now}, &fakeID{}, "assets/visions", store)
	interactor := usecase.NewInteractor(
		svc, store, fakePhotoStore{}, generator, sink, hook, reports, areas, economy, tx.NoopManager{},
	)
	return &harness{interactor: interactor, store: store, generator: generator, sink: sink, hook: hook, areas: areas, economy: economy, reports: reports}
}

func start(t *testing.T, h *harness) dto.StartOutput {
	t.Helper()
	out, err := h.interactor.Start(context.Background(), dto.StartInput{AreaID: "kitchen", PhotoPath: "before.jpg"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return out
}

func TestStartCreatesDreamVisionSession(t *testing.T) {
	t.Parallel()
	h := newHarness()
	out := start(t, h)
	if out.Mode != string(domain.StartModeDreamVision) {
		t.Fatalf("mode = %s, want dream_vision", out.Mode)
	}
	if out.TaskCount != 2 {
		t.Fatalf("task count = %d, want 2", out.TaskCount)
	}
	if out.VisionImage != "vision-gen.png" {
		t.Fatalf("vision = %s, want generated artifact", out.VisionImage)
	}
	if h.areas.firstVision != "vision-gen.png" {
		t.Fatalf("first vision not recorded on the area")
	}
	if h.economy.streakStarts != 1 {
		t.Fatalf("streak starts = %d, want 1", h.economy.streakStarts)
	}
}

func TestStartQuotaReached(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.store.completedToday = 2
	_, err := h.interactor.Start(context.Background(), dto.StartInput{AreaID: "kitchen", PhotoPath: "before.jpg"})
	if !errors.Is(err, apperrors.ErrKitchenClosed) {
		t.Fatalf("err = %v, want ErrKitchenClosed", err)
	}
	if len(h.store.sessions) != 0 {
		t.Fatalf("quota failure must not persist anything")
	}
}

func TestStartZeroTargetClosesKitchen(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.economy.target = 0
	_, err := h.interactor.Start(context.Background(), dto.StartInput{AreaID: "kitchen", PhotoPath: "before.jpg"})
	if !errors.Is(err, apperrors.ErrKitchenClosed) {
		t.Fatalf("err = %v, want ErrKitchenClosed", err)
	}
}

func TestStartRequiresPhoto(t *testing.T) {
	t.Parallel()
	h := newHarness()
	_, err := h.interactor.Start(context.Background(), dto.StartInput{AreaID: "kitchen"})
	if !errors.Is(err, apperrors.ErrPhotoRequired) {
		t.Fatalf("err = %v, want ErrPhotoRequired", err)
	}
}

func TestStartAppendsToInProgressSession(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.areas.firstVision = "existing.png"
	first := start(t, h)
	if first.Mode != string(domain.StartModeTasksOnly) {
		t.Fatalf("mode = %s, want tasks_only", first.Mode)
	}
	second := start(t, h)
	if second.Mode != string(domain.StartModeAppendTasks) {
		t.Fatalf("mode = %s, want append_tasks", second.Mode)
	}
	if second.SessionID != first.SessionID {
		t.Fatalf("append created a new session")
	}
	if h.economy.streakStarts != 1 {
		t.Fatalf("append must not touch the streak, got %d starts", h.economy.streakStarts)
	}
	session := h.store.sessions[first.SessionID]
	if len(session.Tasks) != 4 {
		t.Fatalf("task count = %d, want 4", len(session.Tasks))
	}
}

func TestStartFallbackOnGeneratorFailure(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.generator.err = errors.New("oracle offline")
	out := start(t, h)
	if out.Warning == "" {
		t.Fatalf("expected a non-blocking warning")
	}
	if out.TaskCount != 5 {
		t.Fatalf("fallback task count = %d, want 5", out.TaskCount)
	}
	session := h.store.sessions[out.SessionID]
	if session.VisionImage != "assets/visions/chef.png" {
		t.Fatalf("vision = %s, want static persona asset", session.VisionImage)
	}
}

func TestCompleteTaskFlow(t *testing.T) {
	t.Parallel()
	h := newHarness()
	out := start(t, h)
	session := h.store.sessions[out.SessionID]

	first, err := h.interactor.CompleteTask(context.Background(), dto.CompleteTaskInput{AreaID: "kitchen", TaskID: session.Tasks[0].ID})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if first.PointsEarned != 10 || first.BasePoints != 10 {
		t.Fatalf("unexpected points: %+v", first)
	}
	if first.SessionCompleted {
		t.Fatalf("session should still be in progress")
	}
	if len(h.sink.events) != 1 {
		t.Fatalf("expected one analytics event, got %d", len(h.sink.events))
	}
	if h.sink.events[0].Persona != "chef" || h.sink.events[0].Points != 10 {
		t.Fatalf("event payload wrong: %+v", h.sink.events[0])
	}

	repeat, err := h.interactor.CompleteTask(context.Background(), dto.CompleteTaskInput{AreaID: "kitchen", TaskID: session.Tasks[0].ID})
	if err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	if !repeat.AlreadyDone || repeat.BasePoints != 10 {
		t.Fatalf("repeat completion must be a no-op: %+v", repeat)
	}
	if len(h.sink.events) != 1 {
		t.Fatalf("repeat completion must not emit events")
	}

	last, err := h.interactor.CompleteTask(context.Background(), dto.CompleteTaskInput{AreaID: "kitchen", TaskID: session.Tasks[1].ID})
	if err != nil {
		t.Fatalf("complete last: %v", err)
	}
	if !last.SessionCompleted {
		t.Fatalf("session should be completed")
	}
	if last.ReportPath == "" {
		t.Fatalf("completed session should produce a report")
	}
	if h.hook.awards != 1 {
		t.Fatalf("bonus hook fired %d times, want 1", h.hook.awards)
	}
}

func TestCompleteTaskReportFailureBecomesWarning(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.reports.err = errors.New("notes dir is read-only")
	out := start(t, h)
	session := h.store.sessions[out.SessionID]

	var last dto.CompleteTaskOutput
	var err error
	for _, task := range session.Tasks {
		last, err = h.interactor.CompleteTask(context.Background(), dto.CompleteTaskInput{AreaID: "kitchen", TaskID: task.ID})
		if err != nil {
			t.Fatalf("complete %s: %v", task.ID, err)
		}
	}
	if !last.SessionCompleted {
		t.Fatalf("session should be completed")
	}
	if last.ReportPath != "" {
		t.Fatalf("no report path when the write failed: %q", last.ReportPath)
	}
	if last.Warning == "" {
		t.Fatalf("report failure must surface as a warning")
	}
	if saved := h.store.sessions[out.SessionID]; !saved.Completed() {
		t.Fatalf("report failure must not block completion")
	}
}

func TestCompleteTaskWithoutSession(t *testing.T) {
	t.Parallel()
	h := newHarness()
	_, err := h.interactor.CompleteTask(context.Background(), dto.CompleteTaskInput{AreaID: "kitchen", TaskID: "x"})
	if !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestStatusReturnsLatest(t *testing.T) {
	t.Parallel()
	h := newHarness()
	out := start(t, h)
	status, err := h.interactor.Status(context.Background(), "kitchen")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.SessionID != out.SessionID || len(status.Tasks) != 2 {
		t.Fatalf("unexpected status: %+v", status)
	}
}
