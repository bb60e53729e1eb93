package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrub/internal/modules/oracle/domain"
	"scrub/internal/modules/oracle/dto"
	"scrub/internal/modules/oracle/service"
)

type memManifestStore struct {
	manifests []domain.Manifest
	err       error
}

func (s *memManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, s.err
}

type fakeHost struct {
	plan         domain.TaskPlan
	judgment     domain.Judgment
	callErr      error
	lifecycleErr error
	calls        int
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error {
	return h.lifecycleErr
}

func (h *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version, Capabilities: m.Capabilities}, nil
}

func (h *fakeHost) GenerateTasks(context.Context, domain.Manifest, domain.GenerateRequest) (domain.TaskPlan, error) {
	h.calls++
	return h.plan, h.callErr
}

func (h *fakeHost) JudgeCleaning(context.Context, domain.Manifest, domain.JudgeRequest) (domain.Judgment, error) {
	h.calls++
	return h.judgment, h.callErr
}

// writeBinary drops a fake oracle binary on disk and returns its path
// together with the matching sha256.
func writeBinary(t *testing.T, dir string, name string) (string, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	payload := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256(payload)
	return path, hex.EncodeToString(hash[:])
}

func manifestFor(binary string, sum string) domain.Manifest {
	return domain.Manifest{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binary,
		SHA256:       sum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityGenerateTasks, domain.CapabilityJudgeCleaning},
	}
}

func TestGenerateTasksPicksByCapability(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, t.TempDir(), "reference")
	generator := manifestFor(binary, sum)
	judgeOnly := manifestFor(binary, sum)
	judgeOnly.Name = "judge-only"
	judgeOnly.Capabilities = []domain.Capability{domain.CapabilityJudgeCleaning}
	store := &memManifestStore{manifests: []domain.Manifest{judgeOnly, generator}}
	host := &fakeHost{plan: domain.TaskPlan{Tasks: []domain.TaskSpec{{Title: "Wipe counters", Points: 15}}}}
	svc := service.NewOracleService(store, host)

	out, err := svc.GenerateTasks(context.Background(), dto.GenerateInput{PhotoPath: "/tmp/before.jpg", Persona: "chef"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.OracleName != "reference" {
		t.Fatalf("expected capability-based pick, got %q", out.OracleName)
	}
	if len(out.Tasks) != 1 || out.Tasks[0].Title != "Wipe counters" {
		t.Fatalf("unexpected tasks: %+v", out.Tasks)
	}
}

func TestGenerateTasksRejectsDisabledOracle(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, t.TempDir(), "reference")
	manifest := manifestFor(binary, sum)
	manifest.Enabled = false
	store := &memManifestStore{manifests: []domain.Manifest{manifest}}
	svc := service.NewOracleService(store, &fakeHost{})

	_, err := svc.GenerateTasks(context.Background(), dto.GenerateInput{OracleName: "reference", PhotoPath: "/tmp/before.jpg"})
	if !errors.Is(err, domain.ErrOracleDisabled) {
		t.Fatalf("expected ErrOracleDisabled, got %v", err)
	}
}

func TestJudgeCleaningRejectsMissingCapability(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, t.TempDir(), "reference")
	manifest := manifestFor(binary, sum)
	manifest.Capabilities = []domain.Capability{domain.CapabilityGenerateTasks}
	store := &memManifestStore{manifests: []domain.Manifest{manifest}}
	svc := service.NewOracleService(store, &fakeHost{})

	_, err := svc.JudgeCleaning(context.Background(), dto.JudgeInput{
		OracleName:      "reference",
		BeforePhotoPath: "/tmp/before.jpg",
		AfterPhotoPath:  "/tmp/after.jpg",
	})
	if !errors.Is(err, domain.ErrCapabilityMissing) {
		t.Fatalf("expected ErrCapabilityMissing, got %v", err)
	}
}

func TestJudgeCleaningNoOracleAvailable(t *testing.T) {
	t.Parallel()
	store := &memManifestStore{}
	svc := service.NewOracleService(store, &fakeHost{})

	_, err := svc.JudgeCleaning(context.Background(), dto.JudgeInput{
		BeforePhotoPath: "/tmp/before.jpg",
		AfterPhotoPath:  "/tmp/after.jpg",
	})
	if !errors.Is(err, domain.ErrNoOracle) {
		t.Fatalf("expected ErrNoOracle, got %v", err)
	}
}

func TestGenerateTasksDetectsTamperedBinary(t *testing.T) {
	t.Parallel()
	binary, _ := writeBinary(t, t.TempDir(), "reference")
	manifest := manifestFor(binary, strings.Repeat("0", 64))
	store := &memManifestStore{manifests: []domain.Manifest{manifest}}
	host := &fakeHost{}
	svc := service.NewOracleService(store, host)

	_, err := svc.GenerateTasks(context.Background(), dto.GenerateInput{OracleName: "reference", PhotoPath: "/tmp/before.jpg"})
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
	if host.calls != 0 {
		t.Fatalf("tampered binary must never be invoked, got %d calls", host.calls)
	}
}

func TestDoctorReportsChecksumAndMissingBinary(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binary, sum := writeBinary(t, dir, "healthy")
	healthy := manifestFor(binary, sum)
	tampered := manifestFor(binary, strings.Repeat("0", 64))
	tampered.Name = "tampered"
	missing := manifestFor(filepath.Join(dir, "vanished"), sum)
	missing.Name = "missing"
	store := &memManifestStore{manifests: []domain.Manifest{healthy, tampered, missing}}
	svc := service.NewOracleService(store, &fakeHost{})

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	byName := map[string]int{}
	for i, r := range results {
		byName[r.Name] = i
	}
	if r := results[byName["reference"]]; !r.ChecksumValid || !r.BinaryReachable || !r.LifecycleOK {
		t.Fatalf("healthy oracle failed doctor: %+v", r)
	}
	if r := results[byName["tampered"]]; r.ChecksumValid || r.Error != "checksum mismatch" {
		t.Fatalf("tampered oracle passed doctor: %+v", r)
	}
	if r := results[byName["missing"]]; r.BinaryReachable || r.Error == "" {
		t.Fatalf("missing binary passed doctor: %+v", r)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, t.TempDir(), "reference")
	store := &memManifestStore{manifests: []domain.Manifest{manifestFor(binary, sum), manifestFor(binary, sum)}}
	svc := service.NewOracleService(store, &fakeHost{})

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}
