package domain_test

import (
	"strings"
	"testing"

	"scrub/internal/modules/oracle/domain"
)

func validSHA() string {
	return strings.Repeat("a", 64)
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "o", Version: "1", Binary: "/tmp/o", SHA256: validSHA(), Enabled: true, Capabilities: []domain.Capability{domain.CapabilityGenerateTasks}}, shouldErr: false},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/o", SHA256: validSHA(), Capabilities: []domain.Capability{domain.CapabilityGenerateTasks}}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "o", Binary: "/tmp/o", SHA256: validSHA(), Capabilities: []domain.Capability{domain.CapabilityGenerateTasks}}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "o", Version: "1", SHA256: validSHA(), Capabilities: []domain.Capability{domain.CapabilityGenerateTasks}}, shouldErr: true},
		{name: "bad sha", manifest: domain.Manifest{Name: "o", Version: "1", Binary: "/tmp/o", SHA256: "XYZ", Capabilities: []domain.Capability{domain.CapabilityGenerateTasks}}, shouldErr: true},
		{name: "no capabilities", manifest: domain.Manifest{Name: "o", Version: "1", Binary: "/tmp/o", SHA256: validSHA()}, shouldErr: true},
		{name: "unknown capability", manifest: domain.Manifest{Name: "o", Version: "1", Binary: "/tmp/o", SHA256: validSHA(), Capabilities: []domain.Capability{"telepathy"}}, shouldErr: true},
		{name: "duplicate capability", manifest: domain.Manifest{Name: "o", Version: "1", Binary: "/tmp/o", SHA256: validSHA(), Capabilities: []domain.Capability{domain.CapabilityGenerateTasks, domain.CapabilityGenerateTasks}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestRequestValidation(t *testing.T) {
	t.Parallel()
	if err := (domain.GenerateRequest{}).Validate(); err == nil {
		t.Fatalf("generate without photo should fail")
	}
	if err := (domain.GenerateRequest{PhotoPath: "/tmp/p.jpg"}).Validate(); err != nil {
		t.Fatalf("valid generate request: %v", err)
	}
	if err := (domain.JudgeRequest{AfterPhotoPath: "/tmp/a.jpg"}).Validate(); err == nil {
		t.Fatalf("judge without before photo should fail")
	}
	if err := (domain.JudgeRequest{BeforePhotoPath: "/tmp/b.jpg"}).Validate(); err == nil {
		t.Fatalf("judge without after photo should fail")
	}
}

func TestTaskPlanValidation(t *testing.T) {
	t.Parallel()
	if err := (domain.TaskPlan{}).Validate(); err == nil {
		t.Fatalf("empty plan should fail")
	}
	if err := (domain.TaskPlan{Tasks: []domain.TaskSpec{{Detail: "no title"}}}).Validate(); err == nil {
		t.Fatalf("untitled task should fail")
	}
	if err := (domain.TaskPlan{Tasks: []domain.TaskSpec{{Title: "Wipe", Points: 10}}}).Validate(); err != nil {
		t.Fatalf("valid plan: %v", err)
	}
}
