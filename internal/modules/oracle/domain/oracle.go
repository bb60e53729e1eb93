package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	CapabilityGenerateTasks Capability = "generate_tasks"
	CapabilityJudgeCleaning Capability = "judge_cleaning"
)

var (
	ErrOracleDisabled    = errors.New("oracle is disabled")
	ErrChecksumMismatch  = errors.New("oracle checksum mismatch")
	ErrCapabilityMissing = errors.New("oracle capability missing")
	ErrNoOracle          = errors.New("no oracle available")
	ErrOracleTimeout     = errors.New("oracle timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("oracle name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("oracle version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("oracle binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("oracle sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("oracle capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityGenerateTasks, CapabilityJudgeCleaning:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// TaskSpec is a single suggested cleaning step as the oracle saw it.
type TaskSpec struct {
	Title  string
	Detail string
	Points int
}

type TaskPlan struct {
	Tasks []TaskSpec
	// VisionImagePath points at a rendered dream-vision image, when the
	// oracle produced one.
	VisionImagePath string
}

func (p TaskPlan) Validate() error {
	if len(p.Tasks) == 0 {
		return fmt.Errorf("task plan is empty")
	}
	for _, task := range p.Tasks {
		if task.Title == "" {
			return fmt.Errorf("task title is required")
		}
	}
	return nil
}

type GenerateRequest struct {
	PhotoPath string
	Persona   string
	FilterID  string
}

func (r GenerateRequest) Validate() error {
	if r.PhotoPath == "" {
		return fmt.Errorf("photo path is required")
	}
	return nil
}

type JudgeRequest struct {
	BeforePhotoPath string
	AfterPhotoPath  string
	TaskTitles      []string
}

func (r JudgeRequest) Validate() error {
	if r.BeforePhotoPath == "" {
		return fmt.Errorf("before photo path is required")
	}
	if r.AfterPhotoPath == "" {
		return fmt.Errorf("after photo path is required")
	}
	return nil
}

// Judgment is the oracle's pass/fail call on a before/after pair.
type Judgment struct {
	Passed     bool
	Confidence float64
	Remarks    string
}
