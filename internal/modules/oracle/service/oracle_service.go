package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"scrub/internal/modules/oracle/domain"
	"scrub/internal/modules/oracle/dto"
	oracleout "scrub/internal/modules/oracle/port/out"
)

type OracleService struct {
	store oracleout.ManifestStore
	host  oracleout.Host
}

func NewOracleService(store oracleout.ManifestStore, host oracleout.Host) *OracleService {
	return &OracleService{store: store, host: host}
}

func (s *OracleService) List(ctx context.Context) ([]dto.OracleInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OracleInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.OracleInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *OracleService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *OracleService) GenerateTasks(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error) {
	manifest, err := s.pickRunnable(ctx, input.OracleName, domain.CapabilityGenerateTasks)
	if err != nil {
		return dto.GenerateOutput{}, err
	}
	req := domain.GenerateRequest{PhotoPath: input.PhotoPath, Persona: input.Persona, FilterID: input.FilterID}
	if err := req.Validate(); err != nil {
		return dto.GenerateOutput{}, err
	}
	plan, err := s.host.GenerateTasks(ctx, manifest, req)
	if err != nil {
		return dto.GenerateOutput{}, err
	}
	if err := plan.Validate(); err != nil {
		return dto.GenerateOutput{}, err
	}
	tasks := make([]dto.GeneratedTask, 0, len(plan.Tasks))
	for _, task := range plan.Tasks {
		tasks = append(tasks, dto.GeneratedTask{Title: task.Title, Detail: task.Detail, Points: task.Points})
	}
	return dto.GenerateOutput{OracleName: manifest.Name, Tasks: tasks, VisionImagePath: plan.VisionImagePath}, nil
}

func (s *OracleService) JudgeCleaning(ctx context.Context, input dto.JudgeInput) (dto.JudgeOutput, error) {
	manifest, err := s.pickRunnable(ctx, input.OracleName, domain.CapabilityJudgeCleaning)
	if err != nil {
		return dto.JudgeOutput{}, err
	}
	req := domain.JudgeRequest{
		BeforePhotoPath: input.BeforePhotoPath,
		AfterPhotoPath:  input.AfterPhotoPath,
		TaskTitles:      input.TaskTitles,
	}
	if err := req.Validate(); err != nil {
		return dto.JudgeOutput{}, err
	}
	judgment, err := s.host.JudgeCleaning(ctx, manifest, req)
	if err != nil {
		return dto.JudgeOutput{}, err
	}
	return dto.JudgeOutput{
		OracleName: manifest.Name,
		Passed:     judgment.Passed,
		Confidence: judgment.Confidence,
		Remarks:    judgment.Remarks,
	}, nil
}

func (s *OracleService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate oracle name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

// pickRunnable resolves a manifest by name, or by capability when name
// is empty, and verifies it is actually runnable before any call.
func (s *OracleService) pickRunnable(ctx context.Context, oracleName string, requiredCapability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if oracleName != "" {
			if item.Name == oracleName {
				manifest = item
				found = true
				break
			}
			continue
		}
		if item.Enabled && item.HasCapability(requiredCapability) {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		if oracleName != "" {
			return domain.Manifest{}, fmt.Errorf("oracle %q not found", oracleName)
		}
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrNoOracle, requiredCapability)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrOracleDisabled, manifest.Name)
	}
	if !manifest.HasCapability(requiredCapability) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, requiredCapability)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrOracleTimeout, manifest.Name)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read oracle binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
