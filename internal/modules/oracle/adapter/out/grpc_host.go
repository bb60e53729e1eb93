package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	oraclerpc "scrub/internal/modules/oracle/adapter/out/rpc"
	"scrub/internal/modules/oracle/domain"
	oracleout "scrub/internal/modules/oracle/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 30 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() oracleout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultStartTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultStartTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) GenerateTasks(ctx context.Context, manifest domain.Manifest, input domain.GenerateRequest) (domain.TaskPlan, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return domain.TaskPlan{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.GenerateTasks(callCtx, &oraclerpc.GenerateTasksRequest{
		PhotoPath: input.PhotoPath,
		Persona:   input.Persona,
		FilterID:  input.FilterID,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.TaskPlan{}, fmt.Errorf("%w: generate tasks", domain.ErrOracleTimeout)
		}
		return domain.TaskPlan{}, fmt.Errorf("generate tasks: %w", err)
	}
	tasks := make([]domain.TaskSpec, 0, len(response.Tasks))
	for _, task := range response.Tasks {
		tasks = append(tasks, domain.TaskSpec{Title: task.Title, Detail: task.Detail, Points: int(task.Points)})
	}
	return domain.TaskPlan{Tasks: tasks, VisionImagePath: response.VisionImagePath}, nil
}

func (h *GRPCHost) JudgeCleaning(ctx context.Context, manifest domain.Manifest, input domain.JudgeRequest) (domain.Judgment, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return domain.Judgment{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.JudgeCleaning(callCtx, &oraclerpc.JudgeCleaningRequest{
		BeforePhotoPath: input.BeforePhotoPath,
		AfterPhotoPath:  input.AfterPhotoPath,
		TaskTitles:      input.TaskTitles,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Judgment{}, fmt.Errorf("%w: judge cleaning", domain.ErrOracleTimeout)
		}
		return domain.Judgment{}, fmt.Errorf("judge cleaning: %w", err)
	}
	return domain.Judgment{
		Passed:     response.Passed,
		Confidence: response.Confidence,
		Remarks:    response.Remarks,
	}, nil
}

func (h *GRPCHost) connect(ctx context.Context, manifest domain.Manifest, startTimeout time.Duration) (oraclerpc.OracleClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  oraclerpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          oraclerpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start oracle client: %w", err)
	}
	raw, err := rpcClient.Dispense(oraclerpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense oracle: %w", err)
	}
	typed, ok := raw.(oraclerpc.OracleClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("oracle rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
