package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"

	oraclerpc "scrub/internal/modules/oracle/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *oraclerpc.Empty) (*oraclerpc.Metadata, error) {
	return &oraclerpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"generate_tasks", "judge_cleaning"},
	}, nil
}

var personaTasks = map[string][]oraclerpc.TaskSpec{
	"chef": {
		{Title: "Clear the counters", Detail: "A chef needs a clean station", Points: 15},
		{Title: "Wash what is in the sink", Points: 15},
		{Title: "Wipe down the stove", Points: 10},
	},
	"drill": {
		{Title: "Floor inspection, pick everything up", Points: 15},
		{Title: "Surfaces wiped, no excuses", Points: 15},
		{Title: "Trash out, double time", Points: 10},
	},
	"zen": {
		{Title: "Return each object to its home", Points: 15},
		{Title: "Clear one surface completely", Points: 15},
		{Title: "Open a window, let the room breathe", Points: 10},
	},
	"sparkle": {
		{Title: "Make the shiniest surface shinier", Points: 15},
		{Title: "Banish the dust bunnies", Points: 15},
		{Title: "Fluff and straighten everything soft", Points: 10},
	},
}

func (s *server) GenerateTasks(_ context.Context, in *oraclerpc.GenerateTasksRequest) (*oraclerpc.GenerateTasksResponse, error) {
	if strings.TrimSpace(in.PhotoPath) == "" {
		return nil, fmt.Errorf("photo path is required")
	}
	tasks, ok := personaTasks[in.Persona]
	if !ok {
		tasks = personaTasks["sparkle"]
	}
	return &oraclerpc.GenerateTasksResponse{Tasks: tasks}, nil
}

// JudgeCleaning is deterministic: a before/after pair passes when the
// photos differ and the after photo hashes even. Stand-in logic so the
// host's full judging path can be exercised without a model behind it.
func (s *server) JudgeCleaning(_ context.Context, in *oraclerpc.JudgeCleaningRequest) (*oraclerpc.JudgeCleaningResponse, error) {
	if strings.TrimSpace(in.BeforePhotoPath) == "" || strings.TrimSpace(in.AfterPhotoPath) == "" {
		return nil, fmt.Errorf("both photos are required")
	}
	if in.BeforePhotoPath == in.AfterPhotoPath {
		return &oraclerpc.JudgeCleaningResponse{Passed: false, Confidence: 1, Remarks: "before and after are the same photo"}, nil
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(filepath.Base(in.AfterPhotoPath)))
	passed := h.Sum32()%2 == 0
	remarks := "room looks cleaner"
	if !passed {
		remarks = "not convinced, try again"
	}
	return &oraclerpc.JudgeCleaningResponse{Passed: passed, Confidence: 0.5, Remarks: remarks}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: oraclerpc.HandshakeConfig,
		Plugins:         oraclerpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
