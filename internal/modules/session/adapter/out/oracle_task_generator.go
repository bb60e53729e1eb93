package out

import (
	"context"

	oracledto "scrub/internal/modules/oracle/dto"
	oraclein "scrub/internal/modules/oracle/port/in"
	sessionout "scrub/internal/modules/session/port/out"
)

// OracleTaskGenerator bridges the session lifecycle to whichever
// enabled oracle can produce task plans.
type OracleTaskGenerator struct {
	oracles oraclein.Usecase
}

func NewOracleTaskGenerator(oracles oraclein.Usecase) *OracleTaskGenerator {
	return &OracleTaskGenerator{oracles: oracles}
}

func (g *OracleTaskGenerator) Generate(ctx context.Context, photoPath, persona, filterID string) (sessionout.Generation, error) {
	output, err := g.oracles.GenerateTasks(ctx, oracledto.GenerateInput{
		PhotoPath: photoPath,
		Persona:   persona,
		FilterID:  filterID,
	})
	if err != nil {
		return sessionout.Generation{}, err
	}
	generation := sessionout.Generation{ImagePath: output.VisionImagePath}
	for _, task := range output.Tasks {
		generation.Tasks = append(generation.Tasks, sessionout.GeneratedTask{
			Title:  task.Title,
			Detail: task.Detail,
			Points: task.Points,
		})
	}
	return generation, nil
}

var _ sessionout.TaskGenerator = (*OracleTaskGenerator)(nil)
