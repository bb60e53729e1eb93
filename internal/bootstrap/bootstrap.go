package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	areainadapter "scrub/internal/modules/area/adapter/in"
	areaoutadapter "scrub/internal/modules/area/adapter/out"
	areaservice "scrub/internal/modules/area/service"
	areausecase "scrub/internal/modules/area/usecase"
	economyinadapter "scrub/internal/modules/economy/adapter/in"
	economyoutadapter "scrub/internal/modules/economy/adapter/out"
	economyservice "scrub/internal/modules/economy/service"
	economyusecase "scrub/internal/modules/economy/usecase"
	oracleinadapter "scrub/internal/modules/oracle/adapter/in"
	oracleoutadapter "scrub/internal/modules/oracle/adapter/out"
	oracleservice "scrub/internal/modules/oracle/service"
	oracleusecase "scrub/internal/modules/oracle/usecase"
	sessioninadapter "scrub/internal/modules/session/adapter/in"
	sessionoutadapter "scrub/internal/modules/session/adapter/out"
	sessionservice "scrub/internal/modules/session/service"
	sessionusecase "scrub/internal/modules/session/usecase"
	verificationinadapter "scrub/internal/modules/verification/adapter/in"
	verificationoutadapter "scrub/internal/modules/verification/adapter/out"
	verificationservice "scrub/internal/modules/verification/service"
	verificationusecase "scrub/internal/modules/verification/usecase"
	"scrub/internal/platform/clock"
	"scrub/internal/platform/config"
	"scrub/internal/platform/id"
	"scrub/internal/platform/tx"
	uiapp "scrub/internal/ui/app"
)

type App struct {
	AreaCLI         areainadapter.CLIHandler
	SessionCLI      sessioninadapter.CLIHandler
	VerificationCLI verificationinadapter.CLIHandler
	EconomyCLI      economyinadapter.CLIHandler
	OracleCLI       oracleinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	if err := ensureDirs(cfg); err != nil {
		return nil, err
	}

	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	db, err := sessionoutadapter.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	txn := tx.NewSQLManager(db)

	areaStore, err := areaoutadapter.NewSQLiteAreaStore(db)
	if err != nil {
		return nil, fmt.Errorf("new area store: %w", err)
	}
	sessionStore, err := sessionoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	economyStore, err := economyoutadapter.NewSQLiteEconomyStore(db)
	if err != nil {
		return nil, fmt.Errorf("new economy store: %w", err)
	}

	areaUC := areausecase.NewInteractor(areaservice.NewAreaService(clk, ids, areaStore), areaStore, txn)

	economyUC := economyusecase.NewInteractor(economyservice.NewEconomyService(
		clk,
		economyStore.Streaks(),
		economyStore.Ledgers(),
		economyStore.Settings(),
		economyStore.Earnings(),
	), txn)

	oracleUC := oracleusecase.NewInteractor(oracleservice.NewOracleService(
		oracleoutadapter.NewFileManifestStore(cfg.HomePath),
		oracleoutadapter.NewGRPCHost(),
	))

	photos := sessionoutadapter.NewFilePhotoStore(cfg.PhotosPath, clk)
	eventLog := sessionoutadapter.NewFileEventLog(cfg.EventLogPath, clk)
	economyGateway := sessionoutadapter.NewEconomyUsecaseGateway(economyUC)
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, cfg.AssetsPath, sessionStore),
		sessionStore,
		photos,
		sessionoutadapter.NewOracleTaskGenerator(oracleUC),
		eventLog,
		eventLog,
		sessionoutadapter.NewReportNoteStore(cfg.NotesPath),
		sessionoutadapter.NewAreaUsecaseGateway(areaUC),
		economyGateway,
		txn,
	)

	verificationUC := verificationusecase.NewInteractor(
		verificationservice.NewVerificationService(clk, sessionStore, economyGateway),
		sessionStore,
		verificationoutadapter.NewOracleJudge(oracleUC),
		photos,
		txn,
	)

	return &App{
		AreaCLI:         areainadapter.NewCLIHandler(areaUC),
		SessionCLI:      sessioninadapter.NewCLIHandler(sessionUC),
		VerificationCLI: verificationinadapter.NewCLIHandler(verificationUC),
		EconomyCLI:      economyinadapter.NewCLIHandler(economyUC),
		OracleCLI:       oracleinadapter.NewCLIHandler(oracleUC),
	}, nil
}

func ensureDirs(cfg config.Config) error {
	for _, dir := range []string{
		filepath.Dir(cfg.DBPath),
		cfg.PhotosPath,
		cfg.NotesPath,
		cfg.AssetsPath,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func RunTUI(homePath string, app *App) error {
	model := uiapp.NewModel(homePath, app.AreaCLI, app.SessionCLI, app.EconomyCLI, app.VerificationCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
