package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scrub/internal/bootstrap"
	"scrub/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homePath string

	root := &cobra.Command{
		Use:           "scrub",
		Short:         "Cleaning session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homePath, "home", ".", "scrub home path")

	root.AddCommand(newTUICmd(&homePath))
	root.AddCommand(newAreaCmd(&homePath))
	root.AddCommand(newSessionCmd(&homePath))
	root.AddCommand(newTaskCmd(&homePath))
	root.AddCommand(newVerifyCmd(&homePath))
	root.AddCommand(newPointsCmd(&homePath))
	root.AddCommand(newStreakCmd(&homePath))
	root.AddCommand(newTargetCmd(&homePath))
	root.AddCommand(newOracleCmd(&homePath))
	return root
}

func loadApp(homePath string) (*bootstrap.App, error) {
	cfg, err := config.New(homePath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run scrub terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(*homePath, app)
		},
	}
}

func newAreaCmd(homePath *string) *cobra.Command {
	area := &cobra.Command{Use: "area", Short: "Manage cleaning areas"}

	var icon, color, persona string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.AreaCLI.Create(context.Background(), args[0], icon, color, persona)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "area added: %s (%s) persona=%s\n", out.Name, out.ID, out.Persona)
			return nil
		},
	}
	add.Flags().StringVar(&icon, "icon", "", "area icon")
	add.Flags().StringVar(&color, "color", "", "area color")
	add.Flags().StringVar(&persona, "persona", "", "persona: chef|drill|zen|sparkle")

	area.AddCommand(add)

	area.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered areas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			areas, err := app.AreaCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(areas) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no areas")
				return nil
			}
			for _, a := range areas {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.ID, a.Name, a.Persona)
			}
			return nil
		},
	})

	area.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an area and all its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.AreaCLI.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "area removed: %s\n", args[0])
			return nil
		},
	})
	return area
}

func newSessionCmd(homePath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Cleaning session lifecycle"}

	var areaID, photoPath string
	start := &cobra.Command{
		Use:   "start --area <id> --photo <path>",
		Short: "Scan a photo and start or extend a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(areaID) == "" {
				return fmt.Errorf("--area is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Start(context.Background(), areaID, photoPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s mode=%s tasks=%d vision=%s\n", out.SessionID, out.Mode, out.TaskCount, out.VisionImage)
			if out.Warning != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", out.Warning)
			}
			return nil
		},
	}
	start.Flags().StringVar(&areaID, "area", "", "area id")
	start.Flags().StringVar(&photoPath, "photo", "", "before photo path")

	var statusAreaID string
	status := &cobra.Command{
		Use:   "status --area <id>",
		Short: "Show the area's latest session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(statusAreaID) == "" {
				return fmt.Errorf("--area is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Status(context.Background(), statusAreaID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s completed=%t base=%d total=%.1f tier=%s outcome=%s\n",
				out.SessionID, out.Completed, out.BasePoints, out.TotalPoints, out.Tier, out.Outcome)
			for _, task := range out.Tasks {
				mark := " "
				if task.Completed {
					mark = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\t%s (%d pts)\n", mark, task.ID, task.Title, task.Points)
			}
			return nil
		},
	}
	status.Flags().StringVar(&statusAreaID, "area", "", "area id")

	session.AddCommand(start, status)
	return session
}

func newTaskCmd(homePath *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Task operations"}

	var areaID, taskID string
	done := &cobra.Command{
		Use:   "done --area <id> --task <id>",
		Short: "Mark a task completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(areaID) == "" || strings.TrimSpace(taskID) == "" {
				return fmt.Errorf("--area and --task are required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.CompleteTask(context.Background(), areaID, taskID)
			if err != nil {
				return err
			}
			if out.AlreadyDone {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task %s already done\n", out.TaskID)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task done: +%d pts base=%d total=%.1f\n", out.PointsEarned, out.BasePoints, out.TotalPoints)
			if out.SessionCompleted {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session completed, report: %s\n", out.ReportPath)
			}
			if out.Warning != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", out.Warning)
			}
			return nil
		},
	}
	done.Flags().StringVar(&areaID, "area", "", "area id")
	done.Flags().StringVar(&taskID, "task", "", "task id")

	task.AddCommand(done)
	return task
}

func newVerifyCmd(homePath *string) *cobra.Command {
	verify := &cobra.Command{Use: "verify", Short: "Verification ceremony"}

	var requestAreaID string
	request := &cobra.Command{
		Use:   "request --area <id>",
		Short: "Request verification on the latest session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(requestAreaID) == "" {
				return fmt.Errorf("--area is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.VerificationCLI.Request(context.Background(), requestAreaID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "verification requested: session=%s outcome=%s\n", out.SessionID, out.Outcome)
			return nil
		},
	}
	request.Flags().StringVar(&requestAreaID, "area", "", "area id")

	var submitAreaID, submitTier, afterPhoto string
	submit := &cobra.Command{
		Use:   "submit --area <id> --tier <blue|golden> --after <photo>",
		Short: "Submit an after photo for judging",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(submitAreaID) == "" {
				return fmt.Errorf("--area is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.VerificationCLI.Submit(context.Background(), submitAreaID, submitTier, afterPhoto)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "verdict: %s tier=%s total=%.1f (x%.2f, bonus %.1f)\n",
				out.Outcome, out.Tier, out.TotalPoints, out.BonusMultiplier, out.BonusDelta)
			return nil
		},
	}
	submit.Flags().StringVar(&submitAreaID, "area", "", "area id")
	submit.Flags().StringVar(&submitTier, "tier", "blue", "reward tier: none|blue|golden")
	submit.Flags().StringVar(&afterPhoto, "after", "", "after photo path")

	var resolveAreaID, resolveTier string
	var resolvePassed bool
	resolve := &cobra.Command{
		Use:   "resolve --area <id> --tier <tier> --passed",
		Short: "Settle a pending verification without judging",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(resolveAreaID) == "" {
				return fmt.Errorf("--area is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.VerificationCLI.Resolve(context.Background(), resolveAreaID, resolveTier, resolvePassed)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "resolved: %s tier=%s total=%.1f\n", out.Outcome, out.Tier, out.TotalPoints)
			return nil
		},
	}
	resolve.Flags().StringVar(&resolveAreaID, "area", "", "area id")
	resolve.Flags().StringVar(&resolveTier, "tier", "none", "reward tier: none|blue|golden")
	resolve.Flags().BoolVar(&resolvePassed, "passed", false, "resolve as passed")

	var skipAreaID string
	skip := &cobra.Command{
		Use:   "skip --area <id>",
		Short: "Skip the ceremony; totals collapse to base points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(skipAreaID) == "" {
				return fmt.Errorf("--area is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.VerificationCLI.Skip(context.Background(), skipAreaID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "verification skipped: session=%s total=%.1f\n", out.SessionID, out.TotalPoints)
			return nil
		},
	}
	skip.Flags().StringVar(&skipAreaID, "area", "", "area id")

	verify.AddCommand(request, submit, resolve, skip)

	verify.AddCommand(&cobra.Command{
		Use:   "eligibility",
		Short: "Show golden tier eligibility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.VerificationCLI.Eligibility(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "golden eligible=%t completed_today=%d target=%d", out.GoldenEligible, out.CompletedToday, out.DailyTarget)
			if out.HasPassedBefore {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " days_since_pass=%d", out.DaysSinceLastPassed)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	})
	return verify
}

func newPointsCmd(homePath *string) *cobra.Command {
	points := &cobra.Command{Use: "points", Short: "Points economy"}

	points.AddCommand(&cobra.Command{
		Use:   "balance",
		Short: "Show earned, spent, and available points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.EconomyCLI.Balance(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "earned=%.1f spent=%d available=%.1f\n", out.TotalEarned, out.SpentPoints, out.Available)
			for _, unlock := range out.Unlocked {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unlocked: %s (%d pts)\n", unlock.RewardID, unlock.Cost)
			}
			return nil
		},
	})

	var rewardID string
	var cost int
	spend := &cobra.Command{
		Use:   "spend --reward <id> --cost <points>",
		Short: "Spend points on a reward",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(rewardID) == "" {
				return fmt.Errorf("--reward is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.EconomyCLI.Spend(context.Background(), rewardID, cost)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unlocked %s, available=%.1f\n", rewardID, out.Available)
			return nil
		},
	}
	spend.Flags().StringVar(&rewardID, "reward", "", "reward id")
	spend.Flags().IntVar(&cost, "cost", 0, "reward cost in points")
	points.AddCommand(spend)

	return points
}

func newStreakCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the session streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.EconomyCLI.Streak(context.Background())
			if err != nil {
				return err
			}
			if out.LastSessionDay.IsZero() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions yet")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak=%d last=%s\n", out.Count, out.LastSessionDay.Format("2006-01-02"))
			return nil
		},
	}
}

func newTargetCmd(homePath *string) *cobra.Command {
	target := &cobra.Command{
		Use:   "target [count]",
		Short: "Show or set the daily session target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				current, err := app.EconomyCLI.DailyTarget(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daily target=%d\n", current)
				return nil
			}
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("target must be a number: %w", err)
			}
			if err := app.EconomyCLI.SetDailyTarget(context.Background(), count); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daily target set to %d\n", count)
			return nil
		},
	}
	return target
}

func newOracleCmd(homePath *string) *cobra.Command {
	oracle := &cobra.Command{Use: "oracle", Short: "Oracle plugin operations"}

	oracle.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List oracle manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			oracles, err := app.OracleCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(oracles) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no oracles configured")
				return nil
			}
			for _, o := range oracles {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s caps=%s\n", o.Name, o.Version, o.Enabled, o.Binary, strings.Join(o.Capabilities, ","))
			}
			return nil
		},
	})

	oracle.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate oracle checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			results, err := app.OracleCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no oracles configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})
	return oracle
}
