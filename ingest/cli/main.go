package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/briandowns/spinner"
	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/config"
	"github.com/candidatos-info/civic-enrichers/filestorage"
	"github.com/candidatos-info/civic-enrichers/ingest"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	"github.com/candidatos-info/civic-enrichers/jurisdiction/registry"
	"github.com/candidatos-info/civic-enrichers/logger"
	"github.com/candidatos-info/civic-enrichers/processor"
	"github.com/candidatos-info/civic-enrichers/store"
	"github.com/cheggaaa/pb"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    *config.Config
	log    *logger.Logger
	store  *store.Store
	runner *ingest.Runner
}

func main() {
	var envFile string
	a := &app{}
	root := &cobra.Command{
		Use:           "ingest",
		Short:         "Ingest candidate filings into the civic database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "env file loaded before reading the environment")
	root.AddCommand(a.runCmd(), a.manifestCmd(), a.migrateCmd(), a.ballotCmd(), a.resultCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) setup(envFile string) error {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return fmt.Errorf("failed to create logger, error %w", err)
	}
	cfg, err := config.Load(envFile, log)
	if err != nil {
		return err
	}
	s, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.store = cfg, log, s
	storage := filestorage.Opener{AWS: filestorage.AWSConfig{
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Region:          cfg.AWSRegion,
	}}
	a.runner = ingest.New(s, processor.New(log, cfg.Workers), storage, nil, log, ingest.Options{
		Archive:  cfg.ArchiveLocation,
		Attempts: cfg.Attempts,
	})
	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.log != nil {
		a.log.Sync()
	}
}

func (a *app) runCmd() *cobra.Command {
	var spec config.JobSpec
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest one filing file",
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := toJob(spec)
			if err != nil {
				return err
			}
			res, err := a.run(cmd.Context(), job)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}
	cmd.Flags().StringVar(&spec.Jurisdiction, "jurisdiction", "", fmt.Sprintf("jurisdiction key, one of %v (required)", registry.Keys()))
	cmd.Flags().IntVar(&spec.Cycle, "cycle", 0, "election cycle year (required)")
	cmd.Flags().StringVar(&spec.RaceType, "race-type", "General", "General or Primary")
	cmd.Flags().StringVar(&spec.Source, "source", "", "filing file: local path, gs://bucket/file or s3://bucket/file (required)")
	cmd.Flags().StringVar(&spec.ElectionDate, "election-date", "", "election day as YYYY-MM-DD, computed when empty")
	_ = cmd.MarkFlagRequired("jurisdiction")
	_ = cmd.MarkFlagRequired("cycle")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func (a *app) manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest [jobs.yaml]",
		Short: "Ingest every filing file listed in a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.LoadManifest(args[0])
			if err != nil {
				return err
			}
			jobs := make([]ingest.Job, 0, len(m.Jobs))
			for _, spec := range m.Jobs {
				job, err := toJob(spec)
				if err != nil {
					return err
				}
				jobs = append(jobs, job)
			}
			bar := pb.Full.Start(len(jobs))
			defer bar.Finish()
			for _, job := range jobs {
				res, err := a.runner.Run(cmd.Context(), job)
				if err != nil {
					return fmt.Errorf("failed to ingest [%s], error %w", job.Source, err)
				}
				total := res.Summary.Total()
				a.log.Info("ingested filings", "source", job.Source, "rows", res.Rows, "skipped", len(res.Skipped), "created", total.Created, "updated", total.Updated)
				bar.Increment()
			}
			return nil
		},
	}
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.store.Migrate(cmd.Context())
		},
	}
}

func (a *app) ballotCmd() *cobra.Command {
	var key, districts string
	cmd := &cobra.Command{
		Use:   "ballot",
		Short: "List the offices on a voter's ballot",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := registry.Lookup(key)
			if err != nil {
				return err
			}
			var d jurisdiction.VoterDistricts
			if err := json.Unmarshal([]byte(districts), &d); err != nil {
				return fmt.Errorf("invalid districts [%s], error %w", districts, err)
			}
			offices, err := a.store.BallotOffices(cmd.Context(), j, d)
			if err != nil {
				return err
			}
			return printJSON(offices)
		},
	}
	cmd.Flags().StringVar(&key, "jurisdiction", "", "jurisdiction key (required)")
	cmd.Flags().StringVar(&districts, "districts", "{}", `voter districts as JSON, e.g. {"state": "CO", "congressional": "1"}`)
	_ = cmd.MarkFlagRequired("jurisdiction")
	return cmd
}

func (a *app) resultCmd() *cobra.Command {
	var race, politician string
	var votes int
	var winner bool
	cmd := &cobra.Command{
		Use:   "result",
		Short: "Record the votes of a candidate in a race",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.store.RecordResult(cmd.Context(), race, politician, votes, winner)
		},
	}
	cmd.Flags().StringVar(&race, "race", "", "race slug (required)")
	cmd.Flags().StringVar(&politician, "politician", "", "politician slug (required)")
	cmd.Flags().IntVar(&votes, "votes", 0, "votes received")
	cmd.Flags().BoolVar(&winner, "winner", false, "whether the candidate won")
	_ = cmd.MarkFlagRequired("race")
	_ = cmd.MarkFlagRequired("politician")
	return cmd
}

// run shows a spinner while a single job runs.
func (a *app) run(ctx context.Context, job ingest.Job) (*ingest.Result, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = fmt.Sprintf(" ingesting %s", job.Source)
	s.Start()
	defer s.Stop()
	return a.runner.Run(ctx, job)
}

func toJob(spec config.JobSpec) (ingest.Job, error) {
	raceType, ok := civic.ParseRaceType(spec.RaceType)
	if !ok {
		return ingest.Job{}, fmt.Errorf("invalid race type [%s]", spec.RaceType)
	}
	date, err := spec.Date()
	if err != nil {
		return ingest.Job{}, err
	}
	return ingest.Job{
		Jurisdiction: spec.Jurisdiction,
		Cycle:        spec.Cycle,
		RaceType:     raceType,
		Source:       spec.Source,
		ElectionDate: date,
	}, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
