package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	impact "github.com/gnta-research/tourism-impact"
	"github.com/gnta-research/tourism-impact/calendar"
	"github.com/gnta-research/tourism-impact/ingest"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/pkg/profile"
)

const monthLayout = "2006-01"

type config struct {
	arrivalsPath     string
	transactionsPath string
	reportPath       string
	summaryPath      string
	validationStart  time.Time
	pandemicStart    time.Time
	samples          int
	seed             uint64
	intervalLevel    float64
	winsorize        bool
	holidays         bool
	cpuProfile       bool
}

type summary struct {
	Arrivals     *impact.ArrivalsResult     `json:"arrivals"`
	Transactions *impact.TransactionsResult `json:"transactions,omitempty"`
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseConfig(args []string) (*config, error) {
	// a .env file can preload any of the TOURISM_* variables
	_ = godotenv.Load()

	defOpt := impact.NewDefaultOptions()

	fs := flag.NewFlagSet("tourism-impact", flag.ContinueOnError)
	arrivalsPath := fs.String("arrivals", envDefault("TOURISM_ARRIVALS_CSV", ""), "path to the monthly arrivals CSV")
	transactionsPath := fs.String("transactions", envDefault("TOURISM_TRANSACTIONS_CSV", ""), "path to the monthly transaction volume CSV, optional")
	reportPath := fs.String("report", envDefault("TOURISM_REPORT_HTML", ""), "path to write the HTML report, optional")
	summaryPath := fs.String("summary", envDefault("TOURISM_SUMMARY_JSON", ""), "path to write the JSON summary, defaults to stdout")
	validationStart := fs.String("validation-start", defOpt.ValidationStart.Format(monthLayout), "first month of the validation window, YYYY-MM")
	pandemicStart := fs.String("pandemic-start", defOpt.PandemicStart.Format(monthLayout), "first month of the pandemic window, YYYY-MM")
	samples := fs.Int("samples", defOpt.Samples, "number of simulated forecast trajectories")
	seed := fs.Uint64("seed", defOpt.Seed, "random seed for trajectory simulation")
	intervalLevel := fs.Float64("interval", defOpt.IntervalLevel, "central credible-interval mass")
	winsorize := fs.Bool("winsorize", false, "clamp training outliers before fitting")
	holidays := fs.Bool("holidays", false, "add the Georgian public-holiday count as a regressor")
	cpuProfile := fs.Bool("cpuprofile", false, "write a CPU profile")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *arrivalsPath == "" {
		return nil, errors.New("arrivals CSV path is required, set -arrivals or TOURISM_ARRIVALS_CSV")
	}

	vs, err := time.Parse(monthLayout, *validationStart)
	if err != nil {
		return nil, fmt.Errorf("validation-start, %w", err)
	}
	ps, err := time.Parse(monthLayout, *pandemicStart)
	if err != nil {
		return nil, fmt.Errorf("pandemic-start, %w", err)
	}

	return &config{
		arrivalsPath:     *arrivalsPath,
		transactionsPath: *transactionsPath,
		reportPath:       *reportPath,
		summaryPath:      *summaryPath,
		validationStart:  vs,
		pandemicStart:    ps,
		samples:          *samples,
		seed:             *seed,
		intervalLevel:    *intervalLevel,
		winsorize:        *winsorize,
		holidays:         *holidays,
		cpuProfile:       *cpuProfile,
	}, nil
}

func run(cfg *config, logger *slog.Logger) error {
	opt := impact.NewDefaultOptions()
	opt.ValidationStart = cfg.validationStart
	opt.PandemicStart = cfg.pandemicStart
	opt.Samples = cfg.samples
	opt.Seed = cfg.seed
	opt.IntervalLevel = cfg.intervalLevel
	if cfg.winsorize {
		opt.Outliers = impact.NewOutlierOptions()
	}
	if cfg.holidays {
		hol := calendar.NewGeorgian()
		for _, c := range opt.Candidates {
			c.Options.Holidays = hol
		}
	}

	arrivals, err := ingest.LoadArrivals(cfg.arrivalsPath)
	if err != nil {
		return fmt.Errorf("load arrivals, %w", err)
	}
	logger.Info("loaded arrivals",
		"months", arrivals.Len(),
		"start", arrivals.Start().Format(monthLayout),
		"end", arrivals.End().Format(monthLayout))

	arrRes, err := impact.EstimateArrivalsLoss(arrivals, opt)
	if err != nil {
		return fmt.Errorf("arrivals pipeline, %w", err)
	}
	logger.Info("arrivals loss estimated",
		"model", arrRes.Selection.Chosen,
		"total_median", arrRes.Loss.Total.Median,
		"total_lower", arrRes.Loss.Total.Lower,
		"total_upper", arrRes.Loss.Total.Upper)

	out := &summary{Arrivals: arrRes}

	if cfg.transactionsPath != "" {
		volumes, err := ingest.LoadTransactions(cfg.transactionsPath)
		if err != nil {
			return fmt.Errorf("load transactions, %w", err)
		}
		logger.Info("loaded transaction volumes",
			"months", volumes.Len(),
			"start", volumes.Start().Format(monthLayout),
			"end", volumes.End().Format(monthLayout))

		txnRes, err := impact.EstimateTransactionsLoss(volumes, arrivals, arrRes, opt)
		if err != nil {
			return fmt.Errorf("transactions pipeline, %w", err)
		}
		logger.Info("transactions loss estimated",
			"slope", txnRes.Slope,
			"r_squared", txnRes.R2,
			"total", txnRes.Loss.Total)
		out.Transactions = txnRes
	}

	if cfg.reportPath != "" {
		if err := impact.RenderReport(cfg.reportPath, arrivals, arrRes, out.Transactions, opt); err != nil {
			return fmt.Errorf("render report, %w", err)
		}
		logger.Info("wrote report", "path", cfg.reportPath)
	}

	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary, %w", err)
	}
	if cfg.summaryPath == "" {
		fmt.Println(string(buf))
		return nil
	}
	if err := os.WriteFile(cfg.summaryPath, buf, 0o644); err != nil {
		return fmt.Errorf("write summary, %w", err)
	}
	logger.Info("wrote summary", "path", cfg.summaryPath)
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if cfg.cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
