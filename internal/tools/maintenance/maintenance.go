// Package maintenance implements the exchange maintenance commands: printing
// the diagnostic report and recording a manual assignment.
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/intercambio/internal/platform/cmd"
	"github.com/louisbranch/intercambio/internal/platform/config"
	apperrors "github.com/louisbranch/intercambio/internal/platform/errors"
	"github.com/louisbranch/intercambio/internal/random"
	server "github.com/louisbranch/intercambio/internal/services/exchange/app"
	"github.com/louisbranch/intercambio/internal/services/exchange/domain"
	"github.com/louisbranch/intercambio/internal/services/exchange/service"
)

// defaultTimeout bounds a maintenance run when no positive timeout is set.
const defaultTimeout = time.Minute

// Commands.
const (
	CommandReport = "report"
	CommandRepair = "repair"
)

// Config holds maintenance command configuration.
type Config struct {
	Command      string
	Store        string
	DataPath     string
	Participants []string
	Timeout      time.Duration
	Giver        string
	Receiver     string
	Force        bool
	JSONOutput   bool
}

type envConfig struct {
	Store        string        `env:"INTERCAMBIO_STORE" envDefault:"json"`
	DataPath     string        `env:"INTERCAMBIO_DATA_PATH"`
	Participants []string      `env:"INTERCAMBIO_PARTICIPANTS" envSeparator:","`
	Timeout      time.Duration `env:"INTERCAMBIO_MAINTENANCE_TIMEOUT" envDefault:"1m"`
}

// ParseConfig parses environment and flags into a Config. The command name
// may come before or after the flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := entrypoint.ParseConfig(&envCfg); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Store:    envCfg.Store,
		DataPath: envCfg.DataPath,
		Timeout:  envCfg.Timeout,
	}

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cfg.Command = args[0]
		args = args[1:]
	}

	participants := strings.Join(envCfg.Participants, ",")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "storage backend: json or sqlite (default: INTERCAMBIO_STORE or json)")
	fs.StringVar(&cfg.DataPath, "data-path", cfg.DataPath, "state file or database path (default: INTERCAMBIO_DATA_PATH)")
	fs.StringVar(&participants, "participants", participants, "comma-separated participant names (default: family list)")
	fs.StringVar(&cfg.Giver, "giver", "", "giver name for repair")
	fs.StringVar(&cfg.Receiver, "receiver", "", "receiver name for repair")
	fs.BoolVar(&cfg.Force, "force", false, "allow repair to reuse a receiver already assigned to someone else")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output the report as JSON")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Command == "" {
		cfg.Command = fs.Arg(0)
	}
	cfg.Command = strings.ToLower(strings.TrimSpace(cfg.Command))
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.Participants = config.SplitList(participants)
	return cfg, nil
}

// Run executes the maintenance command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	switch cfg.Command {
	case CommandReport:
	case CommandRepair:
		if strings.TrimSpace(cfg.Giver) == "" || strings.TrimSpace(cfg.Receiver) == "" {
			return errors.New("repair requires -giver and -receiver")
		}
	case "":
		return fmt.Errorf("command is required (%s or %s)", CommandReport, CommandRepair)
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}

	svc, closeStore, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			fmt.Fprintf(errOut, "Error: close store: %v\n", closeErr)
		}
	}()
	return runWithService(ctx, cfg, svc, out, errOut)
}

// exchange is the part of the service the commands need.
type exchange interface {
	Report(ctx context.Context) (domain.Report, error)
	Repair(ctx context.Context, req service.RepairRequest) error
}

func runWithService(ctx context.Context, cfg Config, svc exchange, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	switch cfg.Command {
	case CommandRepair:
		req := service.RepairRequest{
			Giver:    strings.TrimSpace(cfg.Giver),
			Receiver: strings.TrimSpace(cfg.Receiver),
			Force:    cfg.Force,
		}
		if err := svc.Repair(ctx, req); err != nil {
			printRepairHint(errOut, err)
			return fmt.Errorf("repair %s -> %s: %w", req.Giver, req.Receiver, err)
		}
		fmt.Fprintf(out, "Assigned %s -> %s (force=%t)\n", req.Giver, req.Receiver, req.Force)
		return nil
	default:
		report, err := svc.Report(ctx)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		if cfg.JSONOutput {
			outputJSON(out, errOut, report)
			return nil
		}
		printReport(out, report)
		return nil
	}
}

// printRepairHint names the existing assignment that blocked a repair.
func printRepairHint(errOut io.Writer, err error) {
	metadata := apperrors.GetMetadata(err)
	switch apperrors.GetCode(err) {
	case apperrors.CodeReceiverTaken:
		fmt.Fprintf(errOut, "Hint: %s already gives to %s; pass -force to assign anyway\n", metadata["Giver"], metadata["Receiver"])
	case apperrors.CodeAlreadyAssigned:
		fmt.Fprintf(errOut, "Hint: %s already gives to %s\n", metadata["Giver"], metadata["Receiver"])
	}
}

func openService(cfg Config) (*service.Service, func() error, error) {
	roster, err := server.RosterFromNames(cfg.Participants)
	if err != nil {
		return nil, nil, fmt.Errorf("build roster: %w", err)
	}
	store, closeStore, err := server.OpenStore(cfg.Store, cfg.DataPath)
	if err != nil {
		return nil, nil, err
	}
	src, err := random.NewSeededRand()
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("seed random source: %w", err)
	}
	svc, err := service.New(store, roster, src)
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("build exchange service: %w", err)
	}
	return svc, closeStore, nil
}

type pairJSON struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

type reportJSON struct {
	Participants []string   `json:"participants"`
	Assignments  []pairJSON `json:"assignments"`
	Assigned     []string   `json:"assigned"`
	Pending      []string   `json:"pending"`
	Received     []string   `json:"received"`
	NotReceived  []string   `json:"not_received"`
	Duplicates   []string   `json:"duplicates"`
	Complete     bool       `json:"complete"`
}

func outputJSON(out io.Writer, errOut io.Writer, report domain.Report) {
	payload := reportJSON{
		Participants: nonNil(report.Participants),
		Assignments:  make([]pairJSON, 0, len(report.Assignments)),
		Assigned:     nonNil(report.Assigned),
		Pending:      nonNil(report.Pending),
		Received:     nonNil(report.Received),
		NotReceived:  nonNil(report.NotReceived),
		Duplicates:   nonNil(report.Duplicates),
		Complete:     report.Complete,
	}
	for _, pair := range report.Assignments {
		payload.Assignments = append(payload.Assignments, pairJSON{Giver: pair.Giver, Receiver: pair.Receiver})
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		fmt.Fprintf(errOut, "Error: encode report: %v\n", err)
	}
}

func printReport(out io.Writer, report domain.Report) {
	fmt.Fprintf(out, "Participants (%d): %s\n", len(report.Participants), joinOrNone(report.Participants))
	fmt.Fprintf(out, "Assigned (%d): %s\n", len(report.Assigned), joinOrNone(report.Assigned))
	fmt.Fprintf(out, "Pending (%d): %s\n", len(report.Pending), joinOrNone(report.Pending))
	fmt.Fprintf(out, "Received (%d): %s\n", len(report.Received), joinOrNone(report.Received))
	fmt.Fprintf(out, "Not received (%d): %s\n", len(report.NotReceived), joinOrNone(report.NotReceived))
	fmt.Fprintf(out, "Duplicates (%d): %s\n", len(report.Duplicates), joinOrNone(report.Duplicates))
	fmt.Fprintf(out, "Complete: %t\n", report.Complete)
	if len(report.Assignments) == 0 {
		return
	}
	fmt.Fprintln(out, "Assignments:")
	for _, pair := range report.Assignments {
		fmt.Fprintf(out, "  %s -> %s\n", pair.Giver, pair.Receiver)
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
