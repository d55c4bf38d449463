// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report runs Java report generators against SQL config files and
// renders the reply sent back to the requester.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/tradedesk/pkg/types"
)

// Status is the outcome of one report run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusTimedOut  Status = "timed_out"
)

// Request names the generator class and config file for one run.
// OutputDir overrides the configured report directory when set.
type Request struct {
	Class      string `json:"java_class" jsonschema:"fully qualified Java class to run"`
	ConfigFile string `json:"config_file" jsonschema:"path to the SQL config file passed to the class"`
	OutputDir  string `json:"output_directory,omitempty" jsonschema:"directory for the generated report"`
}

// RunResult describes a finished run.
type RunResult struct {
	Status     Status   `json:"status" yaml:"status"`
	JavaClass  string   `json:"java_class" yaml:"java_class"`
	ConfigFile string   `json:"config_file" yaml:"config_file"`
	OutputDir  string   `json:"output_directory" yaml:"output_directory"`
	ReportPath string   `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	Command    []string `json:"command" yaml:"command"`
	Duration   string   `json:"execution_time" yaml:"execution_time"`
	Output     string   `json:"output,omitempty" yaml:"output,omitempty"`
	Errors     []string `json:"errors" yaml:"errors"`
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Runner launches report generators as child processes.
type Runner struct {
	cfg    types.ReportConfig
	exec   executor
	logger *zap.Logger
	now    func() time.Time
}

// NewRunner returns a Runner using the system java binary. A nil logger
// discards output.
func NewRunner(cfg types.ReportConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, exec: &osExecutor{}, logger: logger, now: time.Now}
}

// ReportPath returns the file a run of class against configFile at t
// writes into dir.
func ReportPath(dir, class, configFile string, t time.Time) string {
	simple := class[strings.LastIndex(class, ".")+1:]
	stem := strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s.csv", simple, stem, t.Format("20060102-150405")))
}

func (r *Runner) args(class, configFile, reportPath string) []string {
	var args []string
	if r.cfg.Classpath != "" {
		args = append(args, "-cp", r.cfg.Classpath)
	}
	return append(args, class, configFile, reportPath)
}

// Run executes req. Invalid requests and a missing java binary return an
// error; a process that starts and then fails or times out is reported
// through the result's Status and Errors.
func (r *Runner) Run(ctx context.Context, req Request) (RunResult, error) {
	class := strings.TrimSpace(req.Class)
	if class == "" {
		return RunResult{}, errors.New("java class is required")
	}
	if req.ConfigFile == "" {
		return RunResult{}, errors.New("config file is required")
	}
	if _, err := os.Stat(req.ConfigFile); err != nil {
		return RunResult{}, fmt.Errorf("config file: %w", err)
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = r.cfg.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return RunResult{}, fmt.Errorf("creating output directory: %w", err)
	}

	bin, err := r.exec.LookPath(r.cfg.JavaBin)
	if err != nil {
		return RunResult{}, fmt.Errorf("java binary %q not found: %w", r.cfg.JavaBin, err)
	}

	start := r.now()
	reportPath := ReportPath(outDir, class, req.ConfigFile, start)
	args := r.args(class, req.ConfigFile, reportPath)
	res := RunResult{
		JavaClass:  class,
		ConfigFile: req.ConfigFile,
		OutputDir:  outDir,
		Command:    append([]string{bin}, args...),
		Errors:     []string{},
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	r.logger.Info("running report", zap.String("class", class), zap.String("config", req.ConfigFile))
	var stdout, stderr bytes.Buffer
	runErr := r.exec.Run(ctx, bin, args, &stdout, &stderr)
	res.Duration = r.now().Sub(start).Round(time.Millisecond).String()
	res.Output = strings.TrimSpace(stdout.String())
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		res.Errors = append(res.Errors, msg)
	}

	switch {
	case runErr == nil:
		res.Status = StatusSucceeded
		res.ReportPath = reportPath
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Status = StatusTimedOut
		res.Errors = append(res.Errors, fmt.Sprintf("timed out after %s", r.cfg.Timeout))
	default:
		res.Status = StatusFailed
		res.Errors = append(res.Errors, runErr.Error())
	}

	r.logger.Info("report finished",
		zap.String("class", class),
		zap.String("status", string(res.Status)),
		zap.String("duration", res.Duration))
	return res, nil
}
