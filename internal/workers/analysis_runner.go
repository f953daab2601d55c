package workers

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"hera_backend/internal/jobs"
	"hera_backend/internal/logger"
	"hera_backend/internal/models"
)

const (
	tickerPlaceholder = "{ticker}"
	stderrTailLength  = 500
)

// AnalysisRunner starts the external analysis pipeline for a ticker. Start
// returns once the job is launched; completion is reported to the job store.
type AnalysisRunner interface {
	Start(ctx context.Context, ticker, jobID string) error
}

// ExecRunner runs the pipeline as a local subprocess.
type ExecRunner struct {
	command []string
	workDir string
	timeout time.Duration
	store   jobs.Store
	wg      sync.WaitGroup
}

func NewExecRunner(command []string, workDir string, timeout time.Duration, store jobs.Store) *ExecRunner {
	return &ExecRunner{
		command: command,
		workDir: workDir,
		timeout: timeout,
		store:   store,
	}
}

func (r *ExecRunner) Start(ctx context.Context, ticker, jobID string) error {
	if len(r.command) == 0 {
		return errors.New("analysis command is empty")
	}

	args := make([]string, len(r.command))
	for i, arg := range r.command {
		args[i] = strings.ReplaceAll(arg, tickerPlaceholder, ticker)
	}

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)
	cmd.Dir = r.workDir
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		cancel()
		r.finish(runCtx, ticker, jobID, models.JobStatusError, err.Error())
		return fmt.Errorf("start analysis for %s: %w", ticker, err)
	}

	logger.WorkerLog("analysis-runner", "start", nil, "ticker", ticker, "job_id", jobID, "pid", cmd.Process.Pid)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		err := cmd.Wait()
		if err == nil {
			r.finish(runCtx, ticker, jobID, models.JobStatusComplete, "")
			logger.WorkerLog("analysis-runner", "complete", nil, "ticker", ticker, "job_id", jobID)
			return
		}

		message := tail(stderr.String(), stderrTailLength)
		if message == "" {
			message = exitMessage(err, runCtx.Err())
		}
		r.finish(runCtx, ticker, jobID, models.JobStatusError, message)
		logger.WorkerLog("analysis-runner", "complete", err, "ticker", ticker, "job_id", jobID)
	}()
	return nil
}

// Wait blocks until every launched subprocess has exited.
func (r *ExecRunner) Wait() {
	r.wg.Wait()
}

func (r *ExecRunner) finish(ctx context.Context, ticker, jobID string, status models.JobStatus, message string) {
	// The run context may be past its deadline already.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := r.store.Finish(storeCtx, ticker, jobID, status, message); err != nil {
		logger.WorkerLog("analysis-runner", "record status", err, "ticker", ticker, "job_id", jobID)
	}
}

func exitMessage(err, ctxErr error) string {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return "Analysis timed out"
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("Process exited with code %d", exitErr.ExitCode())
	}
	return err.Error()
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
