package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"hera_backend/internal/logger"
)

const inputsPlaceholder = "{inputs}"

// ResolvedInput is one line of the resolver subprocess output.
type ResolvedInput struct {
	Input       string  `json:"input"`
	Ticker      *string `json:"ticker"`
	CompanyName *string `json:"company_name"`
}

// CommandResolver runs an external name-to-ticker resolver. The inputs are
// passed as one JSON array argument and a JSON array is read from stdout.
type CommandResolver struct {
	command []string
	workDir string
	timeout time.Duration
}

func NewCommandResolver(command []string, workDir string, timeout time.Duration) *CommandResolver {
	return &CommandResolver{command: command, workDir: workDir, timeout: timeout}
}

func (r *CommandResolver) Resolve(ctx context.Context, inputs []string) ([]ResolvedInput, error) {
	if len(r.command) == 0 {
		return nil, errors.New("resolve command is empty")
	}

	payload, err := json.Marshal(inputs)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, len(r.command)+1)
	substituted := false
	for _, arg := range r.command {
		if strings.Contains(arg, inputsPlaceholder) {
			arg = strings.ReplaceAll(arg, inputsPlaceholder, string(payload))
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, string(payload))
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)
	cmd.Dir = r.workDir
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		msg := tail(stderr.String(), stderrTailLength)
		if msg == "" {
			msg = exitMessage(err, runCtx.Err())
		}
		logger.WorkerLog("resolver", "run", err, "inputs", len(inputs), "stderr", msg)
		return nil, fmt.Errorf("resolver failed: %s", msg)
	}

	var out []ResolvedInput
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout.String())), &out); err != nil {
		return nil, fmt.Errorf("resolver returned invalid JSON: %w", err)
	}

	logger.WorkerLog("resolver", "run", nil, "inputs", len(inputs), "duration_ms", time.Since(start).Milliseconds())
	return out, nil
}
