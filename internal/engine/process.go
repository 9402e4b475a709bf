package engine

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Scanner buffer sizes; engine lines can get long with verbose formats
const (
	scanBufferInitial = 64 * 1024
	scanBufferMax     = 1024 * 1024
)

// ExitStatus describes how the external process ended
type ExitStatus struct {
	// Code is the process exit code, -1 when killed by signal or unknown
	Code int

	// Err is the wait error, nil on a clean zero exit
	Err error
}

// Process is a handle on one running external engine process
type Process interface {
	// Lines streams stdout and stderr merged line by line. Order is
	// preserved within each stream but not across the two. The channel is
	// closed when both streams are drained.
	Lines() <-chan string

	// Done delivers the exit status once, after Lines is closed
	Done() <-chan ExitStatus

	// Kill signals the process to terminate. It is advisory and tolerates
	// races with natural exit and repeated calls.
	Kill() error
}

type handle struct {
	cmd   *exec.Cmd
	lines chan string
	done  chan ExitStatus

	killOnce sync.Once
	killErr  error
}

// Spawn starts exactly one external engine process and begins consuming its
// output. A non-nil error means the process never started.
func Spawn(ctx context.Context, binPath string, args []string) (Process, error) {
	cmd := exec.CommandContext(ctx, binPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start %s", filepath.Base(binPath))
	}

	h := &handle{
		cmd:   cmd,
		lines: make(chan string, 64),
		done:  make(chan ExitStatus, 1),
	}

	var g errgroup.Group
	g.Go(func() error { h.scan(stdout); return nil })
	g.Go(func() error { h.scan(stderr); return nil })

	go func() {
		// Both pipes must be drained before Wait closes them.
		_ = g.Wait()
		close(h.lines)

		st := ExitStatus{}
		if err := cmd.Wait(); err != nil {
			st.Code = -1
			st.Err = err
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				st.Code = exitErr.ExitCode()
			}
		}
		h.done <- st
	}()

	return h, nil
}

func (h *handle) Lines() <-chan string { return h.lines }

func (h *handle) Done() <-chan ExitStatus { return h.done }

func (h *handle) Kill() error {
	h.killOnce.Do(func() {
		if h.cmd.Process == nil {
			return
		}
		if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			h.killErr = err
		}
	})
	return h.killErr
}

func (h *handle) scan(r io.Reader) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, scanBufferInitial), scanBufferMax)
	for sc.Scan() {
		h.lines <- sc.Text()
	}
}
