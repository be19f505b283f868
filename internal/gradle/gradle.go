// Package gradle drives the external Gradle build as a subprocess: the
// spoonObfuscate task producing obfuscated source variants, and the test
// task producing JUnit report documents on disk. The process semantics stay
// here; callers only consume the on-disk output.
package gradle

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const wrapperScript = "./gradlew"

// Runner invokes the Gradle wrapper of one project directory.
type Runner struct {
	ProjectDir string
	Timeout    time.Duration
}

// NewRunner builds a Runner for the project.
func NewRunner(projectDir string, timeout time.Duration) *Runner {
	return &Runner{ProjectDir: projectDir, Timeout: timeout}
}

// Obfuscate runs the spoonObfuscate task for one mode, writing the variant
// into outDir (project-relative):
// ./gradlew spoonObfuscate --args="src/main/java <outDir> <mode>".
func (r *Runner) Obfuscate(ctx context.Context, mode, outDir string) error {
	obfuscatorArgs := shellquote.Join("src/main/java", outDir, mode)
	return r.run(ctx, "spoonObfuscate", "--args="+obfuscatorArgs, "--console=plain")
}

// Test runs the test task. The task is expected to emit JUnit XML documents
// under the project's test-results directory as a side effect; a non-zero
// exit with test failures still leaves usable reports, so the caller gets
// the error and decides whether to keep going.
func (r *Runner) Test(ctx context.Context, extraArgs ...string) error {
	args := append([]string{"test", "--console=plain"}, extraArgs...)
	return r.run(ctx, args...)
}

func (r *Runner) run(ctx context.Context, args ...string) error {
	if err := r.ensureWrapper(); err != nil {
		return err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	log.Infof("Executing command: %s %s", wrapperScript, shellquote.Join(args...))
	cmd := exec.CommandContext(ctx, wrapperScript, args...)
	cmd.Dir = r.ProjectDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	log.Debugf("stdout:\n%s", stdout.String())
	if stderr.Len() > 0 {
		log.Warnf("stderr:\n%s", stderr.String())
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.Wrapf(ctx.Err(), "gradle %s timed out after %s", args[0], r.Timeout)
		}
		return errors.Wrapf(err, "gradle %s failed", args[0])
	}
	return nil
}

// ensureWrapper makes the wrapper script executable, as the driver does
// before the first invocation.
func (r *Runner) ensureWrapper() error {
	wrapper := filepath.Join(r.ProjectDir, "gradlew")
	info, err := os.Stat(wrapper)
	if err != nil {
		return errors.Wrap(err, "gradlew not found, make sure the project dir is a Gradle project root")
	}
	if info.Mode()&0100 == 0 {
		if err := os.Chmod(wrapper, 0755); err != nil {
			return errors.Wrap(err, "unable to make gradlew executable")
		}
	}
	return nil
}
