package procexec

import (
	"context"
	"os"
	"os/exec"

	"github.com/catalystbuild/catalyst/internal/cbeerrors"
)

// Run execs argv[0] with argv[1:] as arguments, inheriting the caller's
// stdout/stderr. workingDir, if non-empty, overrides the child's
// working directory. env, if non-nil, extends (not replaces) the
// parent's environment, per spec §6.
//
// A non-zero exit is reported via exitCode, not err: only a failure to
// launch the process at all (missing binary, permission denied) is an
// error, tagged SubprocessSpawnFailed.
func Run(ctx context.Context, argv []string, workingDir string, env []string) (exitCode int, err error) {
	if len(argv) == 0 {
		return 0, cbeerrors.New(cbeerrors.SubprocessSpawnFailed, "empty argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if workingDir != "" {
		cmd.Dir = workingDir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if ok := asExitError(err, &exitErr); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, cbeerrors.Wrap(cbeerrors.SubprocessSpawnFailed, "exec "+argv[0], err)
	}
	return 0, nil
}

func asExitError(err error, target **exec.ExitError) bool {
	if ee, ok := err.(*exec.ExitError); ok {
		*target = ee
		return true
	}
	return false
}
