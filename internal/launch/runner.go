package launch

import "os/exec"

// Runner abstracts process spawning so the dispatcher chain can be tested
// without launching real editors.
type Runner interface {
	// LookPath resolves a binary name against the execution path.
	LookPath(file string) (string, error)

	// Start spawns a detached process and returns once it has started.
	// The dispatcher never waits for or depends on the process lifetime.
	Start(name string, args ...string) error
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

// NewExecRunner returns the production process runner.
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = detachAttr()
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background so it never zombies; the result is
	// irrelevant to the dispatcher.
	go cmd.Wait()
	return nil
}
