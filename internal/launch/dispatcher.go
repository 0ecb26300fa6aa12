// Package launch opens a resolved source location in an external editor.
// The editor-resolution chain is a prioritized list of launch strategies:
// environment override, then the preferred editor, then the fallback, each
// editor tried CLI-first with an app-open second tier.
package launch

import (
	"fmt"
	"log"
	"strings"

	"github.com/srcjump/srcjump/internal/config"
)

// Target is a resolved location to open. Line and Column default to 1.
type Target struct {
	FilePath string
	Line     int
	Column   int
}

// normalize clamps line and column to ≥1.
func (t Target) normalize() Target {
	if t.Line < 1 {
		t.Line = 1
	}
	if t.Column < 1 {
		t.Column = 1
	}
	return t
}

// String renders the target in the path:line:column syntax most editor
// CLIs accept.
func (t Target) String() string {
	return fmt.Sprintf("%s:%d:%d", t.FilePath, t.Line, t.Column)
}

// strategy is one capability-tagged launch variant in the chain.
type strategy struct {
	name   string
	launch func(r Runner, t Target) error
}

// Dispatcher walks the strategy chain until a launch succeeds.
type Dispatcher struct {
	runner   Runner
	override string
	chain    []editorCommand
}

// NewDispatcher builds a dispatcher from editor configuration. Unknown
// editor ids are dropped from the chain with a warning rather than failing
// construction.
func NewDispatcher(cfg config.EditorConfig, runner Runner) *Dispatcher {
	if runner == nil {
		runner = NewExecRunner()
	}

	d := &Dispatcher{
		runner:   runner,
		override: strings.TrimSpace(cfg.OverrideCommand),
	}

	for _, id := range []string{cfg.Preferred, cfg.Fallback} {
		if id == "" {
			continue
		}
		ec, ok := editorByID(id)
		if !ok {
			log.Printf("Warning: unknown editor %q, skipping", id)
			continue
		}
		d.chain = append(d.chain, ec)
	}

	return d
}

// Open invokes the first strategy that launches successfully. The spawned
// editor process is detached; Open never waits on it. When every strategy
// fails the chain is reported as an error, with no retry beyond it.
func (d *Dispatcher) Open(t Target) error {
	t = t.normalize()
	if t.FilePath == "" {
		return fmt.Errorf("open target has no file path")
	}

	strategies := d.strategies()
	if len(strategies) == 0 {
		return fmt.Errorf("no editor configured")
	}

	var attempts []string
	for _, s := range strategies {
		if err := s.launch(d.runner, t); err != nil {
			log.Printf("Editor launch via %s failed: %v", s.name, err)
			attempts = append(attempts, s.name)
			continue
		}
		return nil
	}

	return fmt.Errorf("all editor launch attempts failed: %s", strings.Join(attempts, ", "))
}

// strategies assembles the ordered chain for this dispatcher.
func (d *Dispatcher) strategies() []strategy {
	var chain []strategy

	if d.override != "" {
		override := d.override
		chain = append(chain, strategy{
			name: "override command",
			launch: func(r Runner, t Target) error {
				fields := strings.Fields(override)
				args := append(fields[1:], t.String())
				return r.Start(fields[0], args...)
			},
		})
	}

	for _, ec := range d.chain {
		chain = append(chain, ec.strategies()...)
	}

	return chain
}
