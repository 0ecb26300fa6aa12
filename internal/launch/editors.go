package launch

import (
	"fmt"
	"runtime"
)

// editorCommand describes how to reach one editor: the CLI binaries that
// accept a precise position, and the application to open with the file path
// only when no CLI is on the execution path.
type editorCommand struct {
	id       string
	cliNames []string
	cliArgs  func(t Target) []string
	appName  string // macOS application name for `open -a`
}

// knownEditors is the fixed registry of supported editors.
var knownEditors = []editorCommand{
	{
		id:       "vscode",
		cliNames: []string{"code"},
		cliArgs:  func(t Target) []string { return []string{"--goto", t.String()} },
		appName:  "Visual Studio Code",
	},
	{
		id:       "vscode-insiders",
		cliNames: []string{"code-insiders"},
		cliArgs:  func(t Target) []string { return []string{"--goto", t.String()} },
		appName:  "Visual Studio Code - Insiders",
	},
	{
		id:       "sublime",
		cliNames: []string{"subl"},
		cliArgs:  func(t Target) []string { return []string{t.String()} },
		appName:  "Sublime Text",
	},
	{
		id:       "idea",
		cliNames: []string{"idea", "webstorm"},
		cliArgs: func(t Target) []string {
			return []string{"--line", fmt.Sprintf("%d", t.Line), t.FilePath}
		},
		appName: "IntelliJ IDEA",
	},
	{
		id:       "zed",
		cliNames: []string{"zed"},
		cliArgs:  func(t Target) []string { return []string{t.String()} },
		appName:  "Zed",
	},
}

// editorByID looks up an editor command by its configuration id.
func editorByID(id string) (editorCommand, bool) {
	for _, ec := range knownEditors {
		if ec.id == id {
			return ec, true
		}
	}
	return editorCommand{}, false
}

// strategies expands an editor into its two launch tiers: CLI with precise
// position first, app-open by file path second.
func (ec editorCommand) strategies() []strategy {
	cli := strategy{
		name: ec.id + " cli",
		launch: func(r Runner, t Target) error {
			for _, name := range ec.cliNames {
				bin, err := r.LookPath(name)
				if err != nil {
					continue
				}
				return r.Start(bin, ec.cliArgs(t)...)
			}
			return fmt.Errorf("no %s cli on path", ec.id)
		},
	}

	app := strategy{
		name: ec.id + " app",
		launch: func(r Runner, t Target) error {
			// Without the editor CLI the containing application is opened
			// by file path only, without a precise line.
			if runtime.GOOS == "darwin" {
				return r.Start("open", "-a", ec.appName, t.FilePath)
			}
			opener, err := r.LookPath("xdg-open")
			if err != nil {
				return fmt.Errorf("no xdg-open on path: %w", err)
			}
			return r.Start(opener, t.FilePath)
		},
	}

	return []strategy{cli, app}
}
