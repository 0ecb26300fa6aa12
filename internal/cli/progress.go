package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// cliProgressReporter renders scan progress as a progress bar.
type cliProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// newCLIProgressReporter creates a progress reporter for the index command.
func newCLIProgressReporter(quiet bool) *cliProgressReporter {
	return &cliProgressReporter{quiet: quiet}
}

func (c *cliProgressReporter) OnScanStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *cliProgressReporter) OnFileScanned(filePath string) {
	if c.quiet || c.bar == nil {
		return
	}
	c.bar.Add(1)
}

func (c *cliProgressReporter) OnScanComplete(records int, elapsed time.Duration) {
	if c.quiet {
		return
	}
	fmt.Printf("Indexed %d component files in %v\n", records, elapsed.Round(time.Millisecond))
}
