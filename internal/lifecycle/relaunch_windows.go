//go:build windows

package lifecycle

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Relaunch starts a fresh, elevated instance of the current binary
// through PowerShell and returns once the launch is handed off. The
// UAC prompt appears on the user's desktop; declining it simply means
// no new instance starts.
func Relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	script := fmt.Sprintf("Start-Process -FilePath %s -Verb RunAs", psQuote(exe))
	if len(os.Args) > 1 {
		quoted := make([]string, 0, len(os.Args)-1)
		for _, arg := range os.Args[1:] {
			quoted = append(quoted, psQuote(arg))
		}
		script = fmt.Sprintf("Start-Process -FilePath %s -ArgumentList %s -Verb RunAs",
			psQuote(exe), strings.Join(quoted, ","))
	}

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	return cmd.Start()
}

// psQuote wraps a value in PowerShell single quotes, doubling any
// embedded quote characters
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
