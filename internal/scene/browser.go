package scene

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// WriteDocument renders a document to the given path.
func WriteDocument(r Renderer, doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.Render(doc, f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// OpenInViewer opens a rendered document in the default browser. The command
// is fire-and-forget: a missing opener is reported but never fatal.
func OpenInViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
