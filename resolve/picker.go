package resolve

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/mattsolo1/nexus/nexuserr"
)

// FuzzyPicker shells out to an interactive fuzzy-finder on PATH, feeding
// candidates on stdin and reading the selected line from stdout.
type FuzzyPicker struct {
	// Binary is the fuzzy-finder executable name, overridable for tests.
	Binary string
}

// NewFuzzyPicker returns a FuzzyPicker backed by fzf.
func NewFuzzyPicker() *FuzzyPicker {
	return &FuzzyPicker{Binary: "fzf"}
}

// CheckAvailable verifies the fuzzy-finder is present on PATH, per the
// CLI-init dependency check.
func (p *FuzzyPicker) CheckAvailable() error {
	if _, err := exec.LookPath(p.Binary); err != nil {
		return nexuserr.MissingDependency(p.Binary)
	}
	return nil
}

// Pick implements resolve.Picker.
func (p *FuzzyPicker) Pick(ctx context.Context, candidates []string) (string, error) {
	cmd := exec.CommandContext(ctx, p.Binary)
	cmd.Stdin = strings.NewReader(strings.Join(candidates, "\n") + "\n")
	cmd.Stderr = os.Stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}
