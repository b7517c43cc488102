package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"go.uber.org/fx"

	"github.com/roach88/rubico/internal/config"
	"github.com/roach88/rubico/internal/state"
	"github.com/roach88/rubico/internal/store"
	"github.com/roach88/rubico/internal/testutil"
)

// testCLI runs commands against one temp database with deterministic ids
// and timestamps shared across invocations.
type testCLI struct {
	dbPath    string
	clock     *testutil.StepClock
	fxOptions []fx.Option
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	recIDs := testutil.NewSeqIDs("rec")
	itemIDs := testutil.NewSeqIDs("item")
	return &testCLI{
		dbPath: filepath.Join(t.TempDir(), "cli.db"),
		clock:  testutil.NewStepClock(),
		fxOptions: []fx.Option{
			fx.Supply([]store.Option{
				store.WithClock(testutil.NewStepClock()),
				store.WithIDFunc(recIDs.Next),
			}),
			fx.Supply([]state.Option{
				state.WithIDFunc(itemIDs.Next),
			}),
		},
	}
}

// run executes one command line and returns its stdout.
func (c *testCLI) run(args ...string) (string, error) {
	e := &env{
		opts: &RootOptions{},
		loadConfig: func() (*config.Config, error) {
			return &config.Config{DBPath: c.dbPath, LogLevel: "error", BusyTimeoutMS: 1000}, nil
		},
		clock:     c.clock,
		fxOptions: c.fxOptions,
	}
	cmd := newRootCommand(e)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// seedDemo loads testdata/demo.yaml: customers rec-0001 (Ada) and rec-0002
// (Grace), invoices rec-0003 (Ada, paid) and rec-0004 (Grace, draft).
func (c *testCLI) seedDemo(t *testing.T) {
	t.Helper()
	out, err := c.run("seed", "testdata/demo.yaml")
	if err != nil {
		t.Fatalf("seed failed: %v\n%s", err, out)
	}
}
