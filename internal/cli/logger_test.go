package cli

import (
	"testing"

	"github.com/rulelang/rulec/internal/testutil"
)

func TestNewLogger_VerboseEnablesDebugLevel(t *testing.T) {
	if l := newLogger("text", true); l == nil {
		t.Fatal("expected a non-nil logger")
	}
	if l := newLogger("json", false); l == nil {
		t.Fatal("expected a non-nil logger")
	}
}

// TestPackageLogger_RoutesThroughTestutil exercises the package-level
// logger var with the shared test logger helper, so CLI-level tests never
// spam stderr with debug output the way a real invocation's newLogger
// would.
func TestPackageLogger_RoutesThroughTestutil(t *testing.T) {
	prev := logger
	logger = testutil.NewTestLogger(t)
	defer func() { logger = prev }()

	logger.Debug("cli logger wired through testutil", "component", "cli")
}
