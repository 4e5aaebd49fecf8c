package leaderboard

import (
	"testing"

	module "github.com/louisbranch/xpboard/internal/services/web/module"
	"github.com/louisbranch/xpboard/internal/services/web/routepath"
)

var _ module.Module = Module{}
var _ module.HealthReporter = Module{}

func TestModuleIDAndMount(t *testing.T) {
	t.Parallel()

	m := NewWithGateway(&fakeGateway{}, Config{})
	if m.ID() != "leaderboard" {
		t.Fatalf("ID() = %q", m.ID())
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.LeaderboardPrefix || mount.Handler == nil {
		t.Fatalf("mount = %+v", mount)
	}
}

func TestModuleHealthy(t *testing.T) {
	t.Parallel()

	if New(Config{}).Healthy() {
		t.Fatalf("module without gateway reported healthy")
	}
	if NewWithGateway(NewHTTPGateway(nil), Config{}).Healthy() {
		t.Fatalf("unavailable gateway reported healthy")
	}
	if !NewWithGateway(NewHTTPGateway(&fakeGateway{}), Config{}).Healthy() {
		t.Fatalf("configured gateway reported unhealthy")
	}
}
