package config_test

import (
	"runtime"
	"testing"

	"github.com/acgithub1138/drillscore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DBPath, convey.ShouldEqual, "drillscore.db")
			convey.So(cfg.SuggestURL, convey.ShouldBeEmpty)
			convey.So(cfg.SuggestTimeoutMS, convey.ShouldEqual, 5_000)
			convey.So(cfg.ScanConcurrency, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
		})
	})
}
