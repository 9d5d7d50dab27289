package qcircuit

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given no config file", t, func() {
		cfg, err := LoadConfig("")
		So(err, ShouldBeNil)

		Convey("The defaults apply", func() {
			So(cfg.Seed, ShouldEqual, 0)
			So(cfg.Shots, ShouldEqual, 1024)
			So(cfg.Workers, ShouldEqual, runtime.NumCPU())
			So(cfg.Level(), ShouldEqual, log.InfoLevel)
			So(cfg.Source(), ShouldHaveSameTypeAs, RuntimeSource{})
		})
	})

	Convey("Given a config file", t, func() {
		path := filepath.Join(t.TempDir(), "qcircuit.yaml")
		So(os.WriteFile(path, []byte("seed: 7\nshots: 256\nworkers: 2\nlog_level: debug\n"), 0o644), ShouldBeNil)

		cfg, err := LoadConfig(path)
		So(err, ShouldBeNil)

		Convey("Its values override the defaults", func() {
			So(cfg.Seed, ShouldEqual, 7)
			So(cfg.Shots, ShouldEqual, 256)
			So(cfg.Workers, ShouldEqual, 2)
			So(cfg.Level(), ShouldEqual, log.DebugLevel)
		})

		Convey("A seeded config gives reproducible sources", func() {
			a, b := cfg.Source(), cfg.Source()
			for i := 0; i < 10; i++ {
				So(a.Float64(), ShouldEqual, b.Float64())
			}
		})
	})

	Convey("Given environment overrides", t, func() {
		t.Setenv("QCIRCUIT_SHOTS", "9")
		t.Setenv("QCIRCUIT_LOG_LEVEL", "warn")

		cfg, err := LoadConfig("")
		So(err, ShouldBeNil)
		So(cfg.Shots, ShouldEqual, 9)
		So(cfg.Level(), ShouldEqual, log.WarnLevel)
	})

	Convey("Given invalid values", t, func() {
		Convey("Zero shots are rejected", func() {
			t.Setenv("QCIRCUIT_SHOTS", "0")
			_, err := LoadConfig("")
			So(err, ShouldNotBeNil)
		})

		Convey("An unknown log level is rejected", func() {
			cfg := NewConfig()
			cfg.LogLevel = "loud"
			So(cfg.Validate(), ShouldNotBeNil)
			So(cfg.Level(), ShouldEqual, log.InfoLevel)
		})

		Convey("A missing file is an error", func() {
			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
