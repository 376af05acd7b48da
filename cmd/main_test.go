package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/acgithub1138/drillscore/internal/adapters/http/api"
	"github.com/acgithub1138/drillscore/internal/adapters/repository"
	app "github.com/acgithub1138/drillscore/internal/app"
	"github.com/acgithub1138/drillscore/internal/config"
	"github.com/acgithub1138/drillscore/pkg/logger"
	"github.com/acgithub1138/drillscore/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("DRILLSCORE_ADDR", ":8080")
			_ = os.Setenv("DRILLSCORE_DEDUPE_SIZE", "1000")
			_ = os.Setenv("DRILLSCORE_SCAN_CONCURRENCY", "4")
			defer func() {
				_ = os.Unsetenv("DRILLSCORE_ADDR")
				_ = os.Unsetenv("DRILLSCORE_DEDUPE_SIZE")
				_ = os.Unsetenv("DRILLSCORE_SCAN_CONCURRENCY")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 1000)
				convey.So(cfg.ScanConcurrency, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithDedupeSize(1000),
					app.WithScanConcurrency(4),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServiceEndToEnd(t *testing.T) {
	convey.Convey("Given a wired service behind the HTTP API", t, func() {
		_ = logger.Init()

		db, err := repository.Open(filepath.Join(t.TempDir(), "e2e.db"))
		convey.So(err, convey.ShouldBeNil)

		svc := app.New(
			app.WithRecordStore(repository.NewRecordStore(db)),
			app.WithMappingStore(repository.NewMappingStore(db)),
		)
		ctx := context.Background()
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		convey.Convey("When posting a record and fetching the report", func() {
			payload := map[string]any{
				"id":             "rec-1",
				"event_type":     "armed_regulation",
				"group_id":       "school-a",
				"competition_id": "comp-1",
				"date":           "2026-03-01",
				"score_sheet": map[string]any{
					"fields": map[string]any{
						"field_3_2.Routine_Marching": 88.5,
					},
				},
			}
			body, _ := json.Marshal(payload)

			resp, err := http.Post(srv.URL+"/records", "application/json", bytes.NewReader(body))
			convey.So(err, convey.ShouldBeNil)
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusAccepted)
			_ = resp.Body.Close()

			reportResp, err := http.Get(srv.URL + "/report?event_type=armed_regulation&group_id=school-a")
			convey.So(err, convey.ShouldBeNil)
			defer reportResp.Body.Close()
			convey.So(reportResp.StatusCode, convey.ShouldEqual, http.StatusOK)

			var report struct {
				Series []struct {
					Date   string             `json:"date"`
					Values map[string]float64 `json:"values"`
				} `json:"series"`
				Criteria []string `json:"criteria"`
			}
			convey.So(json.NewDecoder(reportResp.Body).Decode(&report), convey.ShouldBeNil)

			convey.Convey("Then the report carries the formatted criterion", func() {
				convey.So(report.Series, convey.ShouldHaveLength, 1)
				convey.So(report.Series[0].Date, convey.ShouldEqual, "2026-03-01")
				convey.So(report.Series[0].Values["3. Routine Marching"], convey.ShouldEqual, 88.5)
				convey.So(report.Criteria, convey.ShouldResemble, []string{"3. Routine Marching"})
			})
		})

		convey.Convey("When checking health and stats", func() {
			healthResp, err := http.Get(srv.URL + "/healthz")
			convey.So(err, convey.ShouldBeNil)
			_ = healthResp.Body.Close()
			convey.So(healthResp.StatusCode, convey.ShouldEqual, http.StatusOK)

			statsResp, err := http.Get(srv.URL + "/stats")
			convey.So(err, convey.ShouldBeNil)
			defer statsResp.Body.Close()
			convey.So(statsResp.StatusCode, convey.ShouldEqual, http.StatusOK)

			var stats map[string]any
			convey.So(json.NewDecoder(statsResp.Body).Decode(&stats), convey.ShouldBeNil)
			convey.So(stats["started"], convey.ShouldEqual, true)
		})
	})
}
