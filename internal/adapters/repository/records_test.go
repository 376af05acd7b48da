package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/acgithub1138/drillscore/internal/domain/model"
	"github.com/acgithub1138/drillscore/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func day(s string) time.Time {
	d, _ := time.Parse(model.DateLayout, s)
	return d
}

// componentErrorCount reads the errors_by_component counter for one
// component/error_type pair from the shared registry.
func componentErrorCount(component, errorType string) float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return 0
	}
	for _, fam := range families {
		if fam.GetName() != "drillscore_reporting_errors_by_component_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["component"] == component && labels["error_type"] == errorType {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestRecordStore(t *testing.T) {
	Convey("Given a record store", t, func() {
		db, err := Open(filepath.Join(t.TempDir(), "records.db"))
		So(err, ShouldBeNil)
		store := NewRecordStore(db)
		ctx := context.Background()

		records := []model.ScoreRecord{
			{ID: "r2", EventType: "armed_regulation", GroupID: "school-a", CompetitionID: "c2",
				Date: day("2026-03-08"), ScoreSheet: map[string]any{"field_1_1.Posture": 70.0}},
			{ID: "r1", EventType: "armed_regulation", GroupID: "school-a", CompetitionID: "c1",
				Date: day("2026-03-01"), ScoreSheet: map[string]any{"field_1_1.Posture": "60"}},
			{ID: "r3", EventType: "color_guard", GroupID: "school-a", CompetitionID: "c1",
				Date: day("2026-03-01")},
			{ID: "r4", EventType: "armed_regulation", GroupID: "school-b", CompetitionID: "c1",
				Date: day("2026-03-01")},
		}
		for _, rec := range records {
			So(store.Insert(ctx, rec), ShouldBeNil)
		}

		Convey("When querying without a competition filter", func() {
			got, err := store.Query(ctx, "armed_regulation", "school-a", nil)
			So(err, ShouldBeNil)

			Convey("Then records come back scoped and date ascending", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].ID, ShouldEqual, "r1")
				So(got[1].ID, ShouldEqual, "r2")
			})

			Convey("Then score sheets round-trip through the JSON column", func() {
				So(got[0].ScoreSheet["field_1_1.Posture"], ShouldEqual, "60")
				So(got[1].ScoreSheet["field_1_1.Posture"], ShouldEqual, 70.0)
			})
		})

		Convey("When querying with a competition filter", func() {
			got, err := store.Query(ctx, "armed_regulation", "school-a", []string{"c1"})
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].ID, ShouldEqual, "r1")
		})

		Convey("When querying with an empty competition filter", func() {
			got, err := store.Query(ctx, "armed_regulation", "school-a", []string{})

			Convey("Then nothing matches", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When inserting invalid records", func() {
			So(store.Insert(ctx, model.ScoreRecord{Date: day("2026-03-01")}), ShouldWrap, ErrMissingID)
			So(store.Insert(ctx, model.ScoreRecord{ID: "r9"}), ShouldWrap, ErrMissingDate)
		})

		Convey("When counting", func() {
			n, err := store.Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 4)
		})

		Convey("When the backing table is gone", func() {
			before := componentErrorCount("record_store", "query")
			So(db.Migrator().DropTable(&scoreRecordRow{}), ShouldBeNil)

			_, err := store.Query(ctx, "armed_regulation", "school-a", nil)

			Convey("Then the failure is wrapped and counted against the store", func() {
				So(err, ShouldWrap, ErrStorage)
				So(componentErrorCount("record_store", "query"), ShouldBeGreaterThan, before)
			})
		})
	})
}
