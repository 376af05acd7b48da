package aggregate_test

import (
	"testing"
	"time"

	aggregate "github.com/acgithub1138/drillscore/internal/domain/aggregate"
	"github.com/acgithub1138/drillscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func record(day, competition string, sheet map[string]any) model.ScoreRecord {
	d, _ := time.Parse(model.DateLayout, day)
	return model.ScoreRecord{Date: d, CompetitionID: competition, ScoreSheet: sheet}
}

func TestSeries(t *testing.T) {
	Convey("Given two records on the same date mapped to one label", t, func() {
		records := []model.ScoreRecord{
			record("2026-03-01", "c1", map[string]any{"field_3_2.Routine_Marching": 80.0}),
			record("2026-03-01", "c2", map[string]any{"field_3_7.Routine_Marching": 90.0}),
		}
		rawToFinal := map[string]string{
			"field_3_2.Routine_Marching": "Routine Marching",
			"field_3_7.Routine_Marching": "Routine Marching",
		}

		Convey("When aggregating", func() {
			series := aggregate.Series(records, rawToFinal)

			Convey("Then values pool into one averaged point", func() {
				So(series, ShouldHaveLength, 1)
				So(series[0].Date, ShouldEqual, "2026-03-01")
				So(series[0].Values["Routine Marching"], ShouldEqual, 85.00)
			})
		})
	})

	Convey("Given records across multiple dates", t, func() {
		records := []model.ScoreRecord{
			record("2026-03-08", "c1", map[string]any{"field_1_1.Posture": 70.0}),
			record("2026-03-01", "c1", map[string]any{"field_1_1.Posture": 60.0, "field_2_1.Footwork": 75.0}),
		}
		rawToFinal := map[string]string{
			"field_1_1.Posture":  "1. Posture",
			"field_2_1.Footwork": "2. Footwork",
		}

		Convey("When aggregating", func() {
			series := aggregate.Series(records, rawToFinal)

			Convey("Then rows come out date-ascending regardless of input order", func() {
				So(series, ShouldHaveLength, 2)
				So(series[0].Date, ShouldEqual, "2026-03-01")
				So(series[1].Date, ShouldEqual, "2026-03-08")
			})

			Convey("Then rows are sparse: absent criteria are gaps, not zeros", func() {
				So(series[0].Values, ShouldContainKey, "2. Footwork")
				So(series[1].Values, ShouldNotContainKey, "2. Footwork")
			})
		})
	})

	Convey("Given values that need rounding", t, func() {
		records := []model.ScoreRecord{
			record("2026-03-01", "c1", map[string]any{"a": 80.0}),
			record("2026-03-01", "c1", map[string]any{"a": 80.335}),
		}

		Convey("When aggregating", func() {
			series := aggregate.Series(records, map[string]string{"a": "A"})

			Convey("Then the mean is rounded half-up to 2 decimals", func() {
				// (80 + 80.335) / 2 = 80.1675 -> 80.17
				So(series[0].Values["A"], ShouldEqual, 80.17)
			})
		})
	})

	Convey("Given a raw key absent from the translation map", t, func() {
		records := []model.ScoreRecord{
			record("2026-03-01", "c1", map[string]any{"field_5_Uniform_Violation": 3.0}),
		}

		Convey("When aggregating", func() {
			series := aggregate.Series(records, map[string]string{})

			Convey("Then the formatted label is used as fallback", func() {
				So(series[0].Values["Uniform Violation"], ShouldEqual, 3)
			})
		})
	})

	Convey("Given records with no extractable fields", t, func() {
		records := []model.ScoreRecord{
			record("2026-03-01", "c1", nil),
			record("2026-03-02", "c1", map[string]any{"remarks": "n/a"}),
		}

		Convey("When aggregating", func() {
			series := aggregate.Series(records, map[string]string{})

			Convey("Then the series is empty", func() {
				So(series, ShouldBeEmpty)
			})
		})
	})
}

func TestRound2(t *testing.T) {
	Convey("Given boundary values", t, func() {
		So(aggregate.Round2(85.005), ShouldEqual, 85.0) // float64 cannot hold 85.005 exactly
		So(aggregate.Round2(85.125), ShouldEqual, 85.13)
		So(aggregate.Round2(85.124), ShouldEqual, 85.12)
		So(aggregate.Round2(85), ShouldEqual, 85)
	})
}
