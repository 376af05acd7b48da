package extract_test

import (
	"testing"

	extract "github.com/acgithub1138/drillscore/internal/domain/extract"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFields(t *testing.T) {
	Convey("Given a score sheet with mixed leaf types", t, func() {
		sheet := map[string]any{
			"a": map[string]any{
				"b": "12.5",
				"c": "n/a",
				"d": []any{1.0, 2.0},
			},
		}

		Convey("When extracting fields", func() {
			got := extract.Fields(sheet)

			Convey("Then only numeric leaves survive", func() {
				So(got, ShouldHaveLength, 1)
				So(got["a.b"], ShouldEqual, 12.5)
			})
		})
	})

	Convey("Given a sheet wrapped under the conventional fields key", t, func() {
		sheet := map[string]any{
			"fields": map[string]any{
				"field_3_2.Routine_Marching": 78.5,
				"field_9_Uniform_Violation":  "5",
			},
		}

		Convey("When extracting fields", func() {
			got := extract.Fields(sheet)

			Convey("Then the wrapper level is unwrapped first", func() {
				So(got, ShouldHaveLength, 2)
				So(got["field_3_2.Routine_Marching"], ShouldEqual, 78.5)
				So(got["field_9_Uniform_Violation"], ShouldEqual, 5)
			})
		})
	})

	Convey("Given nested objects", t, func() {
		sheet := map[string]any{
			"outer": map[string]any{
				"inner": map[string]any{
					"score": 42.0,
				},
				"direct": 7.0,
			},
		}

		Convey("When extracting fields", func() {
			got := extract.Fields(sheet)

			Convey("Then keys are dotted paths through the nesting", func() {
				So(got["outer.inner.score"], ShouldEqual, 42)
				So(got["outer.direct"], ShouldEqual, 7)
			})
		})
	})

	Convey("Given degenerate inputs", t, func() {
		Convey("When the sheet is nil", func() {
			So(extract.Fields(nil), ShouldBeEmpty)
		})

		Convey("When the sheet is not an object", func() {
			So(extract.Fields("not a sheet"), ShouldBeEmpty)
			So(extract.Fields(3.14), ShouldBeEmpty)
			So(extract.Fields([]any{1.0}), ShouldBeEmpty)
		})

		Convey("When string leaves are blank or non-finite", func() {
			got := extract.Fields(map[string]any{
				"blank": "   ",
				"inf":   "Inf",
				"nan":   "NaN",
				"ok":    "3",
			})
			So(got, ShouldHaveLength, 1)
			So(got["ok"], ShouldEqual, 3)
		})
	})
}
