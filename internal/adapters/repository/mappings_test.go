package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/acgithub1138/drillscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/datatypes"
)

func TestMappingStore(t *testing.T) {
	Convey("Given a mapping store with group, other-group and global rows", t, func() {
		db, err := Open(filepath.Join(t.TempDir(), "mappings.db"))
		So(err, ShouldBeNil)
		store := NewMappingStore(db)
		ctx := context.Background()

		seed := []criteriaMappingRow{
			{ID: "g1", EventType: "armed_regulation", GroupID: "school-a", DisplayName: "Routine Marching",
				Criteria: datatypes.JSON(`["3. Routine Marching","6. Routine Marching/Movement"]`), UsageCount: 4},
			{ID: "g2", EventType: "armed_regulation", GroupID: "school-b", DisplayName: "Other School",
				Criteria: datatypes.JSON(`["1. Posture"]`), UsageCount: 9},
			{ID: "glob", EventType: "armed_regulation", GroupID: "", Global: true, DisplayName: "Shared Bearing",
				Criteria: datatypes.JSON(`["4. Bearing"]`), UsageCount: 2},
			{ID: "other-event", EventType: "color_guard", GroupID: "school-a", DisplayName: "Colors",
				Criteria: datatypes.JSON(`["2. Colors"]`), UsageCount: 1},
		}
		for i := range seed {
			So(db.Create(&seed[i]).Error, ShouldBeNil)
		}

		Convey("When loading for school-a", func() {
			got, err := store.Load(ctx, "armed_regulation", "school-a")
			So(err, ShouldBeNil)

			Convey("Then own and global rows come back, usage descending", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].DisplayName, ShouldEqual, "Routine Marching")
				So(got[0].Criteria, ShouldResemble, []string{"3. Routine Marching", "6. Routine Marching/Movement"})
				So(got[1].DisplayName, ShouldEqual, "Shared Bearing")
				So(got[1].Global, ShouldBeTrue)
			})
		})

		Convey("When loading without a group context", func() {
			got, err := store.Load(ctx, "armed_regulation", "")

			Convey("Then it fails closed with an empty list", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When saving a replacement set for school-a", func() {
			err := store.Save(ctx, "armed_regulation", "school-a", []model.CriteriaMapping{
				{DisplayName: "Marching", Criteria: []string{"3. Routine Marching"}, UsageCount: 1},
			})
			So(err, ShouldBeNil)

			Convey("Then school-a sees the new set plus globals", func() {
				got, err := store.Load(ctx, "armed_regulation", "school-a")
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[0].DisplayName, ShouldEqual, "Shared Bearing")
				So(got[1].DisplayName, ShouldEqual, "Marching")
				So(got[1].ID, ShouldNotBeEmpty)
			})

			Convey("Then global rows survive untouched", func() {
				var row criteriaMappingRow
				So(db.First(&row, "id = ?", "glob").Error, ShouldBeNil)
				So(row.DisplayName, ShouldEqual, "Shared Bearing")
			})

			Convey("Then other groups and event types are untouched", func() {
				other, err := store.Load(ctx, "armed_regulation", "school-b")
				So(err, ShouldBeNil)
				So(other, ShouldHaveLength, 2) // own row + global
				So(other[0].DisplayName, ShouldEqual, "Other School")

				colors, err := store.Load(ctx, "color_guard", "school-a")
				So(err, ShouldBeNil)
				So(colors, ShouldHaveLength, 1)
			})
		})

		Convey("When saving an empty list for school-a", func() {
			err := store.Save(ctx, "armed_regulation", "school-a", nil)
			So(err, ShouldBeNil)

			Convey("Then the scope is cleared but globals remain", func() {
				got, err := store.Load(ctx, "armed_regulation", "school-a")
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].DisplayName, ShouldEqual, "Shared Bearing")
			})
		})

		Convey("When counting", func() {
			n, err := store.Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 4)
		})

		Convey("When the backing table is gone", func() {
			before := componentErrorCount("mapping_store", "load")
			So(db.Migrator().DropTable(&criteriaMappingRow{}), ShouldBeNil)

			_, err := store.Load(ctx, "armed_regulation", "school-a")

			Convey("Then the failure is wrapped and counted against the store", func() {
				So(err, ShouldWrap, ErrStorage)
				So(componentErrorCount("mapping_store", "load"), ShouldBeGreaterThan, before)
			})
		})
	})
}
