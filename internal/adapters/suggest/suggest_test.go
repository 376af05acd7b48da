package suggest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	suggest "github.com/acgithub1138/drillscore/internal/adapters/suggest"
	"github.com/acgithub1138/drillscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFilter(t *testing.T) {
	Convey("Given a ranked candidate list", t, func() {
		candidates := []model.SimilarityCandidate{
			{DisplayName: "a", Similarity: 0.05},
			{DisplayName: "b", Similarity: 0.4},
			{DisplayName: "c", Similarity: 0.9},
		}

		Convey("When filtering", func() {
			got := suggest.Filter(candidates)

			Convey("Then only candidates above the floor survive, order kept", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].DisplayName, ShouldEqual, "b")
				So(got[1].DisplayName, ShouldEqual, "c")
			})
		})

		Convey("When a candidate sits exactly on the floor", func() {
			got := suggest.Filter([]model.SimilarityCandidate{{Similarity: suggest.MinSimilarity}})

			Convey("Then it is excluded", func() {
				So(got, ShouldBeEmpty)
			})
		})
	})
}

func TestTop(t *testing.T) {
	Convey("Given more candidates than the scan cap", t, func() {
		candidates := make([]model.SimilarityCandidate, 5)
		for i := range candidates {
			candidates[i].UsageCount = i
		}

		Convey("When capping", func() {
			got := suggest.Top(candidates, suggest.ScanTopN)

			Convey("Then the first three remain", func() {
				So(got, ShouldHaveLength, 3)
				So(got[0].UsageCount, ShouldEqual, 0)
			})
		})

		Convey("When the list is already short", func() {
			got := suggest.Top(candidates[:2], suggest.ScanTopN)
			So(got, ShouldHaveLength, 2)
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given a similarity service", t, func(c C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Path, ShouldEqual, "/similar")
			c.So(r.URL.Query().Get("criterion"), ShouldEqual, "3. Routine Marching")
			c.So(r.URL.Query().Get("event_type"), ShouldEqual, "armed_regulation")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[{"mapping_id":"m1","display_name":"Routine Marching","similarity":0.92,"usage_count":7}]}`))
		}))
		defer srv.Close()

		client := suggest.NewClient(srv.URL)

		Convey("When looking up a criterion", func() {
			got, err := client.FindSimilar(context.Background(), "3. Routine Marching", "armed_regulation")

			Convey("Then candidates decode from the envelope", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].DisplayName, ShouldEqual, "Routine Marching")
				So(got[0].Similarity, ShouldEqual, 0.92)
			})
		})
	})

	Convey("Given a failing service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := suggest.NewClient(srv.URL)

		Convey("When looking up a criterion", func() {
			_, err := client.FindSimilar(context.Background(), "x", "y")

			Convey("Then the lookup error kind surfaces", func() {
				So(err, ShouldWrap, suggest.ErrLookup)
			})
		})
	})

	Convey("Given a service slower than the client timeout", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		client := suggest.NewClient(srv.URL, suggest.WithTimeout(20*time.Millisecond))

		Convey("When looking up a criterion", func() {
			_, err := client.FindSimilar(context.Background(), "x", "y")

			Convey("Then the call fails instead of blocking", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
