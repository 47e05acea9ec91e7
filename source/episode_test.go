package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEpisode(t *testing.T) {
	Convey("Episode", t, func() {
		ep := &Episode{
			ID:     "steins-gate?ep=13499",
			Number: 1,
			Title:  "Turning Point",
		}

		Convey("String", func() {
			So(ep.String(), ShouldEqual, "Turning Point")
		})

		Convey("String falls back to the id", func() {
			So((&Episode{ID: "x?ep=1"}).String(), ShouldEqual, "x?ep=1")
		})

		Convey("AnimeID extracts the parent id", func() {
			So(ep.AnimeID(), ShouldEqual, "steins-gate")
		})

		Convey("AnimeID without a delimiter returns the whole id", func() {
			So((&Episode{ID: "steins-gate"}).AnimeID(), ShouldEqual, "steins-gate")
		})
	})
}

func TestNextAfter(t *testing.T) {
	Convey("NextAfter", t, func() {
		// Non-contiguous numbering on purpose: navigation is by list order.
		eps := []*Episode{
			{ID: "a?ep=1", Number: 1},
			{ID: "a?ep=2", Number: 2},
			{ID: "a?ep=5", Number: 5},
		}

		Convey("Returns the next episode in list order", func() {
			next := NextAfter(eps, eps[1])
			So(next, ShouldNotBeNil)
			So(next.ID, ShouldEqual, "a?ep=5")
		})

		Convey("Returns nil for the last episode", func() {
			So(NextAfter(eps, eps[2]), ShouldBeNil)
		})

		Convey("Returns nil for an unknown episode", func() {
			So(NextAfter(eps, &Episode{ID: "b?ep=1"}), ShouldBeNil)
		})

		Convey("FirstEpisode returns list head or nil", func() {
			So(FirstEpisode(eps).ID, ShouldEqual, "a?ep=1")
			So(FirstEpisode(nil), ShouldBeNil)
		})
	})
}
