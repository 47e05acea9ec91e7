package progress

import (
	"testing"

	"github.com/aniko-app/aniko/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		Convey("Completed iff the total is known and reached", func() {
			So(Classify(12, 12), ShouldEqual, StatusCompleted)
			So(Classify(13, 12), ShouldEqual, StatusCompleted)
			So(Classify(12, 0), ShouldEqual, StatusWatching)
		})

		Convey("Watching once started", func() {
			So(Classify(1, 12), ShouldEqual, StatusWatching)
			So(Classify(11, 12), ShouldEqual, StatusWatching)
		})

		Convey("On Hold when added but not started", func() {
			So(Classify(0, 12), ShouldEqual, StatusOnHold)
			So(Classify(0, 0), ShouldEqual, StatusOnHold)
		})
	})
}

func TestPercent(t *testing.T) {
	Convey("Percent", t, func() {
		Convey("Zero when the total is unknown", func() {
			So((&UserProgress{CurrentEpisode: 4}).Percent(), ShouldEqual, 0)
			var p *UserProgress
			So(p.Percent(), ShouldEqual, 0)
		})

		Convey("Fraction of the total otherwise", func() {
			So((&UserProgress{CurrentEpisode: 6, TotalEpisodes: 12}).Percent(), ShouldEqual, 0.5)
		})

		Convey("Clamped to 100% when stale data overshoots", func() {
			So((&UserProgress{CurrentEpisode: 15, TotalEpisodes: 12}).Percent(), ShouldEqual, 1)
		})
	})
}

func TestNextWatchTarget(t *testing.T) {
	Convey("NextWatchTarget", t, func() {
		eps := []*source.Episode{
			{ID: "a?ep=1", Number: 1},
			{ID: "a?ep=2", Number: 2},
			{ID: "a?ep=3", Number: 3},
		}

		Convey("Picks the episode one past current progress", func() {
			target := NextWatchTarget(&UserProgress{CurrentEpisode: 1}, eps)
			So(target, ShouldNotBeNil)
			So(target.ID, ShouldEqual, "a?ep=2")
		})

		Convey("Falls back to the first episode without progress", func() {
			So(NextWatchTarget(nil, eps).ID, ShouldEqual, "a?ep=1")
		})

		Convey("Falls back to the first episode when the lookup misses", func() {
			// Episode 4 does not exist; offer a rewatch from the start.
			So(NextWatchTarget(&UserProgress{CurrentEpisode: 3}, eps).ID, ShouldEqual, "a?ep=1")
		})

		Convey("No target for an empty list", func() {
			So(NextWatchTarget(&UserProgress{CurrentEpisode: 1}, nil), ShouldBeNil)
		})
	})
}

func TestWatchedRecord(t *testing.T) {
	Convey("watchedRecord", t, func() {
		detail := &source.AnimeDetail{
			Anime: source.Anime{ID: "a", Title: "A", Poster: "a.jpg"},
			EpisodeList: []*source.Episode{
				{ID: "a?ep=1", Number: 1},
				{ID: "a?ep=2", Number: 2},
			},
		}

		Convey("Mid-series watch points at the next episode", func() {
			record := watchedRecord(detail, detail.EpisodeList[0])
			So(record.CurrentEpisode, ShouldEqual, 1)
			So(record.TotalEpisodes, ShouldEqual, 2)
			So(record.Status, ShouldEqual, StatusWatching)
			So(record.NextEpisodeID, ShouldEqual, "a?ep=2")
			So(record.Poster, ShouldEqual, "a.jpg")
		})

		Convey("Watching the last episode completes with no next pointer", func() {
			record := watchedRecord(detail, detail.EpisodeList[1])
			So(record.Status, ShouldEqual, StatusCompleted)
			So(record.NextEpisodeID, ShouldBeEmpty)
		})
	})
}
