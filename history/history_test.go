package history

import (
	"fmt"
	"testing"

	"github.com/aniko-app/aniko/filesystem"
	"github.com/aniko-app/aniko/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPush(t *testing.T) {
	Convey("Push", t, func() {
		Convey("Unshifts new entries", func() {
			items := Push(nil, Item{AnimeID: "a", EpisodeNumber: 1}, 20)
			items = Push(items, Item{AnimeID: "b", EpisodeNumber: 1}, 20)
			So(items, ShouldHaveLength, 2)
			So(items[0].AnimeID, ShouldEqual, "b")
		})

		Convey("Re-watching the same anime moves it to the front with the new episode", func() {
			items := Push(nil, Item{AnimeID: "a", EpisodeNumber: 1}, 20)
			items = Push(items, Item{AnimeID: "b", EpisodeNumber: 3}, 20)
			items = Push(items, Item{AnimeID: "a", EpisodeNumber: 2}, 20)

			So(items, ShouldHaveLength, 2)
			So(items[0].AnimeID, ShouldEqual, "a")
			So(items[0].EpisodeNumber, ShouldEqual, 2)
		})

		Convey("Truncates to capacity, dropping the oldest", func() {
			var items []Item
			for i := 0; i < 25; i++ {
				items = Push(items, Item{AnimeID: fmt.Sprintf("a%d", i)}, 20)
			}
			So(items, ShouldHaveLength, 20)
			So(items[0].AnimeID, ShouldEqual, "a24")
			So(items[19].AnimeID, ShouldEqual, "a5")
		})
	})
}

func TestLedger(t *testing.T) {
	Convey("Given a ledger", t, func() {
		ledger := NewLedger("/test/history.json", 20)

		anime := &source.Anime{ID: "steins-gate", Title: "Steins;Gate", Poster: "sg.jpg"}
		ep := &source.Episode{ID: "steins-gate?ep=1", Number: 1, Title: "Prologue"}

		Convey("Recording and loading round-trips most-recent-first", func() {
			So(ledger.Record(NewItem(anime, ep)), ShouldBeNil)

			other := &source.Anime{ID: "frieren", Title: "Frieren"}
			So(ledger.Record(NewItem(other, &source.Episode{ID: "frieren?ep=1", Number: 1})), ShouldBeNil)

			items, err := ledger.All()
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 2)
			So(items[0].AnimeID, ShouldEqual, "frieren")
			So(items[1].Image, ShouldEqual, "sg.jpg")
		})

		Convey("Clear empties the ledger", func() {
			So(ledger.Record(NewItem(anime, ep)), ShouldBeNil)
			So(ledger.Clear(), ShouldBeNil)

			items, err := ledger.All()
			So(err, ShouldBeNil)
			So(items, ShouldBeEmpty)
		})
	})
}
