package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAnime(t *testing.T) {
	Convey("Anime", t, func() {
		Convey("BestImage prefers poster, then banner, then image", func() {
			a := &Anime{Poster: "p", Banner: "b", Image: "i"}
			img, err := a.BestImage()
			So(err, ShouldBeNil)
			So(img, ShouldEqual, "p")

			a.Poster = ""
			img, _ = a.BestImage()
			So(img, ShouldEqual, "b")

			a.Banner = ""
			img, _ = a.BestImage()
			So(img, ShouldEqual, "i")
		})

		Convey("BestImage errors when nothing is set", func() {
			_, err := (&Anime{ID: "x"}).BestImage()
			So(err, ShouldNotBeNil)
		})

		Convey("TotalEpisodes prefers the subbed count", func() {
			So((&Anime{Episodes: EpisodeCount{Sub: 12, Dub: 10}}).TotalEpisodes(), ShouldEqual, 12)
			So((&Anime{Episodes: EpisodeCount{Dub: 10}}).TotalEpisodes(), ShouldEqual, 10)
			So((&Anime{}).TotalEpisodes(), ShouldEqual, 0)
		})
	})
}

func TestAnimeDetail(t *testing.T) {
	Convey("AnimeDetail", t, func() {
		d := &AnimeDetail{
			EpisodeList: []*Episode{
				{ID: "a?ep=1", Number: 1},
				{ID: "a?ep=3", Number: 3},
			},
		}

		Convey("EpisodeByNumber finds a match", func() {
			So(d.EpisodeByNumber(3).ID, ShouldEqual, "a?ep=3")
		})

		Convey("EpisodeByNumber returns nil for a gap", func() {
			So(d.EpisodeByNumber(2), ShouldBeNil)
		})
	})
}
