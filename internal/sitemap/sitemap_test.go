package sitemap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aniko-app/aniko/api"
	"github.com/aniko-app/aniko/constant"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

const homeFeed = `{
	"success": true,
	"data": {
		"spotlightAnimes": [
			{"id": "one-piece", "name": "One Piece"},
			{"id": "bleach", "name": "Bleach"}
		],
		"trendingAnimes": [
			{"id": "one-piece", "name": "One Piece"},
			{"id": "steins-gate", "name": "Steins;Gate"}
		],
		"latestEpisodeAnimes": [
			{"id": "bleach", "episodes": [{"id": "bleach?ep=366"}]}
		]
	}
}`

func TestBuild(t *testing.T) {
	Convey("Build", t, func() {
		filesystem.SetMemMapFs()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(homeFeed))
		}))
		defer srv.Close()

		client := api.New(endpoint.Config{BaseURL: srv.URL, Endpoints: endpoint.Defaults})

		set, err := Build(context.Background(), client)
		So(err, ShouldBeNil)

		var locs []string
		for _, u := range set.URLs {
			locs = append(locs, u.Loc)
		}

		Convey("Static routes come first", func() {
			So(locs[0], ShouldEqual, constant.SiteOrigin+"/")
			So(locs, ShouldContain, constant.SiteOrigin+"/schedule")
		})

		Convey("Every distinct anime id becomes one page entry", func() {
			So(locs, ShouldContain, constant.SiteOrigin+"/anime/one-piece")
			So(locs, ShouldContain, constant.SiteOrigin+"/anime/bleach")
			So(locs, ShouldContain, constant.SiteOrigin+"/anime/steins-gate")
			So(len(set.URLs), ShouldEqual, len(constant.StaticRoutes)+3)
		})

		Convey("Episode ids never leak into the sitemap", func() {
			for _, loc := range locs {
				So(loc, ShouldNotContainSubstring, constant.EpisodeDelimiter)
			}
		})

		Convey("Write emits a well-formed urlset", func() {
			So(Write(set, "sitemap.xml"), ShouldBeNil)

			content, err := filesystem.API().ReadFile("sitemap.xml")
			So(err, ShouldBeNil)
			So(string(content), ShouldStartWith, "<?xml")
			So(string(content), ShouldContainSubstring, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
			So(strings.Count(string(content), "<url>"), ShouldEqual, len(set.URLs))
		})
	})
}

func TestBuildFetchFailure(t *testing.T) {
	Convey("A failing home feed aborts the build", t, func() {
		filesystem.SetMemMapFs()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := api.New(endpoint.Config{BaseURL: srv.URL, Endpoints: endpoint.Defaults})
		_, err := Build(context.Background(), client)
		So(err, ShouldNotBeNil)
	})
}
