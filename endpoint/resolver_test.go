package endpoint

import (
	"strings"
	"testing"

	"github.com/aniko-app/aniko/key"
	"github.com/spf13/viper"
	. "github.com/smartystreets/goconvey/convey"
)

func testConfig() Config {
	endpoints := make(map[Key]string, len(Defaults))
	for k, v := range Defaults {
		endpoints[k] = v
	}
	return Config{BaseURL: "https://api.example.com", Endpoints: endpoints}
}

func TestResolve(t *testing.T) {
	Convey("Given a resolver over the default templates", t, func() {
		r := NewResolver(testConfig())

		Convey("A search term fills the {keyword} placeholder", func() {
			u, err := r.Resolve(Search, Params{"q": "bleach"})
			So(err, ShouldBeNil)
			So(strings.HasSuffix(u, "/anime/hianime/bleach"), ShouldBeTrue)
		})

		Convey("A search term fills the {q} placeholder", func() {
			u, err := r.Resolve(Suggestion, Params{"q": "frieren"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/suggestion?keyword=frieren")
		})

		Convey("A search term is appended as keyword= when no placeholder exists", func() {
			cfg := testConfig()
			cfg.Endpoints[Search] = "/anime/hianime/filter"
			u, err := NewResolver(cfg).Resolve(Search, Params{"q": "one piece"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/filter?keyword=one+piece")
		})

		Convey("An id fills the {id} placeholder", func() {
			u, err := r.Resolve(Details, Params{"id": "one-piece"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/info?id=one-piece")
		})

		Convey("Pagination appends with & on a URL that already has a query", func() {
			u, err := r.Resolve(Details, Params{"id": "one-piece", "page": "2"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/info?id=one-piece&page=2")
		})

		Convey("Pagination appends with ? on a bare URL", func() {
			u, err := r.Resolve(Home, Params{"page": "3"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/home?page=3")
		})

		Convey("An id extends a template ending in =", func() {
			u, err := r.Resolve(Servers, Params{"id": "steins-gate?ep=13499"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/servers?episodeId=steins-gate?ep=13499")
		})

		Convey("An id becomes a path segment when the template has no slot", func() {
			cfg := testConfig()
			cfg.Endpoints[Episodes] = "/anime/hianime/episodes/"
			u, err := NewResolver(cfg).Resolve(Episodes, Params{"id": "bleach"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/episodes/bleach")
		})

		Convey("Named placeholders are filled from params", func() {
			u, err := r.Resolve(Schedule, Params{"date": "2024-06-01"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/schedule?date=2024-06-01")
		})

		Convey("No resolved URL ever carries an unresolved placeholder", func() {
			cases := []struct {
				key    Key
				params Params
			}{
				{Home, nil},
				{Search, Params{"q": "naruto"}},
				{Suggestion, Params{"q": "naruto"}},
				{Details, Params{"id": "naruto"}},
				{Episodes, Params{"id": "naruto"}},
				{Servers, Params{"id": "naruto?ep=1"}},
				{Stream, Params{"id": "naruto?ep=1"}},
				{Schedule, Params{"date": "2024-06-01"}},
				{Genre, Params{"id": "action", "page": "2"}},
				{Category, Params{"id": "movie"}},
			}
			for _, c := range cases {
				u, err := r.Resolve(c.key, c.params)
				So(err, ShouldBeNil)
				So(u, ShouldNotContainSubstring, "{")
				So(u, ShouldNotContainSubstring, "}")
			}
		})

		Convey("A template whose placeholder cannot be filled fails fast", func() {
			_, err := r.Resolve(Details, nil)
			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, &ConfigurationError{})
		})

		Convey("An unknown key with no default fails fast", func() {
			_, err := r.Resolve(Key("nope"), nil)
			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, &ConfigurationError{})
		})

		Convey("Resolution is deterministic for a fixed configuration", func() {
			p := Params{"id": "bleach", "page": "4"}
			a, err := r.Resolve(Genre, p)
			So(err, ShouldBeNil)
			b, err := r.Resolve(Genre, p)
			So(err, ShouldBeNil)
			So(a, ShouldEqual, b)
		})
	})
}

func TestFromViper(t *testing.T) {
	Convey("FromViper", t, func() {
		viper.Reset()
		defer viper.Reset()

		Convey("Overriding one endpoint leaves the rest on defaults", func() {
			viper.Set(key.Endpoint(string(Search)), "/custom/search/{q}")

			cfg := FromViper()
			So(cfg.Endpoints[Search], ShouldEqual, "/custom/search/{q}")
			So(cfg.Endpoints[Details], ShouldEqual, Defaults[Details])

			u, err := NewResolver(cfg).Resolve(Details, Params{"id": "bleach"})
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "/anime/hianime/info?id=bleach")
		})

		Convey("Base URL and access key are read from config", func() {
			viper.Set(key.APIBaseURL, "https://api.example.com")
			viper.Set(key.APIAccessKey, "sekrit")

			cfg := FromViper()
			So(cfg.BaseURL, ShouldEqual, "https://api.example.com")
			So(cfg.AccessKey, ShouldEqual, "sekrit")
		})
	})
}
