package util

import (
	"testing"

	"github.com/aniko-app/aniko/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "episode", "episodes"), ShouldEqual, "1 episode")
		So(Quantify(12, "episode", "episodes"), ShouldEqual, "12 episodes")
		So(Quantify(0, "episode", "episodes"), ShouldEqual, "0 episodes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("watching"), ShouldEqual, "Watching")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("Removes a file", func() {
			So(fs.WriteFile("cache.json", []byte("{}"), 0644), ShouldBeNil)
			So(Delete("cache.json"), ShouldBeNil)
			_, err := fs.Stat("cache.json")
			So(err, ShouldNotBeNil)
		})

		Convey("Removes a directory recursively", func() {
			So(fs.MkdirAll("cache/sub", 0755), ShouldBeNil)
			So(fs.WriteFile("cache/sub/a.json", []byte("{}"), 0644), ShouldBeNil)
			So(Delete("cache"), ShouldBeNil)
			_, err := fs.Stat("cache")
			So(err, ShouldNotBeNil)
		})

		Convey("Errors on a missing path", func() {
			So(Delete("missing"), ShouldNotBeNil)
		})
	})
}
