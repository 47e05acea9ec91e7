package config

import (
	"testing"

	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/filesystem"
	"github.com/aniko-app/aniko/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Every logical endpoint has a registered template default", func() {
			So(Setup(), ShouldBeNil)
			for _, k := range endpoint.AllKeys() {
				So(viper.GetString(key.Endpoint(string(k))), ShouldNotBeEmpty)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("endpoints.search")
			So(result, ShouldEqual, "endpoints_search")
		})
	})
}
