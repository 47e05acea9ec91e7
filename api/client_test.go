package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func testClient(baseURL string) *Client {
	cfg := endpoint.Config{
		BaseURL:   baseURL,
		Endpoints: endpoint.Defaults,
	}
	return New(cfg)
}

func TestFetchDedup(t *testing.T) {
	Convey("Given a slow upstream", t, func() {
		var hits int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&hits, 1)
			time.Sleep(50 * time.Millisecond)
			w.Write([]byte(`{"success":true,"data":{"ok":true}}`))
		}))
		defer server.Close()

		c := testClient(server.URL)

		Convey("Concurrent identical fetches share one network call", func() {
			// Assertions stay on the test goroutine; the workers only record.
			var wg sync.WaitGroup
			errs := make([]error, 2)
			for i := range errs {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = c.Fetch(context.Background(), "/dedup", false)
				}(i)
			}
			wg.Wait()
			So(errs[0], ShouldBeNil)
			So(errs[1], ShouldBeNil)
			So(atomic.LoadInt64(&hits), ShouldEqual, 1)
		})

		Convey("A completed fetch is memoized for the process lifetime", func() {
			_, err := c.Fetch(context.Background(), "/memo", false)
			So(err, ShouldBeNil)
			before := atomic.LoadInt64(&hits)
			_, err = c.Fetch(context.Background(), "/memo", false)
			So(err, ShouldBeNil)
			So(atomic.LoadInt64(&hits), ShouldEqual, before)
		})

		Convey("An empty URL disables the request", func() {
			payload, err := c.Fetch(context.Background(), "", false)
			So(err, ShouldBeNil)
			So(payload, ShouldBeNil)
			So(atomic.LoadInt64(&hits), ShouldEqual, 0)
		})
	})
}

func TestFetchRetry(t *testing.T) {
	Convey("Given an upstream that fails once", t, func() {
		var hits int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt64(&hits, 1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		c := testClient(server.URL)

		Convey("The request is retried exactly once", func() {
			payload, err := c.Fetch(context.Background(), "/flaky", false)
			So(err, ShouldBeNil)
			So(payload, ShouldNotBeNil)
			So(atomic.LoadInt64(&hits), ShouldEqual, 2)
		})
	})

	Convey("Given an upstream that always fails", t, func() {
		var hits int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&hits, 1)
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"anime not found"}`))
		}))
		defer server.Close()

		c := testClient(server.URL)

		Convey("The failure surfaces the server-supplied message after one retry", func() {
			_, err := c.Fetch(context.Background(), "/gone", false)
			So(err, ShouldNotBeNil)
			So(atomic.LoadInt64(&hits), ShouldEqual, 2)

			apiErr, ok := err.(*Error)
			So(ok, ShouldBeTrue)
			So(apiErr.Kind, ShouldEqual, KindUpstream)
			So(apiErr.Message, ShouldEqual, "anime not found")
		})
	})
}

func TestFetchHeaders(t *testing.T) {
	Convey("Given a configured access key", t, func() {
		var gotKey string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-api-key")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := New(endpoint.Config{
			BaseURL:   server.URL,
			AccessKey: "sekrit",
			Endpoints: endpoint.Defaults,
		})

		Convey("It is sent as the x-api-key header", func() {
			_, err := c.Fetch(context.Background(), "/keyed", false)
			So(err, ShouldBeNil)
			So(gotKey, ShouldEqual, "sekrit")
		})
	})
}

func TestFullURL(t *testing.T) {
	Convey("fullURL", t, func() {
		c := testClient("https://api.example.com/")

		Convey("Joins relative paths with exactly one slash", func() {
			So(c.fullURL("/anime/home"), ShouldEqual, "https://api.example.com/anime/home")
			So(c.fullURL("anime/home"), ShouldEqual, "https://api.example.com/anime/home")
		})

		Convey("Absolute URLs bypass the base", func() {
			So(c.fullURL("https://other.example.com/x"), ShouldEqual, "https://other.example.com/x")
		})
	})
}
