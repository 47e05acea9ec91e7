package progress

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aniko-app/aniko/filesystem"
	"github.com/aniko-app/aniko/source"
	. "github.com/smartystreets/goconvey/convey"
)

// documentServer is a minimal in-memory rendition of the cloud document store:
// GET returns 404 until a document exists, PUT replaces it wholesale.
type documentServer struct {
	mu   sync.Mutex
	docs map[string][]byte
	puts int
	gets int
}

func newDocumentServer() (*documentServer, *httptest.Server) {
	ds := &documentServer{docs: make(map[string][]byte)}
	return ds, httptest.NewServer(ds)
}

func (ds *documentServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		ds.gets++
		doc, ok := ds.docs[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(doc)
	case http.MethodPut:
		ds.puts++
		body, _ := io.ReadAll(r.Body)
		ds.docs[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (ds *documentServer) document(path string) *Document {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	doc := emptyDocument()
	if raw, ok := ds.docs[path]; ok {
		json.Unmarshal(raw, doc)
	}
	return doc
}

func testRemote(baseURL string) *RemoteStore {
	return &RemoteStore{
		baseURL: baseURL,
		project: "aniko",
		token:   func() (string, error) { return "token-123", nil },
		http:    http.DefaultClient,
	}
}

func TestRemoteStore(t *testing.T) {
	Convey("RemoteStore", t, func() {
		filesystem.SetMemMapFs()
		ctx := context.Background()
		ds, srv := newDocumentServer()
		defer srv.Close()
		store := testRemote(srv.URL)
		docPath := "/projects/aniko/users/user-42/document"

		Convey("A missing document reads as an empty list", func() {
			all, err := store.GetAll(ctx, "user-42")
			So(err, ShouldBeNil)
			So(all, ShouldBeEmpty)
		})

		Convey("Writes go through read-modify-write of the whole document", func() {
			detail := sampleDetail()
			So(store.RecordEpisodeWatched(ctx, "user-42", detail, detail.EpisodeList[0]), ShouldBeNil)
			So(store.Add(ctx, "user-42", &source.Anime{ID: "bleach", Title: "Bleach"}), ShouldBeNil)

			doc := ds.document(docPath)
			So(doc.Progress, ShouldContainKey, "steins-gate")
			So(doc.Progress, ShouldContainKey, "bleach")
			So(len(doc.WatchHistory), ShouldEqual, 1)
			So(ds.puts, ShouldEqual, 2)
			So(ds.gets, ShouldEqual, 2)
		})

		Convey("Add without change skips the write", func() {
			bleach := &source.Anime{ID: "bleach", Title: "Bleach"}
			So(store.Add(ctx, "user-42", bleach), ShouldBeNil)
			So(store.Add(ctx, "user-42", bleach), ShouldBeNil)
			So(ds.puts, ShouldEqual, 1)
		})

		Convey("Requests carry the bearer token", func() {
			var auth string
			authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				auth = r.Header.Get("Authorization")
				w.WriteHeader(http.StatusNotFound)
			}))
			defer authSrv.Close()

			_, err := testRemote(authSrv.URL).GetAll(ctx, "user-42")
			So(err, ShouldBeNil)
			So(auth, ShouldEqual, "Bearer token-123")
		})

		Convey("A server failure on read is a load error marked unavailable", func() {
			failSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer failSrv.Close()

			_, err := testRemote(failSrv.URL).GetAll(ctx, "user-42")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrUnavailable), ShouldBeTrue)

			var storeErr *StoreError
			So(errors.As(err, &storeErr), ShouldBeTrue)
			So(storeErr.Op, ShouldEqual, "load")
			So(err.Error(), ShouldContainSubstring, "could not load your list")
		})

		Convey("A failed write surfaces a save error and queues the document", func() {
			failSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer failSrv.Close()

			detail := sampleDetail()
			err := testRemote(failSrv.URL).RecordEpisodeWatched(ctx, "user-42", detail, detail.EpisodeList[0])
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrUnavailable), ShouldBeTrue)

			var storeErr *StoreError
			So(errors.As(err, &storeErr), ShouldBeTrue)
			So(storeErr.Op, ShouldEqual, "save")
			So(err.Error(), ShouldContainSubstring, "could not save your progress")

			Convey("and reconciliation replays it once the store is back", func() {
				replayed := &RemoteStore{baseURL: srv.URL, project: "aniko", token: func() (string, error) { return "", nil }, http: http.DefaultClient}
				reconcile(replayed)

				doc := ds.document(docPath)
				So(doc.Progress, ShouldContainKey, "steins-gate")
			})
		})
	})
}
