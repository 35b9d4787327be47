package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/onair-cli/onair/session"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

// Downloader must satisfy the session's download dependency.
var _ session.Downloader = (*Downloader)(nil)

func TestFetch(t *testing.T) {
	Convey("Given an episode server", t, func() {
		var agent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
			switch r.URL.Path {
			case "/ep1.mp3":
				_, _ = w.Write([]byte("ID3 audio"))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		fs := afero.Afero{Fs: afero.NewMemMapFs()}
		dir := "/downloads"
		d := New(fs, dir).WithClient(server.Client())

		Convey("When the resource exists", func() {
			path, err := d.Fetch(context.Background(), server.URL+"/ep1.mp3", "Ep1_ja.mp3")

			Convey("It should be saved under the requested name", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(dir, "Ep1_ja.mp3"))

				data, err := fs.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "ID3 audio")
			})

			Convey("It should leave no partial files behind", func() {
				parts, err := afero.Glob(fs, filepath.Join(dir, "*.part"))
				So(err, ShouldBeNil)
				So(parts, ShouldBeEmpty)
			})

			Convey("A second download of the same name should be numbered", func() {
				again, err := d.Fetch(context.Background(), server.URL+"/ep1.mp3", "Ep1_ja.mp3")
				So(err, ShouldBeNil)
				So(again, ShouldEqual, filepath.Join(dir, "Ep1_ja (1).mp3"))
			})
		})

		Convey("When the server answers 404", func() {
			_, err := d.Fetch(context.Background(), server.URL+"/missing.mp3", "missing.mp3")

			Convey("It should fail without writing anything", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "404")
				exists, _ := fs.Exists(filepath.Join(dir, "missing.mp3"))
				So(exists, ShouldBeFalse)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := d.Fetch(ctx, server.URL+"/ep1.mp3", "Ep1_ja.mp3")
			So(err, ShouldNotBeNil)
		})

		Convey("The default client should send the application User-Agent", func() {
			_, err := New(fs, dir).Fetch(context.Background(), server.URL+"/ep1.mp3", "ua.mp3")
			So(err, ShouldBeNil)
			So(agent, ShouldStartWith, "onair/")
		})
	})
}
