package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onair-cli/onair/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a server echoing the User-Agent", t, func() {
		var seen string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		Convey("When a request carries no User-Agent", func() {
			res, err := Client.Get(server.URL)
			So(err, ShouldBeNil)
			_ = res.Body.Close()

			Convey("Then the application User-Agent should be sent", func() {
				So(seen, ShouldEqual, constant.UserAgent)
			})
		})

		Convey("When a request sets its own User-Agent", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("User-Agent", "custom/1.0")
			res, err := Client.Do(req)
			So(err, ShouldBeNil)
			_ = res.Body.Close()

			Convey("Then it should be preserved", func() {
				So(seen, ShouldEqual, "custom/1.0")
			})
		})
	})
}

func TestTransport(t *testing.T) {
	Convey("Given the shared transport", t, func() {
		transport := newTransport()

		Convey("Then it should negotiate HTTP/2 over TLS", func() {
			So(transport.TLSNextProto, ShouldContainKey, "h2")
		})

		Convey("When a TLS server supporting HTTP/2 is requested", func() {
			server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(r.Proto))
			}))
			server.EnableHTTP2 = true
			server.StartTLS()
			defer server.Close()

			transport.TLSClientConfig.RootCAs = server.Client().Transport.(*http.Transport).TLSClientConfig.RootCAs
			defer transport.CloseIdleConnections()
			res, err := (&http.Client{Transport: transport}).Get(server.URL)
			So(err, ShouldBeNil)
			defer res.Body.Close()

			Convey("Then the response should come over HTTP/2", func() {
				So(res.ProtoMajor, ShouldEqual, 2)
			})
		})
	})
}
