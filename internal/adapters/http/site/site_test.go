package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func serve(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	Convey("Given a router with the site registered", t, func() {
		ctx := context.Background()
		r := chi.NewRouter()
		So(Register(ctx, r), ShouldBeNil)

		Convey("Then / should serve the UI page", func() {
			w := serve(r, "/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "app.js")
		})

		Convey("Then the script and stylesheet should be served", func() {
			So(serve(r, "/app.js").Code, ShouldEqual, http.StatusOK)
			So(serve(r, "/style.css").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then unknown assets should 404", func() {
			So(serve(r, "/missing.js").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then /data should not be mounted", func() {
			So(serve(r, "/data/pals.json").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a data directory", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		iconDir := filepath.Join(dir, "assets", "element_icons")
		So(os.MkdirAll(iconDir, 0o755), ShouldBeNil)
		So(os.WriteFile(filepath.Join(iconDir, "fire.png"), []byte("png"), 0o644), ShouldBeNil)
		So(os.WriteFile(filepath.Join(dir, "pals.json"), []byte(`[]`), 0o644), ShouldBeNil)

		r := chi.NewRouter()
		So(Register(ctx, r, WithDataDir(dir)), ShouldBeNil)

		Convey("Then its files should be served under /data/", func() {
			w := serve(r, "/data/assets/element_icons/fire.png")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "png")

			w = serve(r, "/data/pals.json")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "[]")
		})

		Convey("Then /data should redirect to /data/", func() {
			w := serve(r, "/data")
			So(w.Code, ShouldEqual, http.StatusMovedPermanently)
			So(w.Header().Get("Location"), ShouldEqual, "/data/")
		})

		Convey("Then the UI should still be served", func() {
			So(serve(r, "/").Code, ShouldEqual, http.StatusOK)
		})
	})

	Convey("Given a missing data directory", t, func() {
		err := Register(context.Background(), chi.NewRouter(), WithDataDir(filepath.Join(t.TempDir(), "nope")))

		Convey("Then registration should fail", func() {
			So(errors.Is(err, ErrDataDir), ShouldBeTrue)
		})
	})

	Convey("Given a nil router", t, func() {
		Convey("Then Register should panic", func() {
			So(func() { _ = Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestEmbeddedUI(t *testing.T) {
	Convey("Given the served UI", t, func() {
		r := chi.NewRouter()
		So(Register(context.Background(), r), ShouldBeNil)
		page := serve(r, "/").Body.String()
		script := serve(r, "/app.js").Body.String()

		Convey("Then a clear control should reset every filter", func() {
			So(page, ShouldContainSubstring, `id="clear"`)
			So(script, ShouldContainSubstring, "$('clear').addEventListener('click'")
			So(script, ShouldContainSubstring, "return refreshLevels().then(() => refresh());")
		})

		Convey("Then a whole row should open the detail view", func() {
			So(script, ShouldContainSubstring, "tr.addEventListener('click', () => showDetail(row.record.id));")
		})

		Convey("Then a backdrop click should close the detail view", func() {
			So(page, ShouldContainSubstring, `<div class="surface">`)
			So(script, ShouldContainSubstring, "if (ev.target === dialog) dialog.close();")
		})

		Convey("Then detail icons should be drawn only when present", func() {
			So(script, ShouldContainSubstring, "if (view.iconPath) {")
			So(script, ShouldContainSubstring, "appendIcons(el, view.elements);")
			So(script, ShouldContainSubstring, "box.className = 'work-icon placeholder';")
			So(script, ShouldContainSubstring, "icon('work-icon', w.iconPath, w.type)")
		})
	})
}

func TestFileServer(t *testing.T) {
	Convey("Given a path with URL parameters", t, func() {
		Convey("Then FileServer should panic", func() {
			So(func() { FileServer(chi.NewRouter(), "/x/{id}", FS()) }, ShouldPanic)
		})
	})
}
