package api

import (
	"errors"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrors(t *testing.T) {
	Convey("Given API errors", t, func() {
		cause := errors.New("boom")

		Convey("When a kind is wrapped", func() {
			err := WrapKind("api.op", ErrRender, cause)
			So(errors.Is(err, ErrRender), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: render failed: boom")

			var apiErr *Error
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Op, ShouldEqual, "api.op")
		})

		Convey("When nil is wrapped", func() {
			So(Wrap("api.op", nil), ShouldBeNil)
			So(WrapKind("api.op", ErrNotFound, nil), ShouldBeNil)
		})

		Convey("When a bare kind is created", func() {
			err := NewKind("api.op", ErrNotFound)
			So(err.Error(), ShouldEqual, "api.op: not found")
			So(Wrap("api.op", cause).Error(), ShouldEqual, "api.op: boom")
		})

		Convey("Then kinds map to statuses", func() {
			cases := []struct {
				err    error
				status int
				code   string
			}{
				{NewKind("x", ErrNotFound), http.StatusNotFound, "not_found"},
				{NewKind("x", ErrUnprocessable), http.StatusUnprocessableEntity, "unprocessable"},
				{WrapKind("x", ErrRender, cause), http.StatusInternalServerError, "render_error"},
				{Wrap("x", cause), http.StatusInternalServerError, "internal_error"},
				{errors.New("bad request"), http.StatusInternalServerError, "internal_error"},
			}
			for _, c := range cases {
				st, code := status(c.err)
				So(st, ShouldEqual, c.status)
				So(code, ShouldEqual, c.code)
			}
		})

		Convey("Then status codes map to error types", func() {
			So(getErrorType(500), ShouldEqual, "server_error")
			So(getErrorType(422), ShouldEqual, "unprocessable")
			So(getErrorType(404), ShouldEqual, "not_found")
			So(getErrorType(400), ShouldEqual, "client_error")
			So(getErrorType(200), ShouldEqual, "unknown")
		})
	})
}
