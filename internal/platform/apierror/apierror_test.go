package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func runHandler(t *testing.T, method string, err error) (*httptest.ResponseRecorder, Body) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/analyze", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	Handler(zerolog.Nop())(err, c)

	var body Body
	if rec.Body.Len() > 0 {
		if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
			t.Fatalf("decode: %v", decodeErr)
		}
	}
	return rec, body
}

func TestHandler_HTTPError(t *testing.T) {
	rec, body := runHandler(t, http.MethodPost, echo.NewHTTPError(http.StatusBadRequest, "Description too short"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if body.Detail != "Description too short" {
		t.Errorf("expected detail 'Description too short', got %q", body.Detail)
	}
	if body.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status_code 400, got %d", body.StatusCode)
	}
}

func TestHandler_PlainErrorIsInternal(t *testing.T) {
	rec, body := runHandler(t, http.MethodPost, errors.New("nil pointer somewhere"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if body.Detail != InternalDetail {
		t.Errorf("expected generic detail, got %q", body.Detail)
	}
}

func TestHandler_InternalErrorHidden(t *testing.T) {
	he := echo.NewHTTPError(http.StatusInternalServerError, "db exploded")
	_, body := runHandler(t, http.MethodPost, he)

	if body.Detail != InternalDetail {
		t.Errorf("expected generic detail, got %q", body.Detail)
	}
}

func TestHandler_NotFoundUsesEchoMessage(t *testing.T) {
	rec, body := runHandler(t, http.MethodGet, echo.ErrNotFound)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if body.Detail != "Not Found" {
		t.Errorf("expected detail 'Not Found', got %q", body.Detail)
	}
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	rec, _ := runHandler(t, http.MethodHead, echo.ErrNotFound)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body for HEAD, got %q", rec.Body.String())
	}
}

func TestHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "already written")

	Handler(zerolog.Nop())(errors.New("late failure"), c)

	if rec.Code != http.StatusOK {
		t.Errorf("expected committed status 200 to stand, got %d", rec.Code)
	}
	if rec.Body.String() != "already written" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}
