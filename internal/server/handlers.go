package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jebrand/jebman/internal/catalog"
	"github.com/jebrand/jebman/internal/http/response"
	"github.com/jebrand/jebman/internal/store"
	"github.com/pkg/errors"
)

type handler struct {
	ctrl *catalog.Controller
}

func (h *handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.ctrl.GetBooks()
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *handler) getBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.ctrl.GetBook(id)
	if errors.Is(err, store.ErrNotFound) {
		response.NotFound(w, r, err)
		return
	}
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, book)
}

func (h *handler) removeBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	if err := h.ctrl.RemoveBook(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w, r, err)
			return
		}
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

func (h *handler) tagBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, errors.Wrap(err, "decoding tag body"))
		return
	}

	if err := h.ctrl.TagBook(id, body.Name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w, r, err)
			return
		}
		response.BadRequest(w, r, err)
		return
	}
	response.Created(w, r, body)
}

func bookID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid book id %q", raw)
	}
	return id, nil
}
