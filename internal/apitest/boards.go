package apitest

import (
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/workdesk/workdesk-client/internal/types"
)

func (s *Server) boardRoutes(r *mux.Router) {
	r.HandleFunc("/boards/", s.listBoards).Methods("GET")
	r.HandleFunc("/boards/", s.createBoard).Methods("POST")
	r.HandleFunc("/boards/columns", s.createColumn).Methods("POST")
	r.HandleFunc("/boards/columns/{id:[0-9]+}", s.updateColumn).Methods("PUT")
	r.HandleFunc("/boards/columns/{id:[0-9]+}", s.deleteColumn).Methods("DELETE")
	r.HandleFunc("/boards/{id:[0-9]+}", s.getBoard).Methods("GET")
	r.HandleFunc("/boards/{id:[0-9]+}", s.updateBoard).Methods("PUT")
	r.HandleFunc("/boards/{id:[0-9]+}", s.deleteBoard).Methods("DELETE")
	r.HandleFunc("/boards/{id:[0-9]+}/columns", s.listColumns).Methods("GET")
	r.HandleFunc("/boards/{id:[0-9]+}/archive", s.blob("application/zip", "board_archive.zip")).Methods("GET")
	r.HandleFunc("/boards/{id:[0-9]+}/export-pdf", s.blob("application/pdf", "board.pdf")).Methods("GET")
}

// SeedBoard creates a board with the default three columns.
func (s *Server) SeedBoard(title string, ownerID int) types.BoardDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &types.Board{ID: s.newIDLocked(), Title: title, OwnerID: ownerID, Color: "#3B82F6", Status: "active", CreatedAt: time.Now().UTC()}
	s.boards[b.ID] = b
	for i, name := range []string{"To Do", "In Progress", "Done"} {
		c := &types.Column{ID: s.newIDLocked(), BoardID: b.ID, Title: name, Position: i, CreatedAt: b.CreatedAt}
		s.columns[c.ID] = c
	}
	return s.boardDetailLocked(b.ID)
}

func (s *Server) boardDetailLocked(id int) types.BoardDetail {
	d := types.BoardDetail{Board: *s.boards[id], Columns: []types.Column{}}
	for _, c := range s.columns {
		if c.BoardID != id {
			continue
		}
		col := *c
		col.Cards = []types.Card{}
		for _, card := range s.cards {
			if card.ColumnID == c.ID {
				col.Cards = append(col.Cards, *card)
			}
		}
		sort.Slice(col.Cards, func(i, j int) bool { return col.Cards[i].Position < col.Cards[j].Position })
		d.Columns = append(d.Columns, col)
	}
	sort.Slice(d.Columns, func(i, j int) bool { return d.Columns[i].Position < d.Columns[j].Position })
	return d
}

func (s *Server) listBoards(w http.ResponseWriter, r *http.Request) {
	archived := r.URL.Query().Get("include_archived") == "true"
	s.mu.Lock()
	out := []types.Board{}
	for _, b := range s.boards {
		if archived || !b.IsArchived {
			out = append(out, *b)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.mu.Lock()
	if _, ok := s.boards[id]; !ok {
		s.mu.Unlock()
		notFound(w, "Board")
		return
	}
	d := s.boardDetailLocked(id)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) createBoard(w http.ResponseWriter, r *http.Request) {
	var in types.CreateBoardRequest
	if !decode(w, r, &in) {
		return
	}
	if in.Title == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "title"}, "msg": "field required"}},
		})
		return
	}
	u, _ := s.userFor(r)
	d := s.SeedBoard(in.Title, u.ID)
	writeJSON(w, http.StatusCreated, d.Board)
}

func (s *Server) updateBoard(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	var in types.UpdateBoardRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	b, ok := s.boards[id]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Board")
		return
	}
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.IsArchived != nil {
		b.IsArchived = *in.IsArchived
	}
	out := *b
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteBoard(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.mu.Lock()
	b, ok := s.boards[id]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Board")
		return
	}
	u, _ := s.userForLocked(r)
	if b.OwnerID != u.ID && u.Role != types.RoleAdmin {
		s.mu.Unlock()
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Not enough permissions"})
		return
	}
	delete(s.boards, id)
	for cid, c := range s.columns {
		if c.BoardID == id {
			delete(s.columns, cid)
		}
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listColumns(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.mu.Lock()
	if _, ok := s.boards[id]; !ok {
		s.mu.Unlock()
		notFound(w, "Board")
		return
	}
	cols := s.boardDetailLocked(id).Columns
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, cols)
}

func (s *Server) createColumn(w http.ResponseWriter, r *http.Request) {
	var in types.CreateColumnRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	if _, ok := s.boards[in.BoardID]; !ok {
		s.mu.Unlock()
		notFound(w, "Board")
		return
	}
	c := &types.Column{ID: s.newIDLocked(), BoardID: in.BoardID, Title: in.Title, Color: in.Color, Position: in.Position, CreatedAt: time.Now().UTC()}
	s.columns[c.ID] = c
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) updateColumn(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	var in types.UpdateColumnRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c, ok := s.columns[id]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Column")
		return
	}
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Position != nil {
		c.Position = *in.Position
	}
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteColumn(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.mu.Lock()
	delete(s.columns, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) blob(contentType, filename string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, _ = w.Write([]byte("blob:" + mux.Vars(r)["id"]))
	}
}
