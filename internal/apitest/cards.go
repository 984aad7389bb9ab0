package apitest

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/workdesk/workdesk-client/internal/types"
)

func (s *Server) cardRoutes(r *mux.Router) {
	r.HandleFunc("/cards/", s.listCards).Methods("GET")
	r.HandleFunc("/cards/", s.createCard).Methods("POST")
	r.HandleFunc("/cards/comments", s.createComment).Methods("POST")
	r.HandleFunc("/cards/comments/{id:[0-9]+}/status", s.commentStatus).Methods("PUT")
	r.HandleFunc("/cards/checklists", s.createChecklist).Methods("POST")
	r.HandleFunc("/cards/checklists/{id:[0-9]+}", s.updateChecklist).Methods("PUT")
	r.HandleFunc("/cards/checklists/{id:[0-9]+}", s.deleteChecklist).Methods("DELETE")
	r.HandleFunc("/cards/checklist-items", s.createChecklistItem).Methods("POST")
	r.HandleFunc("/cards/checklist-items/{id:[0-9]+}", s.updateChecklistItem).Methods("PUT")
	r.HandleFunc("/cards/checklist-items/{id:[0-9]+}", s.deleteChecklistItem).Methods("DELETE")
	r.HandleFunc("/cards/{id:[0-9]+}", s.getCard).Methods("GET")
	r.HandleFunc("/cards/{id:[0-9]+}", s.updateCard).Methods("PUT")
	r.HandleFunc("/cards/{id:[0-9]+}", s.deleteCard).Methods("DELETE")
	r.HandleFunc("/cards/{id:[0-9]+}/move", s.moveCard).Methods("POST")
	r.HandleFunc("/cards/{id:[0-9]+}/delete", s.deleteCardConfirm).Methods("POST")
	r.HandleFunc("/cards/{id:[0-9]+}/comments", s.listComments).Methods("GET")
	r.HandleFunc("/cards/{id:[0-9]+}/checklists", s.listChecklists).Methods("GET")
}

// SeedCard puts a card in columnID, optionally assigned to assignee.
func (s *Server) SeedCard(columnID int, title string, assignee *types.User, due *time.Time) types.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &types.Card{ID: s.newIDLocked(), ColumnID: columnID, Title: title, Priority: "medium", DueDate: due, CreatedAt: time.Now().UTC()}
	if assignee != nil {
		c.Assignees = []types.User{*assignee}
	}
	s.cards[c.ID] = c
	return *c
}

func (s *Server) boardOfColumnLocked(columnID int) int {
	if c, ok := s.columns[columnID]; ok {
		return c.BoardID
	}
	return 0
}

func (s *Server) listCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	columnID, _ := strconv.Atoi(q.Get("column_id"))
	boardID, _ := strconv.Atoi(q.Get("board_id"))
	mine := q.Get("assigned_to_me") == "true"
	u, _ := s.userFor(r)

	s.mu.Lock()
	out := []types.Card{}
	for _, c := range s.cards {
		if columnID > 0 && c.ColumnID != columnID {
			continue
		}
		if boardID > 0 && s.boardOfColumnLocked(c.ColumnID) != boardID {
			continue
		}
		if mine && !assigned(c, u.ID) {
			continue
		}
		out = append(out, *c)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func assigned(c *types.Card, userID int) bool {
	for _, a := range c.Assignees {
		if a.ID == userID {
			return true
		}
	}
	return false
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c, ok := s.cards[pathID(r, "id")]
	var out types.Card
	if ok {
		out = *c
	}
	s.mu.Unlock()
	if !ok {
		notFound(w, "Card")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCard(w http.ResponseWriter, r *http.Request) {
	var in types.CreateCardRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	if _, ok := s.columns[in.ColumnID]; !ok {
		s.mu.Unlock()
		notFound(w, "Column")
		return
	}
	c := &types.Card{
		ID: s.newIDLocked(), ColumnID: in.ColumnID, Title: in.Title, Description: in.Description,
		Priority: in.Priority, Position: in.Position, DueDate: in.DueDate, CreatedAt: time.Now().UTC(),
	}
	for _, id := range in.AssigneeIDs {
		if a := s.findAccountLocked(id); a != nil {
			c.Assignees = append(c.Assignees, a.user)
		}
	}
	s.cards[c.ID] = c
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) updateCard(w http.ResponseWriter, r *http.Request) {
	var in types.UpdateCardRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c, ok := s.cards[pathID(r, "id")]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Card")
		return
	}
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Priority != nil {
		c.Priority = *in.Priority
	}
	if in.Completed != nil {
		c.Completed = *in.Completed
	}
	if in.DueDate != nil {
		c.DueDate = in.DueDate
	}
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) moveCard(w http.ResponseWriter, r *http.Request) {
	var in types.MoveCardRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c, ok := s.cards[pathID(r, "id")]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Card")
		return
	}
	c.ColumnID, c.Position = in.ColumnID, in.Position
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteCard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.cards, pathID(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteCardConfirm(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Password string `json:"password"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	u, _ := s.userForLocked(r)
	a := s.findAccountLocked(u.ID)
	if a == nil || a.password != in.Password {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Incorrect password"})
		return
	}
	delete(s.cards, pathID(r, "id"))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, types.Ack{Message: "Card deleted"})
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	cardID := pathID(r, "id")
	s.mu.Lock()
	out := []types.Comment{}
	for _, c := range s.comments {
		if c.CardID == cardID {
			out = append(out, *c)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var in types.CreateCommentRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	u, _ := s.userForLocked(r)
	if _, ok := s.cards[in.CardID]; !ok {
		s.mu.Unlock()
		notFound(w, "Card")
		return
	}
	c := &types.Comment{ID: s.newIDLocked(), CardID: in.CardID, UserID: u.ID, Content: in.Content, CreatedAt: time.Now().UTC()}
	s.comments[c.ID] = c
	card := s.cards[in.CardID]
	card.Comments = append(card.Comments, *c)
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) commentStatus(w http.ResponseWriter, r *http.Request) {
	var in types.CommentStatusRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c, ok := s.comments[pathID(r, "id")]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Comment")
		return
	}
	c.Status, c.Reason = in.Status, in.Reason
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listChecklists(w http.ResponseWriter, r *http.Request) {
	cardID := pathID(r, "id")
	s.mu.Lock()
	out := []types.Checklist{}
	for _, c := range s.checklists {
		if c.CardID == cardID {
			out = append(out, *c)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createChecklist(w http.ResponseWriter, r *http.Request) {
	var in types.CreateChecklistRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c := &types.Checklist{ID: s.newIDLocked(), CardID: in.CardID, Title: in.Title, Items: []types.ChecklistItem{}}
	s.checklists[c.ID] = c
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) updateChecklist(w http.ResponseWriter, r *http.Request) {
	var in types.UpdateChecklistRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c, ok := s.checklists[pathID(r, "id")]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Checklist")
		return
	}
	if in.Title != nil {
		c.Title = *in.Title
	}
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteChecklist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.checklists, pathID(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// itemLocked finds a checklist item and the checklist that holds it.
func (s *Server) itemLocked(id int) (*types.Checklist, int) {
	for _, c := range s.checklists {
		for i := range c.Items {
			if c.Items[i].ID == id {
				return c, i
			}
		}
	}
	return nil, -1
}

func (s *Server) createChecklistItem(w http.ResponseWriter, r *http.Request) {
	var in types.CreateChecklistItemRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c, ok := s.checklists[in.ChecklistID]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Checklist")
		return
	}
	item := types.ChecklistItem{ID: s.newIDLocked(), ChecklistID: c.ID, Content: in.Content, Position: in.Position}
	c.Items = append(c.Items, item)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateChecklistItem(w http.ResponseWriter, r *http.Request) {
	var in types.UpdateChecklistItemRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c, i := s.itemLocked(pathID(r, "id"))
	if c == nil {
		s.mu.Unlock()
		notFound(w, "Checklist item")
		return
	}
	it := &c.Items[i]
	if in.Content != nil {
		it.Content = *in.Content
	}
	if in.Completed != nil {
		it.Completed = *in.Completed
	}
	if in.Position != nil {
		it.Position = *in.Position
	}
	out := *it
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if c, i := s.itemLocked(pathID(r, "id")); c != nil {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
