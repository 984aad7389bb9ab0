package apitest

import (
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/workdesk/workdesk-client/internal/types"
)

func (s *Server) miscRoutes(r *mux.Router) {
	r.HandleFunc("/contacts/", s.listContacts).Methods("GET")
	r.HandleFunc("/contacts/", s.createContact).Methods("POST")
	r.HandleFunc("/contacts/{id:[0-9]+}", s.getContact).Methods("GET")
	r.HandleFunc("/contacts/{id:[0-9]+}", s.updateContact).Methods("PUT")
	r.HandleFunc("/contacts/{id:[0-9]+}", s.deleteContact).Methods("DELETE")

	r.HandleFunc("/notifications/", s.listNotifications).Methods("GET")
	r.HandleFunc("/notifications/unread-count", s.unreadCount).Methods("GET")
	r.HandleFunc("/notifications/mark-all-read", s.markAllRead).Methods("POST")
	r.HandleFunc("/notifications/{id:[0-9]+}", s.markRead).Methods("PUT")
	r.HandleFunc("/notifications/{id:[0-9]+}", s.deleteNotification).Methods("DELETE")

	r.HandleFunc("/calendar/", s.listEvents).Methods("GET")
	r.HandleFunc("/calendar/", s.createEvent).Methods("POST")
	r.HandleFunc("/calendar/{id:[0-9]+}", s.getEvent).Methods("GET")
	r.HandleFunc("/calendar/{id:[0-9]+}", s.updateEvent).Methods("PUT")
	r.HandleFunc("/calendar/{id:[0-9]+}", s.deleteEvent).Methods("DELETE")

	r.HandleFunc("/files/", s.listFiles).Methods("GET")
	r.HandleFunc("/files/upload", s.uploadFile).Methods("POST")
	r.HandleFunc("/files/{id:[0-9]+}/download", s.downloadFile).Methods("GET")
	r.HandleFunc("/files/{id:[0-9]+}", s.deleteFile).Methods("DELETE")

	r.HandleFunc("/search/", s.search).Methods("GET")

	r.HandleFunc("/chat/conversations", s.listConversations).Methods("GET")
	r.HandleFunc("/chat/conversations", s.createConversation).Methods("POST")
	r.HandleFunc("/chat/conversations/{id:[0-9]+}", s.getConversation).Methods("GET")
	r.HandleFunc("/chat/conversations/{id:[0-9]+}", s.deleteConversation).Methods("DELETE")
	r.HandleFunc("/chat/conversations/{id:[0-9]+}/messages", s.sendMessage).Methods("POST")
	r.HandleFunc("/chat/conversations/{id:[0-9]+}/read-all", s.ack("ok")).Methods("POST")
	r.HandleFunc("/chat/messages/{id:[0-9]+}/read", s.ack("ok")).Methods("POST")

	r.HandleFunc("/reports/{kind}", s.report).Methods("GET")
}

// ------------------------------
// Contacts
// ------------------------------

// SeedContact creates a contact owned by ownerID.
func (s *Server) SeedContact(company string, ownerID int) types.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &types.Contact{ID: s.newIDLocked(), CompanyName: company, Type: "client", CreatedByID: ownerID, CreatedAt: time.Now().UTC()}
	s.contacts[c.ID] = c
	return *c
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("search"))
	s.mu.Lock()
	out := []types.Contact{}
	for _, c := range s.contacts {
		if q == "" || strings.Contains(strings.ToLower(c.CompanyName), q) {
			out = append(out, *c)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var in types.ContactRequest
	if !decode(w, r, &in) {
		return
	}
	u, _ := s.userFor(r)
	c := s.SeedContact(in.CompanyName, u.ID)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c, ok := s.contacts[pathID(r, "id")]
	var out types.Contact
	if ok {
		out = *c
	}
	s.mu.Unlock()
	if !ok {
		notFound(w, "Contact")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	var in types.ContactRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c, ok := s.contacts[pathID(r, "id")]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Contact")
		return
	}
	if in.CompanyName != "" {
		c.CompanyName = in.CompanyName
	}
	c.Email, c.Phone, c.Notes = in.Email, in.Phone, in.Notes
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.contacts, pathID(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------
// Notifications
// ------------------------------

// SeedNotification adds an unread notification for userID.
func (s *Server) SeedNotification(userID int, title string) types.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := &types.Notification{ID: s.newIDLocked(), UserID: userID, Type: "card_assigned", Title: title, Message: title, CreatedAt: time.Now().UTC()}
	s.notifications[n.ID] = n
	return *n
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	unread := r.URL.Query().Get("unread_only") == "true"
	u, _ := s.userFor(r)
	s.mu.Lock()
	out := []types.Notification{}
	for _, n := range s.notifications {
		if n.UserID == u.ID && (!unread || !n.IsRead) {
			out = append(out, *n)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	u, _ := s.userFor(r)
	s.mu.Lock()
	n := 0
	for _, x := range s.notifications {
		if x.UserID == u.ID && !x.IsRead {
			n++
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, types.UnreadCount{Count: n})
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n, ok := s.notifications[pathID(r, "id")]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Notification")
		return
	}
	n.IsRead = true
	out := *n
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.notifications, pathID(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) markAllRead(w http.ResponseWriter, r *http.Request) {
	u, _ := s.userFor(r)
	s.mu.Lock()
	for _, n := range s.notifications {
		if n.UserID == u.ID {
			n.IsRead = true
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, types.Ack{Message: "All notifications marked as read"})
}

// ------------------------------
// Calendar
// ------------------------------

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	start, _ := time.Parse(time.RFC3339, r.URL.Query().Get("start_date"))
	end, _ := time.Parse(time.RFC3339, r.URL.Query().Get("end_date"))
	s.mu.Lock()
	out := []types.CalendarEvent{}
	for _, e := range s.events {
		if !start.IsZero() && e.StartDate.Before(start) {
			continue
		}
		if !end.IsZero() && e.StartDate.After(end) {
			continue
		}
		out = append(out, *e)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var in types.CalendarEventRequest
	if !decode(w, r, &in) {
		return
	}
	if in.StartDate == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "start_date"}, "msg": "field required"}},
		})
		return
	}
	u, _ := s.userFor(r)
	s.mu.Lock()
	e := &types.CalendarEvent{
		ID: s.newIDLocked(), Title: in.Title, Description: in.Description, StartDate: *in.StartDate,
		EndDate: in.EndDate, AllDay: in.AllDay, Color: in.Color, CardID: in.CardID, CreatedByID: u.ID,
		CreatedAt: time.Now().UTC(),
	}
	s.events[e.ID] = e
	out := *e
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	e, ok := s.events[pathID(r, "id")]
	var out types.CalendarEvent
	if ok {
		out = *e
	}
	s.mu.Unlock()
	if !ok {
		notFound(w, "Event")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	var in types.CalendarEventRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	e, ok := s.events[pathID(r, "id")]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Event")
		return
	}
	if in.Title != "" {
		e.Title = in.Title
	}
	if in.StartDate != nil {
		e.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		e.EndDate = in.EndDate
	}
	out := *e
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.events, pathID(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------
// Files
// ------------------------------

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := []types.File{}
	for _, f := range s.files {
		out = append(out, f.meta)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid multipart body"})
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "file is required"})
		return
	}
	defer func() { _ = f.Close() }()
	data, _ := io.ReadAll(f)
	cardID, _ := strconv.Atoi(r.FormValue("card_id"))
	u, _ := s.userFor(r)

	s.mu.Lock()
	meta := types.File{
		ID: s.newIDLocked(), OriginalFilename: hdr.Filename, FileSize: int64(len(data)),
		CardID: &cardID, UploadedByID: u.ID, CreatedAt: time.Now().UTC(),
	}
	if days, err := strconv.Atoi(r.FormValue("retention_days")); err == nil {
		meta.RetentionDays = &days
	}
	s.files[meta.ID] = &storedFile{meta: meta, data: data}
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, meta)
}

func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f, ok := s.files[pathID(r, "id")]
	s.mu.Unlock()
	if !ok {
		notFound(w, "File")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.meta.OriginalFilename+`"`)
	_, _ = w.Write(f.data)
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.files, pathID(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------
// Search, chat, reports
// ------------------------------

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	if len(q) < 2 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "Query must be at least 2 characters"})
		return
	}
	res := types.SearchResults{Boards: []types.SearchHit{}, Cards: []types.SearchHit{}, Contacts: []types.SearchHit{}, Comments: []types.SearchHit{}}
	s.mu.Lock()
	for _, b := range s.boards {
		if strings.Contains(strings.ToLower(b.Title), q) {
			res.Boards = append(res.Boards, types.SearchHit{ID: b.ID, Title: b.Title, Type: "board"})
		}
	}
	for _, c := range s.cards {
		if strings.Contains(strings.ToLower(c.Title), q) {
			res.Cards = append(res.Cards, types.SearchHit{ID: c.ID, Title: c.Title, Type: "card"})
		}
	}
	for _, c := range s.contacts {
		if strings.Contains(strings.ToLower(c.CompanyName), q) {
			res.Contacts = append(res.Contacts, types.SearchHit{ID: c.ID, Title: c.CompanyName, Type: "contact"})
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := []types.Conversation{}
	for _, c := range s.conversations {
		out = append(out, *c)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createConversation(w http.ResponseWriter, r *http.Request) {
	var in types.CreateConversationRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	c := &types.Conversation{ID: s.newIDLocked(), Type: in.Type, Title: in.Title, CreatedAt: time.Now().UTC(), Messages: []types.Message{}}
	for _, id := range in.ParticipantIDs {
		if a := s.findAccountLocked(id); a != nil {
			c.Participants = append(c.Participants, a.user)
		}
	}
	s.conversations[c.ID] = c
	out := *c
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c, ok := s.conversations[pathID(r, "id")]
	var out types.Conversation
	if ok {
		out = *c
	}
	s.mu.Unlock()
	if !ok {
		notFound(w, "Conversation")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteConversation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.conversations, pathID(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var in types.SendMessageRequest
	if !decode(w, r, &in) {
		return
	}
	u, _ := s.userFor(r)
	s.mu.Lock()
	c, ok := s.conversations[pathID(r, "id")]
	if !ok {
		s.mu.Unlock()
		notFound(w, "Conversation")
		return
	}
	m := types.Message{ID: s.newIDLocked(), ConversationID: c.ID, SenderID: u.ID, Content: in.Content, LinkedCardID: in.LinkedCardID, CreatedAt: time.Now().UTC()}
	c.Messages = append(c.Messages, m)
	c.LastMessage = &m
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	if !s.requireRole(w, r, types.RoleAdmin, types.RoleManager) {
		return
	}
	params := map[string]string{}
	for k := range r.URL.Query() {
		params[k] = r.URL.Query().Get(k)
	}
	writeJSON(w, http.StatusOK, map[string]any{"kind": mux.Vars(r)["kind"], "params": params})
}
