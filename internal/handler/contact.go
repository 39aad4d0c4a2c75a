package handler

import (
	"net/http"

	"github.com/ilstam/guitarchords/internal/domain"
)

// ContactRequest is the body of POST /contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendContact handles POST /contact.
func (s *Server) SendContact(w http.ResponseWriter, r *http.Request) {
	var body ContactRequest
	if !decodeBody(w, r, &body) {
		return
	}

	err := s.Contact.Send(r.Context(), domain.ContactMessage{
		Name:    body.Name,
		Email:   body.Email,
		Subject: body.Subject,
		Body:    body.Body,
	})
	if err != nil {
		s.serviceError(w, r, "contact", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
