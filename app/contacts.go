package app

import (
	"context"
	"strings"

	client "github.com/workdesk/workdesk-client"
)

// ContactsPage manages the contact directory.
type ContactsPage struct{ a *App }

// Contacts returns the contacts controller.
func (a *App) Contacts() ContactsPage { return ContactsPage{a} }

// List reads contacts matching search; each search string is its own entry.
func (p ContactsPage) List(ctx context.Context, search string) ([]client.Contact, error) {
	search = strings.TrimSpace(search)
	return read(ctx, p.a, contactsKey(search), func(ctx context.Context) ([]client.Contact, error) {
		return p.a.client.ListContacts(ctx, search)
	})
}

// Create adds a contact.
func (p ContactsPage) Create(ctx context.Context, req client.ContactRequest) (*client.Contact, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Contact, error) {
		return p.a.client.CreateContact(ctx, req)
	}, KeyContacts)
}

// Update edits a contact.
func (p ContactsPage) Update(ctx context.Context, contactID int, req client.ContactRequest) (*client.Contact, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Contact, error) {
		return p.a.client.UpdateContact(ctx, contactID, req)
	}, KeyContacts)
}

// Delete removes a contact.
func (p ContactsPage) Delete(ctx context.Context, contactID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteContact(ctx, contactID)
	}, KeyContacts)
}
