package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ListContacts returns contacts, filtered by search when non-empty.
func ListContacts(ctx context.Context, rc *resty.Client, search string) ([]types.Contact, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	if search != "" {
		req.SetQueryParam("search", search)
	}
	var out []types.Contact
	if err := execute(req, "list contacts", http.MethodGet, "/contacts/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetContact retrieves one contact.
func GetContact(ctx context.Context, rc *resty.Client, contactID int) (*types.Contact, error) {
	if err := types.ValidateID(contactID, "contactId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Contact
	if err := execute(req, "get contact", http.MethodGet, "/contacts/"+itoa(contactID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateContact creates a contact.
func CreateContact(ctx context.Context, rc *resty.Client, in types.ContactRequest) (*types.Contact, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Contact
	if err := execute(req.SetBody(in), "create contact", http.MethodPost, "/contacts/", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateContact replaces a contact's fields.
func UpdateContact(ctx context.Context, rc *resty.Client, contactID int, in types.ContactRequest) (*types.Contact, error) {
	if err := types.ValidateID(contactID, "contactId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Contact
	if err := execute(req.SetBody(in), "update contact", http.MethodPut, "/contacts/"+itoa(contactID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteContact deletes a contact.
func DeleteContact(ctx context.Context, rc *resty.Client, contactID int) error {
	if err := types.ValidateID(contactID, "contactId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete contact", http.MethodDelete, "/contacts/"+itoa(contactID), nil)
}
