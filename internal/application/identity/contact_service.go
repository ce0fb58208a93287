package identity

import (
	"context"

	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ContactService manages a user's delivery contacts
type ContactService struct {
	txScope     TransactionScope
	contactRepo identity.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(txScope TransactionScope, contactRepo identity.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		txScope:     txScope,
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// List returns the actor's own contacts
func (s *ContactService) List(ctx context.Context, actor access.Actor) ([]ContactResponse, error) {
	contacts, err := s.contactRepo.FindByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	responses := make([]ContactResponse, len(contacts))
	for i, c := range contacts {
		responses[i] = ToContactResponse(c)
	}
	return responses, nil
}

// Create adds a contact for the actor
func (s *ContactService) Create(ctx context.Context, actor access.Actor, req ContactRequest) (*ContactResponse, error) {
	contact, err := identity.NewContact(actor.UserID, req.toAddress())
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Info("Contact created", zap.Uint64("contact_id", contact.ID), zap.Uint64("user_id", actor.UserID))
	resp := ToContactResponse(contact)
	return &resp, nil
}

// GetByID returns a contact of the actor. Foreign contacts read as not found.
func (s *ContactService) GetByID(ctx context.Context, actor access.Actor, id uint64) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.IsContactOwnerOrAdmin(actor, contact) {
		return nil, identity.ErrContactNotFound
	}
	resp := ToContactResponse(contact)
	return &resp, nil
}

// Update replaces the contact's address and phone
func (s *ContactService) Update(ctx context.Context, actor access.Actor, id uint64, req ContactRequest) (*ContactResponse, error) {
	var contact *identity.Contact
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		contact, err = repos.ContactRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsContactOwnerOrAdmin(actor, contact) {
			return shared.ErrForbidden
		}
		if err := contact.Update(req.toAddress()); err != nil {
			return err
		}
		return repos.ContactRepo().Update(ctx, contact)
	})
	if err != nil {
		return nil, err
	}

	resp := ToContactResponse(contact)
	return &resp, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, actor access.Actor, id uint64) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		contact, err := repos.ContactRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsContactOwnerOrAdmin(actor, contact) {
			return shared.ErrForbidden
		}
		return repos.ContactRepo().Delete(ctx, id)
	})
}
