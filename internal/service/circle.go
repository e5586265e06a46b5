package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
)

// ContactSummary is a circle member shown alongside a client: the person plus
// the metadata of their link.
type ContactSummary struct {
	Person       *domain.Person `json:"person"`
	Role         string         `json:"role"`
	Relationship string         `json:"relationship,omitempty"`
	CanEdit      bool           `json:"can_edit"`
	Notify       bool           `json:"notify"`
}

// ClientSummary is an authorized client from the caregiver's point of view:
// the client, the caregiver's own link metadata, and the client's
// family/friend contacts.
type ClientSummary struct {
	Client        *domain.Person   `json:"client"`
	CaregiverRole string           `json:"caregiver_role"`
	Relationship  string           `json:"relationship,omitempty"`
	CanEdit       bool             `json:"can_edit"`
	Notify        bool             `json:"notify"`
	Family        []ContactSummary `json:"family"`
}

// CircleService answers who a caregiver may see and who is visible around
// each client. Caregiver-like link roles (primary_caregiver, caregiver) grant
// operational access; contact-like roles (family, friend) are informational.
type CircleService struct {
	persons repository.PersonsRepository
	circle  repository.CircleRepository
	logger  *zap.Logger
}

func NewCircleService(persons repository.PersonsRepository, circle repository.CircleRepository, logger *zap.Logger) *CircleService {
	return &CircleService{persons: persons, circle: circle, logger: logger}
}

// RequireCaregiver resolves the id to a person with role caregiver, or
// repository.ErrNotFound.
func (s *CircleService) RequireCaregiver(ctx context.Context, caregiverID int64) (*domain.Person, error) {
	p, err := s.persons.GetPerson(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	if p.Role != domain.RoleCaregiver {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

// AuthorizedClients returns the ids of clients the caregiver has an active
// caregiver-like link to. An empty set is not an error.
func (s *CircleService) AuthorizedClients(ctx context.Context, caregiverID int64) ([]int64, error) {
	if _, err := s.RequireCaregiver(ctx, caregiverID); err != nil {
		return nil, err
	}

	links, err := s.circle.LinksByMember(ctx, caregiverID, domain.CaregiverLinkRoles)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authorized clients: %w", err)
	}

	ids := make([]int64, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.ClientID)
	}
	return ids, nil
}

// ContactsFor returns the client's family/friend circle, excluding the given
// member (normally the requesting caregiver).
func (s *CircleService) ContactsFor(ctx context.Context, clientID, excludingMemberID int64) ([]ContactSummary, error) {
	links, err := s.circle.LinksByClient(ctx, clientID, domain.ContactLinkRoles, excludingMemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	memberIDs := make([]int64, 0, len(links))
	for _, link := range links {
		memberIDs = append(memberIDs, link.MemberID)
	}
	members, err := s.persons.GetPersons(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact persons: %w", err)
	}

	contacts := make([]ContactSummary, 0, len(links))
	for _, link := range links {
		person, ok := members[link.MemberID]
		if !ok {
			// Dangling link; skip rather than fail the whole listing.
			s.logger.Warn("circle link references missing person",
				zap.Int64("client_id", link.ClientID),
				zap.Int64("member_id", link.MemberID),
			)
			continue
		}
		contacts = append(contacts, ContactSummary{
			Person:       person,
			Role:         link.Role,
			Relationship: link.Relationship,
			CanEdit:      link.CanEdit,
			Notify:       link.Notify,
		})
	}
	return contacts, nil
}

// ListClients returns a ClientSummary per authorized client, with each
// client's contact list (excluding the requesting caregiver).
func (s *CircleService) ListClients(ctx context.Context, caregiverID int64) ([]ClientSummary, error) {
	caregiver, err := s.RequireCaregiver(ctx, caregiverID)
	if err != nil {
		return nil, err
	}

	links, err := s.circle.LinksByMember(ctx, caregiverID, domain.CaregiverLinkRoles)
	if err != nil {
		return nil, fmt.Errorf("failed to list caregiver links: %w", err)
	}
	if len(links) == 0 {
		return []ClientSummary{}, nil
	}

	clientIDs := make([]int64, 0, len(links))
	for _, link := range links {
		clientIDs = append(clientIDs, link.ClientID)
	}
	clients, err := s.persons.GetPersons(ctx, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}

	summaries := make([]ClientSummary, 0, len(links))
	for _, link := range links {
		client, ok := clients[link.ClientID]
		if !ok {
			continue
		}
		family, err := s.ContactsFor(ctx, link.ClientID, caregiver.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ClientSummary{
			Client:        client,
			CaregiverRole: link.Role,
			Relationship:  link.Relationship,
			CanEdit:       link.CanEdit,
			Notify:        link.Notify,
			Family:        family,
		})
	}
	return summaries, nil
}

// UpsertLink creates or updates the caregiver's link to a client. Idempotent
// by (client, member): an existing link has its role/can_edit/notify
// overwritten, while relationship is only replaced by a non-empty value.
func (s *CircleService) UpsertLink(ctx context.Context, caregiverID, clientID int64, role, relationship string, canEdit, notify bool) (*ClientSummary, error) {
	caregiver, err := s.RequireCaregiver(ctx, caregiverID)
	if err != nil {
		return nil, err
	}

	client, err := s.persons.GetPerson(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Role != domain.RoleUser {
		return nil, repository.ErrNotFound
	}

	// Relationship preservation happens here, not in SQL, so the policy is
	// explicit and testable. Concurrent upserts race; last write wins.
	if relationship == "" {
		existing, err := s.circle.GetLink(ctx, clientID, caregiver.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to load existing link: %w", err)
		}
		if existing != nil {
			relationship = existing.Relationship
		}
	}

	link := &domain.CircleLink{
		ClientID:     clientID,
		MemberID:     caregiver.ID,
		Role:         role,
		Relationship: relationship,
		CanEdit:      canEdit,
		Notify:       notify,
	}
	if err := s.circle.UpsertLink(ctx, link); err != nil {
		return nil, err
	}

	return &ClientSummary{
		Client:        client,
		CaregiverRole: link.Role,
		Relationship:  link.Relationship,
		CanEdit:       link.CanEdit,
		Notify:        link.Notify,
		Family:        []ContactSummary{},
	}, nil
}
