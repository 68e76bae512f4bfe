// Package groups manages study groups.
package groups

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/validate"
)

const DefaultMaxMembers = 10

var (
	ErrNotFound  = errors.New("study group not found")
	ErrGroupFull = errors.New("study group is full")
	ErrOwner     = errors.New("the owner cannot leave their group")
)

type NewGroup struct {
	Name        string `json:"name" validate:"notblank,max=80"`
	Topic       string `json:"topic" validate:"notblank,max=80"`
	Description string `json:"description" validate:"max=500"`
	OwnerID     string `json:"ownerId" validate:"required"`
	MaxMembers  int    `json:"maxMembers" validate:"gte=0,lte=100"`
}

type Service struct {
	groups     store.StudyGroupRepo
	activities store.ActivityRepo
	log        *logger.Logger
	now        func() time.Time
}

func New(st *store.Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		groups:     st.StudyGroupRepo(),
		activities: st.ActivityRepo(),
		log:        log.With("component", "groups"),
		now:        time.Now,
	}
}

// Create makes a group with its owner as the first member. MaxMembers 0
// means DefaultMaxMembers.
func (s *Service) Create(ctx context.Context, ng NewGroup) (*store.StudyGroup, error) {
	if err := validate.Struct(ng); err != nil {
		return nil, err
	}
	if ng.MaxMembers == 0 {
		ng.MaxMembers = DefaultMaxMembers
	}
	g := &store.StudyGroup{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(ng.Name),
		Topic:       strings.TrimSpace(ng.Topic),
		Description: ng.Description,
		OwnerID:     ng.OwnerID,
		MemberIDs:   []string{ng.OwnerID},
		MaxMembers:  ng.MaxMembers,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.groups.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save group: %w", err)
	}
	if err := s.recordJoin(ctx, g, ng.OwnerID); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) get(ctx context.Context, id string) (*store.StudyGroup, error) {
	g, err := s.groups.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

// Join adds userID to the group. Joining a group twice is a no-op.
func (s *Service) Join(ctx context.Context, groupID, userID string) (*store.StudyGroup, error) {
	g, err := s.get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g.HasMember(userID) {
		return g, nil
	}
	if len(g.MemberIDs) >= g.MaxMembers {
		return nil, ErrGroupFull
	}
	g.MemberIDs = append(g.MemberIDs, userID)
	if err := s.groups.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save group: %w", err)
	}
	if err := s.recordJoin(ctx, g, userID); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) recordJoin(ctx context.Context, g *store.StudyGroup, userID string) error {
	a := store.NewActivity(userID, store.ActivityGroupJoined, "Joined "+g.Name, g.Topic, g.ID, s.now())
	if err := s.activities.Append(ctx, &a); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	s.log.Info("joined group", "group_id", g.ID, "user_id", userID)
	return nil
}

// Leave removes userID from the group. Non-members are ignored.
func (s *Service) Leave(ctx context.Context, groupID, userID string) (*store.StudyGroup, error) {
	g, err := s.get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID == userID {
		return nil, ErrOwner
	}
	if !g.HasMember(userID) {
		return g, nil
	}
	kept := make([]string, 0, len(g.MemberIDs)-1)
	for _, id := range g.MemberIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	g.MemberIDs = kept
	if err := s.groups.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save group: %w", err)
	}
	return g, nil
}

// List returns all groups, optionally filtered by a case-insensitive topic
// substring, ordered by name.
func (s *Service) List(ctx context.Context, topic string) ([]store.StudyGroup, error) {
	all, err := s.groups.All(ctx)
	if err != nil {
		return nil, err
	}
	topic = strings.ToLower(strings.TrimSpace(topic))
	out := all[:0]
	for _, g := range all {
		if topic == "" || strings.Contains(strings.ToLower(g.Topic), topic) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Service) ForUser(ctx context.Context, userID string) ([]store.StudyGroup, error) {
	return s.groups.ByMember(ctx, userID)
}
