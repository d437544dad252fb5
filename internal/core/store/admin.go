package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/ports"
)

// CollectionState is the loading flag and last error of one collection.
// Users and roles each carry their own, so a failing users fetch and a
// failing roles fetch stay distinguishable.
type CollectionState struct {
	Loading bool
	Err     string
}

// AdminSnapshot is an immutable view of the admin resource state.
type AdminSnapshot struct {
	Users      []domain.User
	Roles      []domain.Role
	UsersState CollectionState
	RolesState CollectionState
}

// AdminStore mirrors the backend's user and role listings. Each collection
// is exactly the last successful full listing plus any reconciled
// creates, merges, and deletions since; there is no freshness guarantee
// beyond the last fetch.
type AdminStore struct {
	mu         sync.Mutex
	users      []domain.User
	roles      []domain.Role
	usersState CollectionState
	rolesState CollectionState

	usersAPI ports.UserAPI
	rolesAPI ports.RoleAPI
	log      zerolog.Logger
	subs     map[int]func(AdminSnapshot)
	next     int
}

func NewAdminStore(usersAPI ports.UserAPI, rolesAPI ports.RoleAPI, log zerolog.Logger) *AdminStore {
	return &AdminStore{
		usersAPI: usersAPI,
		rolesAPI: rolesAPI,
		log:      log,
		subs:     make(map[int]func(AdminSnapshot)),
	}
}

// FetchUsers replaces the users collection with the backend's full listing.
// Last write wins; nothing accumulates across calls.
func (s *AdminStore) FetchUsers(ctx context.Context) error {
	s.set(func() {
		s.usersState = CollectionState{Loading: true}
	})

	users, err := s.usersAPI.GetAll(ctx)
	if err != nil {
		s.set(func() {
			s.usersState = CollectionState{Err: adminError(err)}
		})
		s.log.Warn().Err(err).Msg("fetching users failed")
		return err
	}

	s.set(func() {
		s.users = users
		s.usersState = CollectionState{}
	})
	return nil
}

// FetchRoles replaces the roles collection with the backend's full listing.
func (s *AdminStore) FetchRoles(ctx context.Context) error {
	s.set(func() {
		s.rolesState = CollectionState{Loading: true}
	})

	roles, err := s.rolesAPI.GetAll(ctx)
	if err != nil {
		s.set(func() {
			s.rolesState = CollectionState{Err: adminError(err)}
		})
		s.log.Warn().Err(err).Msg("fetching roles failed")
		return err
	}

	s.set(func() {
		s.roles = roles
		s.rolesState = CollectionState{}
	})
	return nil
}

// CreateUser sends the create to the backend and appends the echoed record,
// with its server-assigned identifier, to the collection. On failure nothing
// is appended.
func (s *AdminStore) CreateUser(ctx context.Context, input domain.UserPatch) (*domain.User, error) {
	created, err := s.usersAPI.Create(ctx, input)
	if err != nil {
		s.set(func() {
			s.usersState.Err = adminError(err)
		})
		s.log.Warn().Err(err).Msg("creating user failed")
		return nil, err
	}

	s.set(func() {
		s.users = append(s.users, *created)
	})
	return created, nil
}

// UpdateUser sends a partial update and merges only the fields the backend
// echoes back into the matching record. An id with no local record is a
// silent no-op; on failure the collection is untouched.
func (s *AdminStore) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) error {
	echo, err := s.usersAPI.Update(ctx, id, patch)
	if err != nil {
		s.set(func() {
			s.usersState.Err = adminError(err)
		})
		s.log.Warn().Err(err).Str("user_id", id).Msg("updating user failed")
		return err
	}

	s.set(func() {
		for i := range s.users {
			if s.users[i].ID == id {
				s.users[i].Apply(echo)
				return
			}
		}
	})
	return nil
}

// DeleteUser removes the record locally only after the backend confirms the
// delete. A failing repeat delete cannot resurrect or duplicate anything.
func (s *AdminStore) DeleteUser(ctx context.Context, id string) error {
	if err := s.usersAPI.Delete(ctx, id); err != nil {
		s.set(func() {
			s.usersState.Err = adminError(err)
		})
		s.log.Warn().Err(err).Str("user_id", id).Msg("deleting user failed")
		return err
	}

	s.set(func() {
		kept := s.users[:0]
		for _, u := range s.users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		s.users = kept
	})
	return nil
}

// CreateRole mirrors CreateUser for roles.
func (s *AdminStore) CreateRole(ctx context.Context, input domain.RolePatch) (*domain.Role, error) {
	created, err := s.rolesAPI.Create(ctx, input)
	if err != nil {
		s.set(func() {
			s.rolesState.Err = adminError(err)
		})
		s.log.Warn().Err(err).Msg("creating role failed")
		return nil, err
	}

	s.set(func() {
		s.roles = append(s.roles, *created)
	})
	return created, nil
}

// UpdateRole mirrors UpdateUser for roles.
func (s *AdminStore) UpdateRole(ctx context.Context, id string, patch domain.RolePatch) error {
	echo, err := s.rolesAPI.Update(ctx, id, patch)
	if err != nil {
		s.set(func() {
			s.rolesState.Err = adminError(err)
		})
		s.log.Warn().Err(err).Str("role_id", id).Msg("updating role failed")
		return err
	}

	s.set(func() {
		for i := range s.roles {
			if s.roles[i].ID == id {
				s.roles[i].Apply(echo)
				return
			}
		}
	})
	return nil
}

// DeleteRole mirrors DeleteUser for roles.
func (s *AdminStore) DeleteRole(ctx context.Context, id string) error {
	if err := s.rolesAPI.Delete(ctx, id); err != nil {
		s.set(func() {
			s.rolesState.Err = adminError(err)
		})
		s.log.Warn().Err(err).Str("role_id", id).Msg("deleting role failed")
		return err
	}

	s.set(func() {
		kept := s.roles[:0]
		for _, r := range s.roles {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		s.roles = kept
	})
	return nil
}

// UpdateRolePermissions replaces a role's permission set through the
// dedicated backend endpoint and reconciles the echoed role.
func (s *AdminStore) UpdateRolePermissions(ctx context.Context, id string, permissions []domain.Permission) (*domain.Role, error) {
	updated, err := s.rolesAPI.UpdatePermissions(ctx, id, permissions)
	if err != nil {
		s.set(func() {
			s.rolesState.Err = adminError(err)
		})
		s.log.Warn().Err(err).Str("role_id", id).Msg("updating role permissions failed")
		return nil, err
	}

	s.set(func() {
		for i := range s.roles {
			if s.roles[i].ID == id {
				s.roles[i] = *updated
				return
			}
		}
	})
	return updated, nil
}

// Snapshot returns a deep copy of the current admin state.
func (s *AdminStore) Snapshot() AdminSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for change notifications and returns its
// unsubscribe function. fn runs outside the store lock.
func (s *AdminStore) Subscribe(fn func(AdminSnapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *AdminStore) snapshotLocked() AdminSnapshot {
	snap := AdminSnapshot{
		Users:      make([]domain.User, len(s.users)),
		Roles:      make([]domain.Role, len(s.roles)),
		UsersState: s.usersState,
		RolesState: s.rolesState,
	}
	copy(snap.Users, s.users)
	for i, r := range s.roles {
		r.Permissions = append([]domain.Permission(nil), r.Permissions...)
		snap.Roles[i] = r
	}
	return snap
}

func (s *AdminStore) set(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()
	subs := make([]func(AdminSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// adminError records the backend message when one was supplied, otherwise
// the raw error text.
func adminError(err error) string {
	var se *domain.ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
