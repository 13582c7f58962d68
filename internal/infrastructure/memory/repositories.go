package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/promisor/internal/domain/entity"
	"github.com/oksasatya/promisor/internal/domain/repository"
)

type memberRepo struct{ s *Store }

func (r *memberRepo) Create(_ context.Context, m *entity.Member) error {
	return r.s.do(func(st *state) error {
		for _, existing := range st.members {
			if existing.Email == m.Email {
				return repository.ErrDuplicate
			}
		}
		m.ID = newID()
		st.members[m.ID] = *m
		return nil
	})
}

func (r *memberRepo) GetByID(_ context.Context, id string) (*entity.Member, error) {
	var out *entity.Member
	err := r.s.do(func(st *state) error {
		m, ok := st.members[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &m
		return nil
	})
	return out, err
}

func (r *memberRepo) GetByEmail(_ context.Context, email string) (*entity.Member, error) {
	var out *entity.Member
	err := r.s.do(func(st *state) error {
		for _, m := range st.members {
			if m.Email == email {
				out = &m
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *memberRepo) UpdateStatus(_ context.Context, id string, status entity.Status, at time.Time) error {
	return r.s.do(func(st *state) error {
		m, ok := st.members[id]
		if !ok {
			return repository.ErrNotFound
		}
		m.Status = status
		m.UpdatedAt = at
		st.members[id] = m
		return nil
	})
}

type tokenRepo struct{ s *Store }

func (r *tokenRepo) Create(_ context.Context, t *entity.ConfirmationToken) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.tokens[t.Token]; ok {
			return repository.ErrDuplicate
		}
		t.ID = newID()
		st.tokens[t.Token] = copyToken(*t)
		return nil
	})
}

func (r *tokenRepo) GetByToken(_ context.Context, token string) (*entity.ConfirmationToken, error) {
	var out *entity.ConfirmationToken
	err := r.s.do(func(st *state) error {
		t, ok := st.tokens[token]
		if !ok {
			return repository.ErrNotFound
		}
		t = copyToken(t)
		out = &t
		return nil
	})
	return out, err
}

func (r *tokenRepo) MarkConfirmed(_ context.Context, token string, at time.Time) (bool, error) {
	changed := false
	err := r.s.do(func(st *state) error {
		t, ok := st.tokens[token]
		if !ok || t.ConfirmedAt != nil {
			return nil
		}
		t.ConfirmedAt = &at
		t.UpdatedAt = at
		st.tokens[token] = t
		changed = true
		return nil
	})
	return changed, err
}

func copyToken(t entity.ConfirmationToken) entity.ConfirmationToken {
	if t.ConfirmedAt != nil {
		at := *t.ConfirmedAt
		t.ConfirmedAt = &at
	}
	return t
}

type relationRepo struct{ s *Store }

func (r *relationRepo) Create(_ context.Context, rel *entity.Relation) error {
	return r.s.do(func(st *state) error {
		for _, e := range st.relations {
			if e.OwnerID == rel.OwnerID && e.FriendID == rel.FriendID {
				return repository.ErrDuplicate
			}
		}
		rel.ID = newID()
		st.relations[rel.ID] = *rel
		return nil
	})
}

func (r *relationRepo) Exists(_ context.Context, ownerID, friendID string) (bool, error) {
	found := false
	err := r.s.do(func(st *state) error {
		for _, e := range st.relations {
			if e.OwnerID == ownerID && e.FriendID == friendID {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *relationRepo) ListFriends(_ context.Context, ownerID string) ([]*entity.Member, error) {
	var out []*entity.Member
	err := r.s.do(func(st *state) error {
		type friend struct {
			since  time.Time
			member entity.Member
		}
		friends := make([]friend, 0)
		for _, e := range st.relations {
			if e.OwnerID != ownerID {
				continue
			}
			if m, ok := st.members[e.FriendID]; ok {
				friends = append(friends, friend{since: e.CreatedAt, member: m})
			}
		}
		// same order as ORDER BY r.created_at, m.email
		sort.SliceStable(friends, func(i, j int) bool {
			a, b := friends[i], friends[j]
			if !a.since.Equal(b.since) {
				return a.since.Before(b.since)
			}
			return a.member.Email < b.member.Email
		})
		for i := range friends {
			out = append(out, &friends[i].member)
		}
		return nil
	})
	return out, err
}

type banDateRepo struct{ s *Store }

func (r *banDateRepo) Create(_ context.Context, p *entity.PersonalBanDate) error {
	return r.s.do(func(st *state) error {
		for _, e := range st.banDates {
			if e.MemberID == p.MemberID && e.Date.Equal(p.Date) {
				return repository.ErrDuplicate
			}
		}
		p.ID = newID()
		st.banDates[p.ID] = *p
		return nil
	})
}

func (r *banDateRepo) GetByID(_ context.Context, id string) (*entity.PersonalBanDate, error) {
	var out *entity.PersonalBanDate
	err := r.s.do(func(st *state) error {
		p, ok := st.banDates[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *banDateRepo) UpdateStatus(_ context.Context, p *entity.PersonalBanDate) error {
	return r.s.do(func(st *state) error {
		cur, ok := st.banDates[p.ID]
		if !ok {
			return repository.ErrNotFound
		}
		cur.DateStatus = p.DateStatus
		cur.UpdatedAt = p.UpdatedAt
		st.banDates[p.ID] = cur
		return nil
	})
}

func (r *banDateRepo) ListByMember(_ context.Context, memberID string, from, to time.Time) ([]*entity.PersonalBanDate, error) {
	var out []*entity.PersonalBanDate
	err := r.s.do(func(st *state) error {
		for _, p := range st.banDates {
			if p.MemberID != memberID {
				continue
			}
			if !from.IsZero() && p.Date.Before(entity.Day(from)) {
				continue
			}
			if !to.IsZero() && p.Date.After(entity.Day(to)) {
				continue
			}
			p := p // per-iteration copy (go 1.21 loop semantics)
			out = append(out, &p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
		return nil
	})
	return out, err
}
