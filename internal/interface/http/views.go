package handlers

import (
	"time"

	"github.com/oksasatya/promisor/internal/domain/entity"
	"github.com/oksasatya/promisor/pkg/helpers"
)

type memberView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Telephone string    `json:"telephone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toMemberView(m *entity.Member) memberView {
	return memberView{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Telephone: m.Telephone,
		Role:      string(m.Role),
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

type banDateView struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toBanDateView(p *entity.PersonalBanDate) banDateView {
	return banDateView{
		ID:        p.ID,
		MemberID:  p.MemberID,
		Date:      p.Date.Format(helpers.DateLayout),
		Status:    string(p.DateStatus),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
