package repository

import (
	"github.com/lib/pq"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository/dao"
)

func pqStrings(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}

func userToDAO(u domain.User) dao.User {
	return dao.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		RoleName:  u.Role.Name,
		Scopes:    pqStrings(u.Role.Scopes.Strings()),
		Age:       u.Age,
		Address:   u.Address,
		Country:   u.Country,
		TaxNumber: u.TaxNumber,
		MemberID:  u.MemberID,
	}
}

func userToDomain(u dao.User) domain.User {
	user := domain.User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		Role: domain.Role{
			Name:   u.RoleName,
			Scopes: domain.ScopesFromStrings(u.Scopes),
		},
		Age:       u.Age,
		Address:   u.Address,
		Country:   u.Country,
		TaxNumber: u.TaxNumber,
		MemberID:  u.MemberID,
		TicketIDs: make([]uint, 0, len(u.TicketIDs)),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	for _, id := range u.TicketIDs {
		user.TicketIDs = append(user.TicketIDs, uint(id))
	}
	if u.Member != nil {
		member := memberToDomain(*u.Member)
		user.Member = &member
	}

	return user
}

func memberToDAO(m domain.Member) dao.Member {
	return dao.Member{
		ID:             m.ID,
		TaxNumber:      m.TaxNumber,
		Photo:          m.Photo,
		PaymentRegular: m.PaymentRegular,
		Cash:           m.Cash,
	}
}

func memberToDomain(m dao.Member) domain.Member {
	return domain.Member{
		ID:             m.ID,
		TaxNumber:      m.TaxNumber,
		Photo:          m.Photo,
		PaymentRegular: m.PaymentRegular,
		Cash:           m.Cash,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func requestToDomain(r dao.MemberRequest) domain.MemberRequest {
	request := domain.MemberRequest{
		ID:           r.ID,
		UserID:       r.UserID,
		Status:       domain.MemberRequestStatus(r.Status),
		RequestDate:  r.RequestDate,
		ResponseDate: r.ResponseDate,
		AdminID:      r.AdminID,
		Reason:       r.Reason,
	}
	if r.User != nil {
		user := userToDomain(*r.User)
		request.User = &user
	}
	if r.Admin != nil {
		admin := userToDomain(*r.Admin)
		request.Admin = &admin
	}

	return request
}

func sectorsToDAO(sectors []domain.Sector) []dao.Sector {
	if sectors == nil {
		return nil
	}

	out := make([]dao.Sector, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, dao.Sector{
			Sector:      s.Sector,
			Price:       s.Price,
			PriceMember: s.PriceMember,
		})
	}

	return out
}

func stadiumToDomain(s dao.Stadium) domain.Stadium {
	stadium := domain.Stadium{
		ID:        s.ID,
		Name:      s.Name,
		Sectors:   make([]domain.Sector, 0, len(s.Sectors)),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	for _, sec := range s.Sectors {
		stadium.Sectors = append(stadium.Sectors, domain.Sector{
			ID:          sec.ID,
			StadiumID:   sec.StadiumID,
			Sector:      sec.Sector,
			Price:       sec.Price,
			PriceMember: sec.PriceMember,
		})
	}

	return stadium
}

func gameToDomain(g dao.Game) domain.Game {
	game := domain.Game{
		ID:        g.ID,
		Name:      g.Name,
		Date:      g.Date,
		StadiumID: g.StadiumID,
		Image:     g.Image,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if g.Stadium != nil {
		stadium := stadiumToDomain(*g.Stadium)
		game.Stadium = &stadium
	}

	return game
}

func ticketToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:        t.ID,
		Sector:    t.Sector,
		Price:     t.Price,
		GameID:    t.GameID,
		UserID:    t.UserID,
		IsMember:  t.IsMember,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
