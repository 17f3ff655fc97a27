package response

import "github.com/estadio/stadium-api/internal/domain"

type LoginUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type LoginResponse struct {
	Auth    bool            `json:"auth"`
	Token   string          `json:"token"`
	Decoded domain.Identity `json:"decoded"`
	User    LoginUser       `json:"user"`
}

type LogoutResponse struct {
	Logout bool `json:"logout"`
}

type MemberRequestResponse struct {
	Message string               `json:"message"`
	Request domain.MemberRequest `json:"request"`
}

type PurchaseResponse struct {
	Message  string        `json:"message"`
	Ticket   domain.Ticket `json:"ticket"`
	Price    float64       `json:"price"`
	IsMember bool          `json:"isMember"`
}

type GamesResponse struct {
	Auth       bool            `json:"auth"`
	Games      []domain.Game   `json:"games"`
	Pagination domain.PageInfo `json:"pagination"`
}

type GameResponse struct {
	Auth bool        `json:"auth"`
	Game domain.Game `json:"game"`
}

type StadiumsResponse struct {
	Auth       bool             `json:"auth"`
	Stadiums   []domain.Stadium `json:"stadiums"`
	Pagination domain.PageInfo  `json:"pagination"`
}

type UsersResponse struct {
	Auth  bool          `json:"auth"`
	Users []domain.User `json:"users"`
}

type MembersResponse struct {
	Auth       bool            `json:"auth"`
	Members    []domain.Member `json:"members"`
	Pagination domain.PageInfo `json:"pagination"`
}

type MemberRequestsResponse struct {
	Auth     bool                   `json:"auth"`
	Requests []domain.MemberRequest `json:"requests"`
}

type TicketsResponse struct {
	Auth    bool            `json:"auth"`
	Tickets []domain.Ticket `json:"tickets"`
}
