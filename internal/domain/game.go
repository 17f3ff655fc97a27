package domain

import "time"

type Game struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	StadiumID *uint     `json:"stadiumId,omitempty"`
	Stadium   *Stadium  `json:"stadium,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Pagination struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

type PageInfo struct {
	PageSize int   `json:"pageSize"`
	Page     int   `json:"page"`
	HasMore  bool  `json:"hasMore"`
	Total    int64 `json:"total"`
}

func NewPageInfo(p Pagination, total int64) PageInfo {
	info := PageInfo{PageSize: p.Limit, Total: total}
	if p.Limit > 0 {
		info.Page = p.Skip / p.Limit
	}
	info.HasMore = int64(p.Skip+p.Limit) < total
	return info
}

type GamePatch struct {
	Name      *string
	Date      *time.Time
	StadiumID *uint
	Image     *string
}
