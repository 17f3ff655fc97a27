package domain

const (
	EventGameCreated    = "game:created"
	EventMemberCreated  = "member:created"
	EventMemberApproved = "member:approved"
)
