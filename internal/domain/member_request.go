package domain

import (
	"errors"
	"time"
)

type MemberRequestStatus string

const (
	MemberRequestPending  MemberRequestStatus = "pending"
	MemberRequestApproved MemberRequestStatus = "approved"
	MemberRequestRejected MemberRequestStatus = "rejected"
)

const DefaultRejectReason = "No reason provided"

var ErrRequestNotPending = errors.New("request is not pending")

func (s MemberRequestStatus) Valid() bool {
	switch s {
	case MemberRequestPending, MemberRequestApproved, MemberRequestRejected:
		return true
	}
	return false
}

type MemberRequest struct {
	ID           uint                `json:"id"`
	UserID       uint                `json:"userId"`
	User         *User               `json:"user,omitempty"`
	Status       MemberRequestStatus `json:"status"`
	RequestDate  time.Time           `json:"requestDate"`
	ResponseDate *time.Time          `json:"responseDate,omitempty"`
	AdminID      *uint               `json:"adminId,omitempty"`
	Admin        *User               `json:"admin,omitempty"`
	Reason       string              `json:"reason,omitempty"`
}

func NewMemberRequest(userID uint, now time.Time) MemberRequest {
	return MemberRequest{
		UserID:      userID,
		Status:      MemberRequestPending,
		RequestDate: now,
	}
}

func (r MemberRequest) IsPending() bool {
	return r.Status == MemberRequestPending
}

// Approve moves a pending request to approved. Terminal states are absorbing.
func (r *MemberRequest) Approve(adminID uint, now time.Time) error {
	if !r.IsPending() {
		return ErrRequestNotPending
	}
	r.Status = MemberRequestApproved
	r.AdminID = &adminID
	r.ResponseDate = &now
	return nil
}

func (r *MemberRequest) Reject(adminID uint, reason string, now time.Time) error {
	if !r.IsPending() {
		return ErrRequestNotPending
	}
	if reason == "" {
		reason = DefaultRejectReason
	}
	r.Status = MemberRequestRejected
	r.AdminID = &adminID
	r.ResponseDate = &now
	r.Reason = reason
	return nil
}

// HasPending reports whether any of the requests is still waiting for an admin.
func HasPending(requests []MemberRequest) bool {
	for _, r := range requests {
		if r.IsPending() {
			return true
		}
	}
	return false
}
