package repository

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateHandle     = errors.New("team handle or invite code already exists")
	ErrDuplicateMembership = errors.New("user already belongs to a team")
	ErrInvalidInviteCode   = errors.New("invite code does not match team")
	ErrDuplicateFollow     = errors.New("follow already exists")
	ErrSelfFollow          = errors.New("team cannot follow itself")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInviteCodeExhausted = errors.New("could not allocate a unique invite code")
	ErrIdentityConflict    = errors.New("account already linked to another oauth identity")
)
