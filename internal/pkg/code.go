package pkg

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	inviteAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	InviteCodeLen  = 8
)

// NewInviteCode 8 位小写字母数字邀请码
func NewInviteCode() (string, error) {
	return gonanoid.Generate(inviteAlphabet, InviteCodeLen)
}
