package service

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidID           = errors.New("id must be a uuid")
	ErrInvalidNickname     = errors.New("invalid nickname format")
	ErrInvalidIntroduction = errors.New("invalid introduction format")
)

// nicknames: letters, digits, spaces and a few joiners, up to 32 runes
var nicknameRe = regexp.MustCompile(`^[\p{L}\p{N} ._-]+$`)

const (
	maxNicknameRunes     = 32
	maxIntroductionRunes = 256
)

// checkUUID rejects malformed ids before any query is issued.
func checkUUID(id string) error {
	if uuid.Validate(id) != nil {
		return ErrInvalidID
	}
	return nil
}

func validateNickname(nickname string) error {
	if nickname == "" || utf8.RuneCountInString(nickname) > maxNicknameRunes || !nicknameRe.MatchString(nickname) {
		return ErrInvalidNickname
	}
	return nil
}

func validateIntroduction(introduction string) error {
	if utf8.RuneCountInString(introduction) > maxIntroductionRunes {
		return ErrInvalidIntroduction
	}
	return nil
}
