package validation

import (
	"fmt"
	"regexp"
)

// SubjectPattern допустимый идентификатор пользователя в токене:
// числовой id чата или латинское имя, 1-64 символа
var SubjectPattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]{1,64}$`)

// ValidateSubject проверяет идентификатор пользователя, для которого выпускается токен
func ValidateSubject(subject string) error {
	if subject == "" {
		return fmt.Errorf("subject cannot be empty")
	}

	if !SubjectPattern.MatchString(subject) {
		return fmt.Errorf("subject can only contain letters, digits and _ . @ - (max 64 characters)")
	}

	return nil
}
