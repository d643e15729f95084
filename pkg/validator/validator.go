package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateUser(username, email string) ValidationErrors {
	errs := make(ValidationErrors)

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) > 255 {
		errs.Add("username", "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	return errs
}

func ValidatePost(title, content string) ValidationErrors {
	errs := make(ValidationErrors)

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 255 {
		errs.Add("title", "Title is too long")
	}

	if strings.TrimSpace(content) == "" {
		errs.Add("content", "Content is required")
	}

	return errs
}
