package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/brandsite-api/internal/constants"
)

const (
	contactNameMaxLen        = 100
	contactOrganizationLimit = 200
	contactMessageMinLen     = 20
	contactMessageMaxLen     = 2000
	waitlistDescriptionMin   = 10
	waitlistDescriptionMax   = 2000
	waitlistHandleMaxLen     = 100
	waitlistProjectMaxLen    = 200
	emailMaxLen              = 255
)

var (
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phonePattern       = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneSeparators    = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && len(email) <= emailMaxLen && emailPattern.MatchString(email)
}

// normalizePhone 去掉空格、连字符与括号
func normalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

func isValidPhone(phone string) bool {
	return phonePattern.MatchString(normalizePhone(phone))
}

func isKnownOption(value string, options []string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

func runeLen(value string) int {
	return utf8.RuneCountInString(value)
}

// validateContactInput 校验联系表单，返回全部字段问题
func validateContactInput(input ContactInput) []Violation {
	violations := make([]Violation, 0)

	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		violations = append(violations, Violation{Field: "name", Message: "name is required"})
	case !contactNamePattern.MatchString(name):
		violations = append(violations, Violation{Field: "name", Message: "name can only contain letters and spaces"})
	case runeLen(name) > contactNameMaxLen:
		violations = append(violations, Violation{Field: "name", Message: "name is too long"})
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		violations = append(violations, Violation{Field: "email", Message: "email is required"})
	} else if !isValidEmail(email) {
		violations = append(violations, Violation{Field: "email", Message: "please enter a valid email address"})
	}

	if phone := strings.TrimSpace(input.Phone); phone != "" && !isValidPhone(phone) {
		violations = append(violations, Violation{Field: "phone", Message: "please enter a valid phone number"})
	}

	if runeLen(strings.TrimSpace(input.Organization)) > contactOrganizationLimit {
		violations = append(violations, Violation{Field: "organization", Message: "organization is too long"})
	}

	if svc := strings.TrimSpace(input.Service); svc != "" && !isKnownOption(svc, constants.ContactServiceOptions) {
		violations = append(violations, Violation{Field: "service", Message: "unknown service"})
	}

	message := strings.TrimSpace(input.Message)
	switch {
	case message == "":
		violations = append(violations, Violation{Field: "message", Message: "message is required"})
	case runeLen(message) < contactMessageMinLen:
		violations = append(violations, Violation{Field: "message", Message: "message must be at least 20 characters"})
	case runeLen(message) > contactMessageMaxLen:
		violations = append(violations, Violation{Field: "message", Message: "message is too long"})
	}
	return violations
}

// validateWaitlistInput 校验候补名单表单
func validateWaitlistInput(input WaitlistInput) []Violation {
	violations := make([]Violation, 0)

	email := strings.TrimSpace(input.Email)
	if email == "" {
		violations = append(violations, Violation{Field: "email", Message: "email is required"})
	} else if !isValidEmail(email) {
		violations = append(violations, Violation{Field: "email", Message: "please enter a valid email address"})
	}

	description := strings.TrimSpace(input.ProjectDescription)
	switch {
	case description == "":
		violations = append(violations, Violation{Field: "project_description", Message: "project description is required"})
	case runeLen(description) < waitlistDescriptionMin:
		violations = append(violations, Violation{Field: "project_description", Message: "project description must be at least 10 characters"})
	case runeLen(description) > waitlistDescriptionMax:
		violations = append(violations, Violation{Field: "project_description", Message: "project description is too long"})
	}

	if runeLen(strings.TrimSpace(input.Twitter)) > waitlistHandleMaxLen {
		violations = append(violations, Violation{Field: "twitter", Message: "twitter handle is too long"})
	}
	if runeLen(strings.TrimSpace(input.Telegram)) > waitlistHandleMaxLen {
		violations = append(violations, Violation{Field: "telegram", Message: "telegram handle is too long"})
	}
	if runeLen(strings.TrimSpace(input.ProjectName)) > waitlistProjectMaxLen {
		violations = append(violations, Violation{Field: "project_name", Message: "project name is too long"})
	}
	for _, useCase := range input.UseCases {
		if !isKnownOption(strings.TrimSpace(useCase), constants.WaitlistUseCaseOptions) {
			violations = append(violations, Violation{Field: "use_cases", Message: "unknown use case: " + useCase})
			break
		}
	}
	return violations
}
