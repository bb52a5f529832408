package devapi

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrStatementNotAllowed = errors.New("statement type not allowed")
	ErrDangerousOperation  = errors.New("dangerous operation detected")
)

// rejectionMessages are the client-facing reasons of the safety errors.
var rejectionMessages = map[error]string{
	ErrStatementNotAllowed: "Only SELECT, INSERT, UPDATE, DELETE, CREATE, and ALTER statements are allowed.",
	ErrDangerousOperation:  "Dangerous operation detected.",
}

// RejectionMessage returns the reason shown to the client for a
// CheckStatement error.
func RejectionMessage(err error) string {
	for target, message := range rejectionMessages {
		if errors.Is(err, target) {
			return message
		}
	}

	return err.Error()
}

var allowedStatements = []string{"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "ALTER"}

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bDROP\s+DATABASE\b`),
	regexp.MustCompile(`\bDROP\s+SCHEMA\b`),
	regexp.MustCompile(`\bEXEC\b`),
	regexp.MustCompile(`\bEXECUTE\b`),
	regexp.MustCompile(`\bATTACH\b`),
	regexp.MustCompile(`\bDETACH\b`),
	regexp.MustCompile(`\bPRAGMA\b`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`/\*`),
	regexp.MustCompile(`\bLOAD_FILE\b`),
	regexp.MustCompile(`\bINTO\s+OUTFILE\b`),
	regexp.MustCompile(`\bINTO\s+DUMPFILE\b`),
}

// CheckStatement rejects statements the sandbox does not run: anything
// not starting with an allowed keyword, and anything matching a
// dangerous pattern.
func CheckStatement(statement string) error {
	upper := strings.TrimSpace(strings.ToUpper(statement))

	allowed := false
	for _, keyword := range allowedStatements {
		if strings.HasPrefix(upper, keyword) {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrStatementNotAllowed
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(upper) {
			return ErrDangerousOperation
		}
	}

	return nil
}

// SplitStatements splits a submission on semicolons and drops the empty
// pieces. Semicolons inside string literals are not special.
func SplitStatements(query string) []string {
	var statements []string

	for _, piece := range strings.Split(query, ";") {
		if statement := strings.TrimSpace(piece); statement != "" {
			statements = append(statements, statement)
		}
	}

	return statements
}
