package devapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckStatement(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		wantErr   error
	}{
		{name: "select", statement: "SELECT * FROM pokemon"},
		{name: "lowercase insert", statement: "insert into trainers (name) values ('Red')"},
		{name: "leading whitespace", statement: "   UPDATE pokemon SET level = 10"},
		{name: "create", statement: "CREATE TABLE moves (id INTEGER)"},
		{name: "alter", statement: "ALTER TABLE pokemon ADD COLUMN nickname TEXT"},
		{name: "delete", statement: "DELETE FROM items WHERE id = 1"},
		{name: "drop table", statement: "DROP TABLE pokemon", wantErr: ErrStatementNotAllowed},
		{name: "pragma first", statement: "PRAGMA table_info(pokemon)", wantErr: ErrStatementNotAllowed},
		{name: "line comment", statement: "SELECT * FROM pokemon -- all", wantErr: ErrDangerousOperation},
		{name: "block comment", statement: "SELECT /* x */ 1", wantErr: ErrDangerousOperation},
		{name: "attach", statement: "SELECT 1; ATTACH DATABASE 'x' AS y", wantErr: ErrDangerousOperation},
		{name: "into outfile", statement: "SELECT * INTO  OUTFILE '/tmp/x' FROM pokemon", wantErr: ErrDangerousOperation},
		{name: "execute word", statement: "SELECT execute FROM t", wantErr: ErrDangerousOperation},
		{name: "executed is fine", statement: "SELECT executed FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStatement(tt.statement)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRejectionMessage(t *testing.T) {
	assert.Equal(t,
		"Only SELECT, INSERT, UPDATE, DELETE, CREATE, and ALTER statements are allowed.",
		RejectionMessage(CheckStatement("DROP TABLE pokemon")),
	)
	assert.Equal(t, "Dangerous operation detected.", RejectionMessage(fmt.Errorf("wrapped: %w", ErrDangerousOperation)))
	assert.Equal(t, "boom", RejectionMessage(errors.New("boom")))
}

func TestSplitStatements(t *testing.T) {
	assert.Equal(t,
		[]string{"SELECT 1", "SELECT 2"},
		SplitStatements(" SELECT 1 ;\n\n; SELECT 2;  "),
	)
	assert.Empty(t, SplitStatements(" ; ;"))
	assert.Equal(t, []string{"SELECT 'a'", "b'"}, SplitStatements("SELECT 'a;b'"))
}
