package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/identity"
	"github.com/AntonStoeckl/library-lending-go/lending/shell/config"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(t.Context())

	return stdout.String(), stderr.String(), err
}

func Test_AddBook_PrintsNewID(t *testing.T) {
	// act
	stdout, _, err := run(t, "add-book", "Dune", "Frank Herbert", "general")

	// assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "added book "))
}

func Test_ExitCodes(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected int
	}{
		{name: "unknown category", args: []string{"add-book", "Dune", "Herbert", "comics"}, expected: exitValidation},
		{name: "invalid id", args: []string{"borrow", "nope", "--borrower", "also-nope"}, expected: exitValidation},
		{name: "unknown borrower", args: []string{"borrow", uuid.NewString(), "--borrower", uuid.NewString()}, expected: exitNotFound},
		{name: "no borrower given", args: []string{"fines"}, expected: exitValidation},
		{name: "token without secret", args: []string{"token", "--borrower", uuid.NewString()}, expected: exitValidation},
		{name: "migrate on memory engine", args: []string{"migrate"}, expected: exitValidation},
		{name: "unknown engine", args: []string{"list", "--engine", "mongo"}, expected: exitValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, _, err := run(t, tc.args...)

			// assert
			require.Error(t, err)
			assert.Equal(t, tc.expected, exitCode(err))
		})
	}
}

func Test_Token_AuthenticatesTheBorrower(t *testing.T) {
	// arrange
	t.Setenv("LENDING_JWT_SECRET", "cli-secret")
	borrowerID := uuid.NewString()

	token, _, err := run(t, "token", "--borrower", borrowerID, "--role", "faculty")
	require.NoError(t, err)
	token = strings.TrimSpace(token)

	verifier, err := identity.NewHS256Verifier([]byte("cli-secret"))
	require.NoError(t, err)

	// act
	who, verifyErr := verifier.Verify(t.Context(), token)
	_, _, finesErr := run(t, "fines", "--token", token)
	_, _, garbageErr := run(t, "fines", "--token", "garbage")

	// assert
	require.NoError(t, verifyErr)
	assert.Equal(t, borrowerID, who.BorrowerID)
	assert.ErrorIs(t, finesErr, core.ErrBorrowerNotFound)
	assert.Equal(t, exitAuth, exitCode(garbageErr))
}

func Test_List_EmptyCatalogue(t *testing.T) {
	stdout, stderr, err := run(t, "list", "--log-format", config.LogFormatJSON)

	require.NoError(t, err)
	assert.Equal(t, "no books found\n", stdout)
	assert.NotContains(t, stderr, "level=")
}
