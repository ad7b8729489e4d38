package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

const day = 24 * time.Hour

func Test_LoanPolicy_ByRole(t *testing.T) {
	testCases := []struct {
		role           core.Role
		loanDuration   time.Duration
		extensionLimit int
		borrowLimit    int
	}{
		{core.RoleFaculty, 40 * day, 5, 5},
		{core.RoleStandard, 15 * day, 3, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.role.String(), func(t *testing.T) {
			assert.Equal(t, tc.loanDuration, core.LoanDuration(tc.role))
			assert.Equal(t, tc.extensionLimit, core.ExtensionLimit(tc.role))
			assert.Equal(t, tc.borrowLimit, core.BorrowLimit(tc.role))
		})
	}
}

func Test_LoanPolicy_ByCategory(t *testing.T) {
	testCases := []struct {
		category          core.Category
		extensionDuration time.Duration
		restricted        bool
	}{
		{core.CategoryTextbook, 30 * day, true},
		{core.CategoryPeriodical, 15 * day, true},
		{core.CategoryGeneral, 15 * day, false},
	}

	for _, tc := range testCases {
		t.Run(tc.category.String(), func(t *testing.T) {
			assert.Equal(t, tc.extensionDuration, core.ExtensionDuration(tc.category))
			assert.Equal(t, tc.restricted, core.IsRestrictedCategory(tc.category))
		})
	}
}

func Test_ParseRole_And_ParseCategory(t *testing.T) {
	role, err := core.ParseRole("faculty")
	assert.NoError(t, err)
	assert.Equal(t, core.RoleFaculty, role)

	_, err = core.ParseRole("admin")
	assert.ErrorIs(t, err, core.ErrUnknownRole)

	category, err := core.ParseCategory("periodical")
	assert.NoError(t, err)
	assert.Equal(t, core.CategoryPeriodical, category)

	_, err = core.ParseCategory("Textbook")
	assert.ErrorIs(t, err, core.ErrUnknownCategory)
}
