package policy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow_RuleTable(t *testing.T) {
	cases := []struct {
		resource string
		action   string
		guest    bool
		user     bool
		admin    bool
	}{
		{ResUser, ActCreate, true, true, true},
		{ResUser, ActRead, false, true, true},
		{ResUser, ActUpdate, false, true, true},
		{ResUser, ActDelete, false, true, true},

		{ResCategory, ActRead, true, true, true},
		{ResCategory, ActCreate, false, true, true},
		{ResCategory, ActUpdate, false, true, true},
		{ResCategory, ActDelete, false, true, true},

		{ResProduct, ActRead, true, true, true},
		{ResProduct, ActCreate, false, false, true},
		{ResProduct, ActUpdate, false, false, true},
		{ResProduct, ActDelete, false, false, true},

		{ResOrder, ActRead, false, true, true},
		{ResOrder, ActCreate, false, true, true},
		{ResOrder, ActUpdate, false, true, true},
		{ResOrder, ActDelete, false, true, true},

		{ResReview, ActRead, true, true, true},
		{ResReview, ActCreate, false, true, true},
	}

	for _, tc := range cases {
		name := fmt.Sprintf("%s.%s", tc.resource, tc.action)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.guest, Allow(RoleGuest, tc.resource, tc.action), "guest")
			assert.Equal(t, tc.user, Allow(RoleUser, tc.resource, tc.action), "user")
			assert.Equal(t, tc.admin, Allow(RoleAdmin, tc.resource, tc.action), "admin")
		})
	}
}

func TestAllow_UnknownPairsDenied(t *testing.T) {
	assert.False(t, Allow(RoleAdmin, "review", ActUpdate))
	assert.False(t, Allow(RoleAdmin, "payment", ActCreate))
	assert.False(t, Allow(Role("superadmin"), ResProduct, ActDelete))
}
