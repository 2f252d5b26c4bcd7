// Package policy holds the authorization rule table. Handlers never test
// roles inline; every access decision goes through Allow.
package policy

type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleGuest || r == RoleUser || r == RoleAdmin
}

// Resources and actions as used in route bindings.
const (
	ResUser     = "user"
	ResCategory = "category"
	ResProduct  = "product"
	ResOrder    = "order"
	ResReview   = "review"

	ActRead   = "read"
	ActCreate = "create"
	ActUpdate = "update"
	ActDelete = "delete"
)

// rules maps "resource.action" to the set of roles allowed to reach the
// operation. Row-level scoping (own rows vs all rows) is applied by the
// repositories, not here.
var rules = map[string]map[Role]bool{
	"user.create": {RoleGuest: true, RoleUser: true, RoleAdmin: true},
	"user.read":   {RoleUser: true, RoleAdmin: true},
	"user.update": {RoleUser: true, RoleAdmin: true},
	"user.delete": {RoleUser: true, RoleAdmin: true},

	"category.read":   {RoleGuest: true, RoleUser: true, RoleAdmin: true},
	"category.create": {RoleUser: true, RoleAdmin: true},
	"category.update": {RoleUser: true, RoleAdmin: true},
	"category.delete": {RoleUser: true, RoleAdmin: true},

	"product.read":   {RoleGuest: true, RoleUser: true, RoleAdmin: true},
	"product.create": {RoleAdmin: true},
	"product.update": {RoleAdmin: true},
	"product.delete": {RoleAdmin: true},

	"order.read":   {RoleUser: true, RoleAdmin: true},
	"order.create": {RoleUser: true, RoleAdmin: true},
	"order.update": {RoleUser: true, RoleAdmin: true},
	"order.delete": {RoleUser: true, RoleAdmin: true},

	"review.read":   {RoleGuest: true, RoleUser: true, RoleAdmin: true},
	"review.create": {RoleUser: true, RoleAdmin: true},
}

// Allow reports whether role may perform action on resource.
// Unknown resource.action pairs are denied.
func Allow(role Role, resource, action string) bool {
	allowed, ok := rules[resource+"."+action]
	if !ok {
		return false
	}
	return allowed[role]
}
