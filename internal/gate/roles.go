package gate

import "github.com/evmco/dealer-backoffice/internal/models"

// Default builds the gate with the four back-office role profiles.
//
// ADMIN holds the super wildcard. EVM_STAFF manages the catalog, promotions
// and feedback, approves import requests, and reads quotes/orders/reports.
// DEALER_STAFF runs the sales desk: customers, quotes, orders, import
// requests. DEALER_MANAGER is DEALER_STAFF plus quote deletion and revenue
// reports.
func Default() *Gate {
	g := New()

	g.Register(string(models.RoleAdmin), NewProfile("admin", PermissionSuperAdmin))

	g.Register(string(models.RoleEVMStaff), NewProfile("evm-staff",
		"vehicle:*",
		"promotion:*",
		"feedback:*",
		NewPermission("import", ActionList),
		NewPermission("import", ActionApprove),
		NewPermission("quote", ActionList),
		NewPermission("quote", ActionView),
		NewPermission("order", ActionList),
		NewPermission("report", ActionView),
	))

	dealerStaff := []Permission{
		NewPermission("vehicle", ActionList),
		"customer:*",
		NewPermission("quote", ActionList),
		NewPermission("quote", ActionView),
		NewPermission("quote", ActionCreate),
		NewPermission("quote", ActionUpdate),
		NewPermission("order", ActionList),
		NewPermission("order", ActionCreate),
		NewPermission("import", ActionList),
		NewPermission("import", ActionCreate),
		NewPermission("feedback", ActionList),
		NewPermission("feedback", ActionCreate),
		NewPermission("promotion", ActionList),
	}
	g.Register(string(models.RoleDealerStaff), NewProfile("dealer-staff", dealerStaff...))

	manager := append([]Permission{
		NewPermission("quote", ActionDelete),
		NewPermission("report", ActionView),
		NewPermission("feedback", ActionRespond),
	}, dealerStaff...)
	g.Register(string(models.RoleDealerManager), NewProfile("dealer-manager", manager...))

	return g
}
