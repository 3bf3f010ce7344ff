package identity

// Role is the access level of a user. The system knows exactly two.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleEmployee   Role = "employee"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	return r == RoleSuperadmin || r == RoleEmployee
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// Capability is a named permission checked at the HTTP boundary
type Capability string

const (
	CapEmployeesRead   Capability = "employees:read"
	CapEmployeesWrite  Capability = "employees:write"
	CapPayrollRead     Capability = "payroll:read"
	CapPayrollWrite    Capability = "payroll:write"
	CapGiftCardsRead   Capability = "giftcards:read"
	CapGiftCardsWrite  Capability = "giftcards:write"
	CapGiftCardsImport Capability = "giftcards:import"
	CapExpensesRead    Capability = "expenses:read"
	CapExpensesWrite   Capability = "expenses:write"
	CapStockRead       Capability = "stock:read"
	CapStockWrite      Capability = "stock:write"
	CapArreglosRead    Capability = "arreglos:read"
	CapArreglosWrite   Capability = "arreglos:write"
	CapInvoicesRead    Capability = "invoices:read"
	CapInvoicesWrite   Capability = "invoices:write"
	CapReportsRead     Capability = "reports:read"
	CapExportsRun      Capability = "exports:run"
	CapUsersManage     Capability = "users:manage"
)

// allCapabilities is every capability the system knows
var allCapabilities = []Capability{
	CapEmployeesRead, CapEmployeesWrite,
	CapPayrollRead, CapPayrollWrite,
	CapGiftCardsRead, CapGiftCardsWrite, CapGiftCardsImport,
	CapExpensesRead, CapExpensesWrite,
	CapStockRead, CapStockWrite,
	CapArreglosRead, CapArreglosWrite,
	CapInvoicesRead, CapInvoicesWrite,
	CapReportsRead, CapExportsRun,
	CapUsersManage,
}

// employeeCapabilities is the operational day-to-day set. Employees run
// the counter but never see payroll, user management or the financial
// summaries.
var employeeCapabilities = []Capability{
	CapEmployeesRead,
	CapGiftCardsRead, CapGiftCardsWrite,
	CapExpensesRead, CapExpensesWrite,
	CapStockRead, CapStockWrite,
	CapArreglosRead, CapArreglosWrite,
	CapInvoicesRead, CapInvoicesWrite,
}

// CapabilitiesFor returns the capability set of a role. Unknown roles
// get nothing.
func CapabilitiesFor(role Role) []Capability {
	switch role {
	case RoleSuperadmin:
		caps := make([]Capability, len(allCapabilities))
		copy(caps, allCapabilities)
		return caps
	case RoleEmployee:
		caps := make([]Capability, len(employeeCapabilities))
		copy(caps, employeeCapabilities)
		return caps
	default:
		return nil
	}
}

// HasCapability reports whether a role's set includes a capability
func HasCapability(role Role, cap Capability) bool {
	for _, c := range CapabilitiesFor(role) {
		if c == cap {
			return true
		}
	}
	return false
}

// CapabilityStrings converts a capability set to plain strings, the
// form carried inside JWT claims.
func CapabilityStrings(caps []Capability) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}
