package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleSuperadmin.IsValid())
	assert.True(t, RoleEmployee.IsValid())
	assert.False(t, Role("manager").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestCapabilitiesFor_Superadmin(t *testing.T) {
	caps := CapabilitiesFor(RoleSuperadmin)
	assert.Len(t, caps, len(allCapabilities))
	assert.True(t, HasCapability(RoleSuperadmin, CapPayrollWrite))
	assert.True(t, HasCapability(RoleSuperadmin, CapUsersManage))
	assert.True(t, HasCapability(RoleSuperadmin, CapReportsRead))
}

func TestCapabilitiesFor_Employee(t *testing.T) {
	// Employees run the counter.
	assert.True(t, HasCapability(RoleEmployee, CapGiftCardsWrite))
	assert.True(t, HasCapability(RoleEmployee, CapArreglosWrite))
	assert.True(t, HasCapability(RoleEmployee, CapInvoicesWrite))
	assert.True(t, HasCapability(RoleEmployee, CapStockWrite))

	// But never payroll, user management, reports, exports or imports.
	assert.False(t, HasCapability(RoleEmployee, CapPayrollRead))
	assert.False(t, HasCapability(RoleEmployee, CapPayrollWrite))
	assert.False(t, HasCapability(RoleEmployee, CapUsersManage))
	assert.False(t, HasCapability(RoleEmployee, CapReportsRead))
	assert.False(t, HasCapability(RoleEmployee, CapExportsRun))
	assert.False(t, HasCapability(RoleEmployee, CapGiftCardsImport))
	assert.False(t, HasCapability(RoleEmployee, CapEmployeesWrite))
}

func TestCapabilitiesFor_UnknownRole(t *testing.T) {
	assert.Empty(t, CapabilitiesFor(Role("ghost")))
}

func TestCapabilityStrings(t *testing.T) {
	strs := CapabilityStrings([]Capability{CapStockRead, CapStockWrite})
	assert.Equal(t, []string{"stock:read", "stock:write"}, strs)
}
