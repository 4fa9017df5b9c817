package model

// Role names as stored in the users table and embedded in JWT claims.
const (
	RoleChannel = "channel"
	RoleBrand1  = "brand1"
	RoleBrand2  = "brand2"
	RoleAdmin   = "admin"
)

// RoleConfig parameterizes the forecast-adjustment workflow for one editable
// role. The three role views share one code path; only this value differs.
type RoleConfig struct {
	Name             string
	BrandGroups      []string
	DestinationTable string
	IDPrefix         string
	HasCampaignField bool
}

// roleConfigs is the static role → scope mapping. Brand group values match
// the Brand_Group column of the sales_history reference table.
var roleConfigs = map[string]RoleConfig{
	RoleChannel: {
		Name:             RoleChannel,
		BrandGroups:      []string{"Brand Group 1", "Brand Group 2"},
		DestinationTable: TableChannelInput,
		IDPrefix:         "CH_",
		HasCampaignField: false,
	},
	RoleBrand1: {
		Name:             RoleBrand1,
		BrandGroups:      []string{"Brand Group 1"},
		DestinationTable: TableBrand1Input,
		IDPrefix:         "B1_",
		HasCampaignField: true,
	},
	RoleBrand2: {
		Name:             RoleBrand2,
		BrandGroups:      []string{"Brand Group 2"},
		DestinationTable: TableBrand2Input,
		IDPrefix:         "B2_",
		HasCampaignField: true,
	},
}

// ResolveRole returns the workflow configuration for an editable role.
// Admin (read-only) and unknown roles have no config — callers must treat
// that as a terminal routing error, not retry.
func ResolveRole(name string) (RoleConfig, bool) {
	cfg, ok := roleConfigs[name]
	return cfg, ok
}

// EditableRoles lists the roles that own a submission table, in display order.
func EditableRoles() []RoleConfig {
	return []RoleConfig{
		roleConfigs[RoleChannel],
		roleConfigs[RoleBrand1],
		roleConfigs[RoleBrand2],
	}
}
