package plugin

// CredentialField describes one credential the hosting platform must collect
// before this connector can be used.
type CredentialField struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Pattern  string `json:"pattern"`
	Required bool   `json:"required"`
}

// CredentialTemplate is published to the hosting platform's credential UI.
// The connector itself never validates credentials against these patterns;
// the upstream API is the authority.
func CredentialTemplate() []CredentialField {
	return []CredentialField{
		{
			ID:       "apiKey",
			Name:     "API Key",
			Type:     "text",
			Pattern:  "^[0-9a-fA-F]+$",
			Required: true,
		},
		{
			ID:       "resellerId",
			Name:     "Reseller ID",
			Type:     "text",
			Pattern:  "^[0-9a-fA-F]*$",
			Required: false,
		},
	}
}
