package schema

// PlusCode is a registered Plus Code address for a rural property.
// The "cordinates" spelling is the backend wire contract and must not be
// corrected on this side.
type PlusCode struct {
	ID          string   `json:"id,omitempty"`
	Surname     string   `json:"surname,omitempty"`
	Code        string   `json:"pluscode_cod"`
	Coordinates Location `json:"cordinates"`
}

// PlusCodeRequest is the create/update payload for a property's Plus Code.
type PlusCodeRequest struct {
	Coordinates    Location `json:"cordinates"`
	Surname        string   `json:"surname,omitempty"`
	OwnerEmail     string   `json:"owner_email,omitempty"`
	Code           string   `json:"pluscode_cod"`
	ValidationDate string   `json:"validation_date"`
	UpdatesLogs    []string `json:"updates_logs,omitempty"`
}

// CertificateRequest asks the backend to email the Plus Code certificate PDF
// to the property owner.
type CertificateRequest struct {
	PropertyCode string `json:"cod_imovel"`
	OwnerEmail   string `json:"owner_email"`
	Code         string `json:"pluscode_cod"`
}

// SyncStatus describes the offline cache state exposed to the UI shell.
type SyncStatus struct {
	LastSync    string `json:"last_sync,omitempty"`
	IsOnline    bool   `json:"is_online"`
	TotalCached int    `json:"total_cached"`
}
