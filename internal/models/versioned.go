package models

// Versioned adds optimistic-lock helpers. Embed it anonymously.
//
// RowVersion is the opaque version token carried to clients and echoed
// back on update/delete; the store bumps it on every successful write.
type Versioned struct {
	RowVersion int64 `json:"row_version"`
}

func (v *Versioned) GetRowVersion() int64  { return v.RowVersion }
func (v *Versioned) SetRowVersion(n int64) { v.RowVersion = n }
