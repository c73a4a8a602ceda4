package model

// Slot identifies a bookable unit. Two slots are the same only when all three
// fields are byte-for-byte equal; no trimming, case folding or calendar parsing
// is applied.
type Slot struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Staff string `json:"staff"`
}

func (s Slot) Complete() bool {
	return s.Date != "" && s.Time != "" && s.Staff != ""
}

// Key joins the fields with a NUL separator for use as a map key.
func (s Slot) Key() string {
	return s.Date + "\x00" + s.Time + "\x00" + s.Staff
}
