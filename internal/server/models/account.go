package models

// Account is the durable identity record. Secret is the hasher output and
// must never leave the server; outward-facing types carry ID and Email only.
type Account struct {
	ID     string
	Email  string
	Secret string
}

// AccountPatch lists the fields an update changes. Nil means unchanged.
type AccountPatch struct {
	Email  *string
	Secret *string
}

// Empty reports whether the patch changes nothing.
func (p AccountPatch) Empty() bool {
	return p.Email == nil && p.Secret == nil
}
