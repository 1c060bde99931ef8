package lead

import "strings"

// Contacts holds the optional contact channels of a business. Empty means absent.
type Contacts struct {
	Phone     string
	Email     string
	Instagram string
	Facebook  string
	LinkedIn  string
}

// Record is a single business contact record returned by a search.
type Record struct {
	name     string
	contacts Contacts
}

// New creates a record. Contact fields are trimmed; the name is kept verbatim.
func New(name string, c Contacts) Record {
	return Record{
		name: name,
		contacts: Contacts{
			Phone:     strings.TrimSpace(c.Phone),
			Email:     strings.TrimSpace(c.Email),
			Instagram: strings.TrimSpace(c.Instagram),
			Facebook:  strings.TrimSpace(c.Facebook),
			LinkedIn:  strings.TrimSpace(c.LinkedIn),
		},
	}
}

// Name returns the business name as reported by the provider.
func (r Record) Name() string { return r.name }

// Key returns the dedup identity: the name lower-cased and trimmed.
func (r Record) Key() string { return NormalizeName(r.name) }

// Contacts returns a copy of the contact channels.
func (r Record) Contacts() Contacts { return r.contacts }

// Phone returns the phone number or "".
func (r Record) Phone() string { return r.contacts.Phone }

// Email returns the e-mail address or "".
func (r Record) Email() string { return r.contacts.Email }

// Instagram returns the Instagram URL or "".
func (r Record) Instagram() string { return r.contacts.Instagram }

// Facebook returns the Facebook URL or "".
func (r Record) Facebook() string { return r.contacts.Facebook }

// LinkedIn returns the LinkedIn URL or "".
func (r Record) LinkedIn() string { return r.contacts.LinkedIn }

// HasContact reports whether at least one contact channel is present.
func (r Record) HasContact() bool {
	c := r.contacts
	return c.Phone != "" || c.Email != "" || c.Instagram != "" || c.Facebook != "" || c.LinkedIn != ""
}

// NormalizeName folds a business name into its dedup key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
