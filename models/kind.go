package models

// Kind describes one vault category: the name under which its snapshots are
// uploaded to the remote store, the ordered set of record fields, and the
// designated field used to test uniqueness within the kind.
type Kind struct {
	// Name is the remote blob name for this kind's snapshots ("Websites",
	// "Cards", "Notes"). It doubles as the display name.
	Name string

	// Fields lists the record field names in display order. Field names are
	// also the JSON keys of the persisted remote format.
	Fields []string

	// KeyField is the designated uniqueness field. No two records of the
	// same kind may decrypt to the same value on this field.
	KeyField string
}

var (
	// Websites holds website login credentials.
	Websites = Kind{
		Name:     "Websites",
		Fields:   []string{"website", "username", "password"},
		KeyField: "website",
	}

	// Cards holds payment card details.
	Cards = Kind{
		Name:     "Cards",
		Fields:   []string{"bankname", "cardtype", "cardnumber", "cardholdername", "cvv", "expirydate"},
		KeyField: "bankname",
	}

	// Notes holds free-text notes.
	Notes = Kind{
		Name:     "Notes",
		Fields:   []string{"notename", "note"},
		KeyField: "notename",
	}
)

// Kinds returns all vault kinds in display order.
func Kinds() []Kind {
	return []Kind{Websites, Cards, Notes}
}

// KindByName resolves a kind from its remote name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
