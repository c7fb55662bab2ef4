package schema

// AccountTable describes a person table. Administrators and regular users are
// stored in two tables with the same shape.
type AccountTable struct {
	Kind      Kind
	Table     string
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	DOB       string
	Gender    string
	Address   string
	CreatedAt string
	UpdatedAt string

	// EmailKey is the name PostgreSQL gives the UNIQUE(email) constraint.
	EmailKey string
}

// Admin is the schema definition for the administrator table.
var Admin = newAccountTable(KindAdmin, "admin")

// Users is the schema definition for the regular user table.
var Users = newAccountTable(KindUser, "users")

func newAccountTable(kind Kind, table string) AccountTable {
	return AccountTable{
		Kind:      kind,
		Table:     table,
		ID:        "id",
		FirstName: "first_name",
		LastName:  "last_name",
		Email:     "email",
		Password:  "password",
		Phone:     "phone",
		DOB:       "dob",
		Gender:    "gender",
		Address:   "address",
		CreatedAt: "created_at",
		UpdatedAt: "updated_at",
		EmailKey:  table + "_email_key",
	}
}

// Columns returns all standard column names
func (t AccountTable) Columns() []string {
	return []string{
		t.ID, t.FirstName, t.LastName, t.Email, t.Password, t.Phone,
		t.DOB, t.Gender, t.Address, t.CreatedAt, t.UpdatedAt,
	}
}

// AccountFor returns the account table backing kind.
func AccountFor(kind Kind) (AccountTable, bool) {
	switch kind {
	case KindAdmin:
		return Admin, true
	case KindUser:
		return Users, true
	}
	return AccountTable{}, false
}
