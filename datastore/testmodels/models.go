package testmodels

import (
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/columnorm/meta"
	"github.com/suparena/columnorm/row"
)

// ActivityFamily is the column family holding Activity rows.
const ActivityFamily = "Activity"

// Activity is the child side of the Account -> Activity relation.
type Activity struct {

	// Unique identifier of the activity, also its row key.
	// Required: true
	ID string `json:"Id"`

	// Display name.
	Name string `json:"Name,omitempty"`

	// How many times the activity happened. Indexed.
	NumTimes int64 `json:"NumTimes"`

	// Timestamp when the activity was created.
	// Format: date-time
	CreatedAt strfmt.DateTime `json:"CreatedAt"`
}

// Account owns a to-many relation to Activity stored as a list of row keys.
type Account struct {
	ID          string   `json:"Id"`
	Name        string   `json:"Name,omitempty"`
	ActivityIDs [][]byte `json:"ActivityIds"`
}

func (a *Account) String() string {
	return "Account{id=" + a.ID + "}"
}

// NewID returns a random row id.
func NewID() string {
	return uuid.New().String()
}

// Row encodes the activity as a row.
func (a *Activity) Row() (*row.SortedRow, error) {
	r := row.New()
	r.SetKey([]byte(a.ID))
	if err := meta.PutString(r, "name", a.Name); err != nil {
		return nil, err
	}
	if err := meta.PutInt64(r, "numTimes", a.NumTimes); err != nil {
		return nil, err
	}
	if err := meta.PutDateTime(r, "createdAt", a.CreatedAt); err != nil {
		return nil, err
	}
	return r, nil
}

// ActivityClass describes how Activity maps onto its column family.
func ActivityClass() *meta.Class[*Activity] {
	return &meta.Class[*Activity]{
		Name:   "Activity",
		Family: ActivityFamily,
		NewProxy: func(id []byte) *Activity {
			return &Activity{ID: string(id)}
		},
		Fill: func(r *row.SortedRow, a *Activity) error {
			a.Name, _ = meta.String(r, "name")
			n, _, err := meta.Int64(r, "numTimes")
			if err != nil {
				return err
			}
			a.NumTimes = n
			dt, _, err := meta.DateTime(r, "createdAt")
			if err != nil {
				return err
			}
			a.CreatedAt = dt
			return nil
		},
		FormatKey: func(key []byte) string {
			return string(key)
		},
	}
}

// ActivityID is the KeyExtractor used by Account.Activities.
func ActivityID(a *Activity) string {
	return a.ID
}
