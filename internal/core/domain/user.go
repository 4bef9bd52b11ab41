package domain

import "time"

// User is the public, onboarded persona of a Credential. Its ID equals the
// owning credential's ID (strict 1:1, created only by explicit onboarding);
// presence of a User is the signal for "onboarded" vs "registered only".
type User struct {
	ID          string     `json:"id"`
	IDName      string     `json:"id_name"`
	DisplayName string     `json:"display_name"`
	Description string     `json:"description"`
	Birthday    *Date      `json:"birthday"`
	Website     string     `json:"website"`
	IsPrivate   bool       `json:"is_private"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Date is a calendar date (no time component) serialized as "2006-01-02".
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	t, err := time.Parse(`"`+dateLayout+`"`, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
