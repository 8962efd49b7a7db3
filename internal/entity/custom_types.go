package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateTime сериализуется в формате "yyyy-MM-dd HH:mm:ss",
// единый формат дат во внешнем API
type DateTime struct {
	time.Time
}

const dateTimeLayout = "2006-01-02 15:04:05"

func (dt *DateTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return err
	}
	dt.Time = t
	return nil
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.Format(dateTimeLayout) + `"`), nil
}

func (dt DateTime) Value() (driver.Value, error) {
	return dt.Time, nil
}

func (dt *DateTime) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		dt.Time = v
	case []byte:
		t, err := time.Parse(dateTimeLayout, string(v))
		if err != nil {
			return err
		}
		dt.Time = t
	default:
		return fmt.Errorf("cannot scan type %T into DateTime", value)
	}
	return nil
}

// ParseDateTime разбирает дату внешнего API
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(dateTimeLayout, s)
}

func FormatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}
