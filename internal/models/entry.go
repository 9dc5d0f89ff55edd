package models

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Entry is a single recorded training session. Hierarchy names are
// snapshots from creation time and deliberately survive later renames:
// entries are historical records.
type Entry struct {
	ID           string    `json:"id"`
	Date         FlexDate  `json:"date"`
	ProjectID    string    `json:"projectId"`
	ProjectName  string    `json:"projectName"`
	CampusID     *string   `json:"campusId"`
	CampusName   *string   `json:"campusName"`
	BatchID      string    `json:"batchId"`
	BatchName    string    `json:"batchName"`
	Topic        string    `json:"topic"`
	Subtopic     string    `json:"subtopic"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Hours        *float64  `json:"hours"`
	StudentCount *int      `json:"studentCount"`
	TrainerID    string    `json:"trainerId"`
	TrainerName  string    `json:"trainerName"`
	TrainerEmail string    `json:"trainerEmail"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FlexDate tolerates the two historical entry-date encodings: a
// timestamp object carrying unix seconds, and a plain date string.
// Freshly written entries always carry Time.
type FlexDate struct {
	Time    time.Time
	Seconds int64
	Raw     string
}

func DateOf(t time.Time) FlexDate { return FlexDate{Time: t} }

func (d *FlexDate) UnmarshalJSON(b []byte) error {
	var obj struct {
		Seconds int64 `json:"seconds"`
	}
	if err := json.Unmarshal(b, &obj); err == nil && obj.Seconds != 0 {
		d.Seconds = obj.Seconds
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	d.Raw = s
	return nil
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	switch {
	case !d.Time.IsZero():
		return json.Marshal(d.Time.Format(time.RFC3339))
	case d.Seconds != 0:
		return json.Marshal(struct {
			Seconds int64 `json:"seconds"`
		}{d.Seconds})
	default:
		return json.Marshal(d.Raw)
	}
}

var rawDateLayouts = []string{"2006-01-02", time.RFC3339, "1/2/2006", "02.01.2006"}

// Display renders the date as a calendar day in loc. Seconds-encoded
// dates convert first; raw strings are parsed best-effort and fall
// back to themselves when nothing matches.
func (d FlexDate) Display(loc *time.Location) string {
	const layout = "1/2/2006"
	if loc == nil {
		loc = time.Local
	}
	if d.Seconds != 0 {
		return time.Unix(d.Seconds, 0).In(loc).Format(layout)
	}
	if !d.Time.IsZero() {
		return d.Time.In(loc).Format(layout)
	}
	for _, l := range rawDateLayouts {
		if t, err := time.Parse(l, d.Raw); err == nil {
			return t.In(loc).Format(layout)
		}
	}
	return d.Raw
}

// ComputeHours returns end-start as decimal hours rounded to two
// places. Zero or negative spans clamp to 0: a late shift crossing
// midnight is a data-entry error here, not a crash.
func ComputeHours(startTime, endTime string) float64 {
	start, err1 := time.Parse("15:04", startTime)
	end, err2 := time.Parse("15:04", endTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	h := end.Sub(start).Hours()
	if h <= 0 {
		return 0
	}
	return math.Round(h*100) / 100
}

// FormatHours matches the display convention of the exports: trailing
// zeros kept, e.g. 1.00, 1.50.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
