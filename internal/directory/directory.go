// Package directory maps trainer identifiers to display names and
// emails for lists and exports.
package directory

import (
	"context"
	"database/sql"
	"strings"

	"github.com/closurelabs/traininglog/internal/db"
	"github.com/closurelabs/traininglog/internal/models"
)

type Trainer struct {
	Name  string
	Email string
}

// Directory is keyed by both the user row id and the embedded uid: an
// entry may reference either, depending on its vintage.
type Directory map[string]Trainer

// Load fetches all trainers. On failure it degrades to an empty
// directory rather than an error: display then falls back entirely to
// the entry's own embedded fields.
func Load(ctx context.Context, database *sql.DB) Directory {
	users, err := db.ListTrainers(ctx, database)
	if err != nil {
		return Directory{}
	}
	d := make(Directory, len(users)*2)
	for _, u := range users {
		t := Trainer{Name: u.Name, Email: u.Email}
		d[u.ID] = t
		if u.UID != "" {
			d[u.UID] = t
		}
	}
	return d
}

// DisplayName resolves what to show for an entry's trainer:
// directory name, then the entry's own trainerName unless it is an
// email string, then trainerEmail (or the email-looking trainerName),
// then directory email, then "N/A".
func (d Directory) DisplayName(e models.Entry) string {
	t, ok := d[e.TrainerID]
	if ok && t.Name != "" {
		return t.Name
	}
	if e.TrainerName != "" && !looksLikeEmail(e.TrainerName) {
		return e.TrainerName
	}
	if e.TrainerEmail != "" {
		return e.TrainerEmail
	}
	if looksLikeEmail(e.TrainerName) {
		return e.TrainerName
	}
	if ok && t.Email != "" {
		return t.Email
	}
	return "N/A"
}

// Email resolves the separate trainer-email column of the spreadsheet
// export.
func (d Directory) Email(e models.Entry) string {
	if t, ok := d[e.TrainerID]; ok && t.Email != "" {
		return t.Email
	}
	if e.TrainerEmail != "" {
		return e.TrainerEmail
	}
	if looksLikeEmail(e.TrainerName) {
		return e.TrainerName
	}
	return "N/A"
}

func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@")
}
