package directory

import (
	"testing"

	"github.com/closurelabs/traininglog/internal/models"
)

func entry(id, name, email string) models.Entry {
	return models.Entry{TrainerID: id, TrainerName: name, TrainerEmail: email}
}

func TestDisplayNamePrefersDirectory(t *testing.T) {
	d := Directory{"t1": {Name: "Jane Doe", Email: "jane@x.com"}}
	if got := d.DisplayName(entry("t1", "stale name", "")); got != "Jane Doe" {
		t.Errorf("got %q", got)
	}
}

func TestDisplayNameFallsBackToEmbeddedName(t *testing.T) {
	d := Directory{}
	if got := d.DisplayName(entry("missing", "John Smith", "")); got != "John Smith" {
		t.Errorf("got %q", got)
	}
}

func TestDisplayNameEmailLookingNameIsNotAName(t *testing.T) {
	// legacy entries stored the login email in trainerName
	d := Directory{}
	if got := d.DisplayName(entry("missing", "jane@x.com", "")); got != "jane@x.com" {
		t.Errorf("got %q", got)
	}
	// with a separate email present, that wins over the email-looking name
	if got := d.DisplayName(entry("missing", "jane@x.com", "real@x.com")); got != "real@x.com" {
		t.Errorf("got %q", got)
	}
}

func TestDisplayNameDirectoryEmailBeforeNA(t *testing.T) {
	d := Directory{"t1": {Email: "only@x.com"}}
	if got := d.DisplayName(entry("t1", "", "")); got != "only@x.com" {
		t.Errorf("got %q", got)
	}
	if got := d.DisplayName(entry("nobody", "", "")); got != "N/A" {
		t.Errorf("got %q", got)
	}
}

func TestEmailResolution(t *testing.T) {
	d := Directory{"t1": {Name: "Jane", Email: "jane@x.com"}}
	if got := d.Email(entry("t1", "", "")); got != "jane@x.com" {
		t.Errorf("got %q", got)
	}
	if got := d.Email(entry("x", "", "embedded@x.com")); got != "embedded@x.com" {
		t.Errorf("got %q", got)
	}
	if got := d.Email(entry("x", "namelike@x.com", "")); got != "namelike@x.com" {
		t.Errorf("got %q", got)
	}
	if got := d.Email(entry("x", "Plain Name", "")); got != "N/A" {
		t.Errorf("got %q", got)
	}
}
