package models

import "time"

// Project is the root of the training hierarchy. A project without
// campuses is "flat": its batches hang directly off the project.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Campus carries a snapshot of its project name taken at write time.
// Renames cascade the snapshot, see db.RenameProject.
type Campus struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectID   string    `json:"projectId"`
	ProjectName string    `json:"projectName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Batch belongs to a project and, when the project has a campus level,
// to exactly one campus. CampusID is nil iff the project is flat.
type Batch struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectID   string    `json:"projectId"`
	ProjectName string    `json:"projectName"`
	CampusID    *string   `json:"campusId"`
	CampusName  *string   `json:"campusName"`
	CreatedAt   time.Time `json:"createdAt"`
}
