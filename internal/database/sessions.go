package database

import (
	"time"

	"go-gas-agent/internal/models"

	"gorm.io/gorm"
)

// OpenSessionState tags the result of looking for a route's open session.
// Nothing prevents two devices from logging the same route in, so the
// lookup can legitimately find more than one.
type OpenSessionState int

const (
	NoOpenSession OpenSessionState = iota
	OneOpenSession
	AmbiguousOpenSessions
)

type OpenSessionLookup struct {
	State  OpenSessionState
	Latest *models.Session // most recent login; nil when State == NoOpenSession
	IDs    []uint
}

// FindOpenSessions returns every session for the route with no logout
// timestamp, newest login first.
func FindOpenSessions(db *gorm.DB, routeID string) (OpenSessionLookup, error) {
	var sessions []models.Session
	err := db.Where("route_id = ? AND logout_time IS NULL", routeID).
		Order("login_time desc").
		Find(&sessions).Error
	if err != nil {
		return OpenSessionLookup{}, err
	}

	lookup := OpenSessionLookup{}
	for i := range sessions {
		lookup.IDs = append(lookup.IDs, sessions[i].ID)
	}
	switch len(sessions) {
	case 0:
		lookup.State = NoOpenSession
	case 1:
		lookup.State = OneOpenSession
		lookup.Latest = &sessions[0]
	default:
		lookup.State = AmbiguousOpenSessions
		lookup.Latest = &sessions[0]
	}
	return lookup, nil
}

// CloseLatestOpenSession stamps the logout time on the route's most recent
// open session. Closing when none is open is not an error; logout must
// succeed locally regardless.
func CloseLatestOpenSession(db *gorm.DB, routeID string, at time.Time) error {
	lookup, err := FindOpenSessions(db, routeID)
	if err != nil {
		return err
	}
	if lookup.State == NoOpenSession {
		return nil
	}
	return db.Model(lookup.Latest).Update("logout_time", at).Error
}
