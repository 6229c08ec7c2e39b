package server

import "sync"

// User represents a known participant
type User struct {
	ID          string
	DisplayName string
}

// UserDirectory maps user IDs to display names
type UserDirectory struct {
	users map[string]*User
	mu    sync.RWMutex
}

// NewUserDirectory creates an empty user directory
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		users: make(map[string]*User),
	}
}

// Register adds a user or refreshes the display name of an existing one.
// It reports whether the user was already known.
func (d *UserDirectory) Register(id, displayName string) (User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if user, exists := d.users[id]; exists {
		if displayName != "" {
			user.DisplayName = displayName
		}
		return *user, true
	}

	if displayName == "" {
		displayName = id
	}
	user := &User{ID: id, DisplayName: displayName}
	d.users[id] = user
	return *user, false
}

// DisplayName returns the user's name, falling back to the ID
func (d *UserDirectory) DisplayName(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if user, ok := d.users[id]; ok {
		return user.DisplayName
	}
	return id
}
