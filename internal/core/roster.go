package core

import "sort"

// Member is one room occupant as reported to the GM.
type Member struct {
	ID       string
	Username string
	Role     Role
}

// RoomInfo is a lightweight room snapshot for the REST surface.
type RoomInfo struct {
	Code    string
	Members int
}

type memberEntry struct {
	member Member
	room   string
}

// Roster owns the connection -> (username, role, room) mapping and the
// reverse room -> members index. A room exists exactly as long as it has at
// least one member; there is no separate room object to create or destroy.
//
// The roster is not safe for concurrent use. The hub run loop is its only
// mutator, which serializes all operations.
//
// Nothing prevents a second connection from claiming the GM role on the same
// code. MembersOf preserves join order, so GMOf deterministically returns
// the first GM to have joined. Changing that is a product decision, not a
// bug fix.
type Roster struct {
	members map[string]*memberEntry
	rooms   map[string][]string
}

// NewRoster returns an empty membership index.
func NewRoster() *Roster {
	return &Roster{
		members: make(map[string]*memberEntry),
		rooms:   make(map[string][]string),
	}
}

// Join records the connection under code with the given username and role.
// Any previous assignment for the same connection is dropped first, so the
// index never holds a connection twice.
func (r *Roster) Join(id, username string, role Role, code string) error {
	if role != RoleGM && role != RolePlayer {
		return ErrInvalidRole
	}
	r.Leave(id)
	r.members[id] = &memberEntry{
		member: Member{ID: id, Username: username, Role: role},
		room:   code,
	}
	r.rooms[code] = append(r.rooms[code], id)
	return nil
}

// Leave removes the connection from whatever room it was in and returns the
// room code it left. Leaving an untracked connection is a no-op returning "".
func (r *Roster) Leave(id string) string {
	entry, ok := r.members[id]
	if !ok {
		return ""
	}
	delete(r.members, id)

	ids := r.rooms[entry.room]
	for i, memberID := range ids {
		if memberID == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(r.rooms, entry.room)
	} else {
		r.rooms[entry.room] = ids
	}
	return entry.room
}

// MembersOf returns the current occupants of a room in join order.
// Unknown codes yield an empty list.
func (r *Roster) MembersOf(code string) []Member {
	ids := r.rooms[code]
	members := make([]Member, 0, len(ids))
	for _, id := range ids {
		if entry, ok := r.members[id]; ok {
			members = append(members, entry.member)
		}
	}
	return members
}

// GMOf returns the connection id of the first GM in the room, if any.
func (r *Roster) GMOf(code string) (string, bool) {
	for _, id := range r.rooms[code] {
		if entry, ok := r.members[id]; ok && entry.member.Role == RoleGM {
			return id, true
		}
	}
	return "", false
}

// RoomExists reports whether at least one connection currently holds code.
func (r *Roster) RoomExists(code string) bool {
	return len(r.rooms[code]) > 0
}

// RoomOf returns the room code the connection is assigned to, or "".
func (r *Roster) RoomOf(id string) string {
	if entry, ok := r.members[id]; ok {
		return entry.room
	}
	return ""
}

// Rooms returns a snapshot of all active rooms, sorted by code.
func (r *Roster) Rooms() []RoomInfo {
	infos := make([]RoomInfo, 0, len(r.rooms))
	for code, ids := range r.rooms {
		infos = append(infos, RoomInfo{Code: code, Members: len(ids)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}
