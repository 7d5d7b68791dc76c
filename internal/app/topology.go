package app

import (
	"strings"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

// Room topology is resolved from the live cache on every call; nothing is
// cached here, so manual renames in the guild self-heal on the next lookup.

func FindCategory(d core.Directory) (domain.Channel, bool) {
	for _, ch := range d.Channels() {
		if ch.Type == domain.ChannelCategory && strings.EqualFold(ch.Name, domain.CategoryName) {
			return ch, true
		}
	}
	return domain.Channel{}, false
}

func FindMainHall(d core.Directory, category domain.ChannelID) (domain.Channel, bool) {
	return FindRoomByName(d, category, domain.MainHallName)
}

// FindPrivateRooms returns the category's private rooms in the platform's
// native enumeration order. The order is not guaranteed numeric.
func FindPrivateRooms(d core.Directory, category domain.ChannelID) []domain.Channel {
	var rooms []domain.Channel
	for _, ch := range d.Channels() {
		if ch.Type.Voice() && ch.ParentID == category && strings.HasPrefix(ch.Name, domain.PrivateRoomPrefix) {
			rooms = append(rooms, ch)
		}
	}
	return rooms
}

// FindRoomByName matches voice-capable rooms under the category,
// case-insensitively.
func FindRoomByName(d core.Directory, category domain.ChannelID, name string) (domain.Channel, bool) {
	for _, ch := range d.Channels() {
		if ch.Type.Voice() && ch.ParentID == category && strings.EqualFold(ch.Name, name) {
			return ch, true
		}
	}
	return domain.Channel{}, false
}

func findTextChannel(d core.Directory, category domain.ChannelID, name string) (domain.Channel, bool) {
	for _, ch := range d.Channels() {
		if ch.Type == domain.ChannelText && ch.ParentID == category && strings.EqualFold(ch.Name, name) {
			return ch, true
		}
	}
	return domain.Channel{}, false
}

func FindMemberByUsername(d core.Directory, username string) (domain.Member, bool) {
	for _, m := range d.Members() {
		if strings.EqualFold(m.Username, username) {
			return m, true
		}
	}
	return domain.Member{}, false
}

func FindMemberWithRole(d core.Directory, role domain.RoleID) (domain.Member, bool) {
	for _, m := range d.Members() {
		if m.HasRole(role) {
			return m, true
		}
	}
	return domain.Member{}, false
}

func findMemberByID(d core.Directory, id domain.MemberID) (domain.Member, bool) {
	for _, m := range d.Members() {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

// voiceOccupants counts members currently connected to the room.
func voiceOccupants(d core.Directory, room domain.ChannelID) int {
	n := 0
	for _, m := range d.Members() {
		if ch, ok := d.VoiceChannelOf(m.ID); ok && ch == room {
			n++
		}
	}
	return n
}
