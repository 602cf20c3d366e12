package http

import (
	"encoding/json"

	"github.com/qwerji/gameSocketRooms/internal/core"
	"github.com/qwerji/gameSocketRooms/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeRoom:
		var room proto.RoomData
		if err := json.Unmarshal(inbound.Data, &room); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Username: room.Username,
			Role:     room.Role,
			Room:     room.Code,
		}, nil, nil
	case proto.InboundTypeBroadcastStores:
		var bc proto.BroadcastStoresData
		if err := json.Unmarshal(inbound.Data, &bc); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:       core.CommandBroadcastStores,
			Stores:     bc.Stores,
			Recipients: bc.Recipients,
		}, nil, nil
	case proto.InboundTypeClearStores:
		var clear proto.ClearStoresData
		if err := json.Unmarshal(inbound.Data, &clear); err != nil {
			return nil, nil, err
		}
		ids := make([]string, 0, len(clear.Recipients))
		for _, ref := range clear.Recipients {
			ids = append(ids, ref.ID)
		}
		return &core.Command{
			Kind:       core.CommandClearStores,
			Recipients: ids,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomJoined:
		return proto.Outbound{
			Type: proto.OutboundTypeRoomJoined,
			Data: proto.RoomJoinedData{Code: event.Room},
		}
	case core.EventNoRoom:
		return proto.Outbound{
			Type: proto.OutboundTypeNoRoom,
			Data: proto.NoRoomData{Message: event.Message},
		}
	case core.EventRoomMembers:
		members := make([]proto.MemberRef, 0, len(event.Members))
		for _, m := range event.Members {
			members = append(members, proto.MemberRef{
				ID:       m.ID,
				Username: m.Username,
				Role:     string(m.Role),
			})
		}
		return proto.Outbound{
			Type: proto.OutboundTypeRoomMembers,
			Data: proto.RoomMembersData{Code: event.Room, Members: members},
		}
	case core.EventNewStores:
		return proto.Outbound{
			Type: proto.OutboundTypeNewStores,
			Data: proto.NewStoresData{Stores: event.Stores},
		}
	case core.EventStoresCleared:
		return proto.Outbound{Type: proto.OutboundTypeStoresCleared}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown event"}}
	}
}
