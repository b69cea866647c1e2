package types

import (
	shared "github.com/GriffinCanCode/appwrite-go/internal/shared/types"
)

// MessageStatus represents message delivery states
type MessageStatus string

const (
	MessageDraft      MessageStatus = "draft"
	MessageScheduled  MessageStatus = "scheduled"
	MessageProcessing MessageStatus = "processing"
	MessageSent       MessageStatus = "sent"
	MessageFailed     MessageStatus = "failed"
)

// Message represents a messaging record
type Message struct {
	ID             string        `json:"$id"`
	CreatedAt      string        `json:"$createdAt"`
	UpdatedAt      string        `json:"$updatedAt"`
	ProviderType   string        `json:"providerType"`
	Topics         []string      `json:"topics"`
	Users          []string      `json:"users"`
	Targets        []string      `json:"targets"`
	ScheduledAt    *string       `json:"scheduledAt,omitempty"`
	DeliveredAt    *string       `json:"deliveredAt,omitempty"`
	DeliveryErrors []string      `json:"deliveryErrors,omitempty"`
	DeliveredTotal int64         `json:"deliveredTotal"`
	Data           shared.Object `json:"data"`
	Status         MessageStatus `json:"status"`
	Description    *string       `json:"description,omitempty"`
}

// MessageList is a page of messages
type MessageList struct {
	Total    int64     `json:"total"`
	Messages []Message `json:"messages"`
}

// MessageFrom maps a response object to a Message
func MessageFrom(obj shared.Object) (Message, error) {
	if err := requireKeys("message", obj, "$id", "providerType", "status"); err != nil {
		return Message{}, err
	}

	return Message{
		ID:             obj.String("$id"),
		CreatedAt:      obj.String("$createdAt"),
		UpdatedAt:      obj.String("$updatedAt"),
		ProviderType:   obj.String("providerType"),
		Topics:         obj.Strings("topics"),
		Users:          obj.Strings("users"),
		Targets:        obj.Strings("targets"),
		ScheduledAt:    optionalString(obj, "scheduledAt"),
		DeliveredAt:    optionalString(obj, "deliveredAt"),
		DeliveryErrors: obj.Strings("deliveryErrors"),
		DeliveredTotal: obj.Int("deliveredTotal"),
		Data:           obj.Object("data"),
		Status:         MessageStatus(obj.String("status")),
		Description:    optionalString(obj, "description"),
	}, nil
}

// ToMap returns the wire representation
func (m Message) ToMap() map[string]any {
	return map[string]any{
		"$id":            m.ID,
		"$createdAt":     m.CreatedAt,
		"$updatedAt":     m.UpdatedAt,
		"providerType":   m.ProviderType,
		"topics":         m.Topics,
		"users":          m.Users,
		"targets":        m.Targets,
		"scheduledAt":    m.ScheduledAt,
		"deliveredAt":    m.DeliveredAt,
		"deliveryErrors": m.DeliveryErrors,
		"deliveredTotal": m.DeliveredTotal,
		"data":           m.Data.Interface(),
		"status":         string(m.Status),
		"description":    m.Description,
	}
}

// MessageListFrom maps a list response to a MessageList
func MessageListFrom(obj shared.Object) (MessageList, error) {
	if err := requireKeys("message list", obj, "total", "messages"); err != nil {
		return MessageList{}, err
	}

	items, err := objects("message list", obj, "messages")
	if err != nil {
		return MessageList{}, err
	}

	list := MessageList{Total: obj.Int("total"), Messages: make([]Message, 0, len(items))}
	for _, item := range items {
		msg, err := MessageFrom(item)
		if err != nil {
			return MessageList{}, err
		}
		list.Messages = append(list.Messages, msg)
	}
	return list, nil
}
