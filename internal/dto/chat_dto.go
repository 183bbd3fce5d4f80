package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"coffee-chat-backend/internal/models"

	"gorm.io/datatypes"
)

// ChatSchema is the wire contract for a chat payload.
var ChatSchema = Schema{
	{Name: "guest", Kind: KindString, Required: true, Trim: true, Rules: fmt.Sprintf("required,max=%d", models.GuestMaxLength)},
	{Name: "chat_date", Kind: KindDate, Required: true, Rules: "required,datetime=" + DateLayout},
	{Name: "notes", Kind: KindString, Required: true},
}

// ChatInput is a validated create/update payload. Nil fields were not sent.
type ChatInput struct {
	Guest    *string
	ChatDate *datatypes.Date
	Notes    *string
}

type ChatResponse struct {
	ID       uint   `json:"id"`
	Guest    string `json:"guest"`
	ChatDate string `json:"chat_date"`
	Notes    string `json:"notes"`
}

// ParseChatInput decodes and validates a request body. In partial mode only
// the fields present are checked; otherwise every field is required.
func ParseChatInput(body []byte, partial bool) (ChatInput, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return ChatInput{}, &ValidationError{Fields: map[string][]string{
			NonFieldErrors: {"Invalid data. Expected a JSON object."},
		}}
	}

	values, err := ChatSchema.Validate(payload, partial)
	if err != nil {
		return ChatInput{}, err
	}

	var in ChatInput
	if v, ok := values["guest"]; ok {
		in.Guest = &v
	}
	if v, ok := values["chat_date"]; ok {
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return ChatInput{}, &ValidationError{Fields: map[string][]string{"chat_date": {dateFormatMessage}}}
		}
		d := datatypes.Date(t)
		in.ChatDate = &d
	}
	if v, ok := values["notes"]; ok {
		in.Notes = &v
	}
	return in, nil
}

// ToModel builds a new chat; only meaningful for a fully validated input.
func (in ChatInput) ToModel() *models.Chat {
	chat := &models.Chat{}
	in.ToChanges().Apply(chat)
	return chat
}

func (in ChatInput) ToChanges() models.ChatChanges {
	return models.ChatChanges{
		Guest:    in.Guest,
		ChatDate: in.ChatDate,
		Notes:    in.Notes,
	}
}

func NewChatResponse(chat *models.Chat) ChatResponse {
	return ChatResponse{
		ID:       chat.ID,
		Guest:    chat.Guest,
		ChatDate: FormatDate(chat.ChatDate),
		Notes:    chat.Notes,
	}
}

func NewChatListResponse(chats []models.Chat) []ChatResponse {
	out := make([]ChatResponse, 0, len(chats))
	for i := range chats {
		out = append(out, NewChatResponse(&chats[i]))
	}
	return out
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
