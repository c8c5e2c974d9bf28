package api

import (
	"encoding/json"
	"time"
)

// envelope is the uniform response wrapper used by every backend endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Info    string          `json:"info,omitempty"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// ConversationItem is one entry of a conversation listing.
type ConversationItem struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	MessagesCount int       `json:"messages_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ConversationPage is a page of conversations.
type ConversationPage struct {
	Items      []*ConversationItem `json:"items"`
	TotalPages int                 `json:"totalPages"`
	PageNumber int                 `json:"pageNumber"`
	PageSize   int                 `json:"pageSize"`
}

// MessageItem is one entry of a conversation's message listing.
type MessageItem struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	SentBy    string    `json:"sent_by"`
	CreatedAt time.Time `json:"created_at"`
	ModelUsed string    `json:"model_used"`
}

// MessagePage is a page of messages.
type MessagePage struct {
	Items      []*MessageItem `json:"items"`
	TotalPages int            `json:"totalPages"`
	PageNumber int            `json:"pageNumber"`
	PageSize   int            `json:"pageSize"`
}

// SendMessageRequest is the payload of a message send.
// ConversationID is nil when the message should open a new conversation.
type SendMessageRequest struct {
	ConversationID *int64 `json:"conversation_id,omitempty"`
	Text           string `json:"text"`
	Model          string `json:"model"`
	Provider       string `json:"provider"`
}

// SendMessageResponse is the backend's answer to a message send.
type SendMessageResponse struct {
	Content      string                  `json:"content"`
	Model        string                  `json:"model"`
	Conversation SendMessageConversation `json:"conversation"`
}

// SendMessageConversation carries the identity of the conversation the
// message landed in, plus localized titles when the backend generated them.
type SendMessageConversation struct {
	ID      int64  `json:"id"`
	TitleEn string `json:"title_en,omitempty"`
	TitleAr string `json:"title_ar,omitempty"`
}

// TitlePair holds both localized variants of a conversation title.
type TitlePair struct {
	TitleEn string `json:"title_en"`
	TitleAr string `json:"title_ar"`
}

// Summary is the latest AI-generated summary of the user's activity.
type Summary struct {
	Summary     string `json:"summary"`
	LastUpdated string `json:"last_updated"`
}

// SummaryHistory holds previously generated summaries, newest first.
type SummaryHistory struct {
	Results []*SummaryEntry `json:"results"`
}

// SummaryEntry is one historical summary.
type SummaryEntry struct {
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileRequest updates profile fields. Empty fields are left untouched.
type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is an access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
