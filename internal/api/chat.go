package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListConversations fetches one page of the user's conversations.
func (c *Client) ListConversations(ctx context.Context, pageNumber, pageSize int) (*ConversationPage, error) {
	query := url.Values{}
	query.Set("pageNumber", strconv.Itoa(pageNumber))
	query.Set("pageSize", strconv.Itoa(pageSize))

	page := &ConversationPage{}
	if err := c.do(ctx, http.MethodGet, "/chat/conversation", query, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

// ListMessages fetches one page of a conversation's messages.
func (c *Client) ListMessages(ctx context.Context, conversationID int64, pageNumber, pageSize int) (*MessagePage, error) {
	query := url.Values{}
	query.Set("pageNumber", strconv.Itoa(pageNumber))
	query.Set("pageSize", strconv.Itoa(pageSize))

	page := &MessagePage{}
	path := fmt.Sprintf("/chat/conversations/%d/messages", conversationID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

// SendMessage sends a user message and returns the assistant's answer.
func (c *Client) SendMessage(ctx context.Context, request *SendMessageRequest) (*SendMessageResponse, error) {
	response := &SendMessageResponse{}
	if err := c.do(ctx, http.MethodPost, "/chat/message", nil, request, response); err != nil {
		return nil, err
	}
	return response, nil
}

// RegenerateTitle asks the backend for a fresh localized title pair.
func (c *Client) RegenerateTitle(ctx context.Context, conversationID int64) (*TitlePair, error) {
	pair := &TitlePair{}
	path := fmt.Sprintf("/chat/conversations/%d/title", conversationID)
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, pair); err != nil {
		return nil, err
	}
	return pair, nil
}
