package api

import "github.com/mintyhq/minty-api/internal/render"

// Common request/response structures

// ListResponse is one page of a list endpoint. Next and Previous are the
// request URLs of the neighbouring pages, or null at either end.
type ListResponse struct {
	Count    int64           `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []render.Object `json:"results"`
}

// FameRequest defines the payload for voting on a guild's fame.
type FameRequest struct {
	// User is the public id of the voting user
	User string `json:"user"  validate:"required,uuid"`

	// Value is +1 (fame) or -1 (defame)
	Value int `json:"value" validate:"oneof=-1 1"`
}

// TagRequest defines the payload for applying a tag to a guild.
type TagRequest struct {
	User  string `json:"user"  validate:"required,uuid"`
	Value string `json:"value" validate:"required"`
}

// TagsResponse lists the tags one user has applied to a guild.
type TagsResponse struct {
	Guild string   `json:"guild"`
	User  string   `json:"user"`
	Tags  []string `json:"tags"`
}
